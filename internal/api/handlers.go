package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"feedbackboard/internal/authz"
	"feedbackboard/internal/models"
	"feedbackboard/internal/session"
	"feedbackboard/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler contains the request handlers.
type Handler struct {
	db       *gorm.DB
	users    *store.UserStore
	feedback *store.FeedbackStore
	accounts *store.AccountService
	sessions *session.Manager
}

// NewHandler creates a new handler.
func NewHandler(db *gorm.DB, sessions *session.Manager) *Handler {
	feedback := store.NewFeedbackStore(db)
	return &Handler{
		db:       db,
		users:    store.NewUserStore(db),
		feedback: feedback,
		accounts: store.NewAccountService(db, feedback),
		sessions: sessions,
	}
}

// render shows a page together with any queued flash messages, both the
// ones carried over from a previous redirect and the ones this request
// added.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	carried := cookieFlashes(c)
	if len(carried) > 0 {
		clearFlashCookie(c)
	}
	data["Flashes"] = append(carried, pendingFlashes(c)...)
	data["Identity"] = string(identityFrom(c))
	c.HTML(status, page, data)
}

// redirect carries any queued flash messages over to the next request.
func (h *Handler) redirect(c *gin.Context, location string) {
	merged := append(cookieFlashes(c), pendingFlashes(c)...)
	if len(merged) > 0 {
		writeFlashCookie(c, merged)
	}
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) startSession(c *gin.Context, username string) error {
	token, err := h.sessions.Issue(username)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}
	c.SetCookie(sessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}

func (h *Handler) endSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// Home redirects visitors to the registration page.
func (h *Handler) Home(c *gin.Context) {
	h.redirect(c, "/register")
}

// ShowRegister renders the registration form.
func (h *Handler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{
		"Form":   RegisterForm{},
		"Errors": map[string]string{},
	})
}

// Register creates a new account and logs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "register.html", gin.H{
			"Form":   form,
			"Errors": formErrors(err),
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), store.RegisterInput{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		var dup *store.DuplicateFieldError
		if errors.As(err, &dup) {
			addFlash(c, store.SeverityError, dup.Error())
		} else {
			addFlash(c, store.SeverityError,
				fmt.Sprintf("Creation Error: An error of unknown origin occurred. '%s' was NOT created.", form.Username))
		}
		h.render(c, http.StatusOK, "register.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{},
		})
		return
	}

	if err := h.startSession(c, user.Username); err != nil {
		h.redirect(c, "/login")
		return
	}
	addFlash(c, store.SeverityOkay, fmt.Sprintf("%s was created for %s.", user.Username, user.FullName()))
	h.redirect(c, "/user/"+user.Username)
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Form":   LoginForm{},
		"Errors": map[string]string{},
	})
}

// Login authenticates the caller and starts a session. Failures stay
// deliberately vague about which field was wrong.
func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		addFlash(c, store.SeverityError, "username and / or password are incorrect.")
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{},
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		addFlash(c, store.SeverityError, "username and / or password are incorrect.")
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Errors": map[string]string{},
		})
		return
	}

	if err := h.startSession(c, user.Username); err != nil {
		addFlash(c, store.SeverityError, "An error occurred. Please try again.")
		h.redirect(c, "/login")
		return
	}
	h.redirect(c, "/user/"+user.Username)
}

// Logout clears the session unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	h.endSession(c)
	h.redirect(c, "/login")
}

// Secret is viewable by any authenticated user.
func (h *Handler) Secret(c *gin.Context) {
	if identityFrom(c) == authz.Anonymous {
		h.redirect(c, "/login")
		return
	}
	h.render(c, http.StatusOK, "secret.html", gin.H{})
}

// UserHome sends a lost visitor to their own profile, or to login.
func (h *Handler) UserHome(c *gin.Context) {
	id := identityFrom(c)
	if id == authz.Anonymous {
		h.redirect(c, "/login")
		return
	}
	h.redirect(c, "/user/"+string(id))
}

// denyProfile translates a gate failure on /user/:username routes into a
// flash and a redirect. The denial never says whether the target exists.
func (h *Handler) denyProfile(c *gin.Context, err error, verb string) {
	id := identityFrom(c)
	if errors.Is(err, authz.ErrNotOwner) {
		addFlash(c, store.SeverityError, fmt.Sprintf("You may only %s your profile!", verb))
		h.redirect(c, "/user/"+string(id))
		return
	}
	addFlash(c, store.SeverityError, fmt.Sprintf("You must login to %s your profile.", verb))
	h.redirect(c, "/login")
}

// ViewUser shows a profile and its feedback to the owner only.
func (h *Handler) ViewUser(c *gin.Context) {
	username := c.Param("username")
	if err := authz.RequireOwner(identityFrom(c), username); err != nil {
		h.denyProfile(c, err, "view")
		return
	}

	user, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		// the session names an account that no longer exists
		h.endSession(c)
		h.redirect(c, "/login")
		return
	}

	feedback, err := h.feedback.ListByOwner(c.Request.Context(), username)
	if err != nil {
		addFlash(c, store.SeverityError, "An error occurred while loading feedback.")
	}

	h.render(c, http.StatusOK, "user.html", gin.H{
		"User":     user,
		"Feedback": feedback,
		"Errors":   map[string]string{},
	})
}

// UpdateProfile changes the owner's email and names. The username is
// immutable.
func (h *Handler) UpdateProfile(c *gin.Context) {
	username := c.Param("username")
	if err := authz.RequireOwner(identityFrom(c), username); err != nil {
		h.denyProfile(c, err, "update")
		return
	}

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		for _, msg := range formErrors(err) {
			addFlash(c, store.SeverityError, msg)
		}
		h.redirect(c, "/user/"+username)
		return
	}

	_, err := h.users.UpdateProfile(c.Request.Context(), username, form.Email, form.FirstName, form.LastName)
	if err != nil {
		var dup *store.DuplicateFieldError
		var verrs store.ValidationErrors
		switch {
		case errors.As(err, &dup):
			addFlash(c, store.SeverityError, dup.Error())
		case errors.As(err, &verrs):
			for _, fe := range verrs {
				addFlash(c, store.SeverityError, fe.Message)
			}
		default:
			addFlash(c, store.SeverityError,
				fmt.Sprintf("An error occurred. Profile for %s was NOT updated.", username))
		}
		h.redirect(c, "/user/"+username)
		return
	}

	addFlash(c, store.SeverityOkay, fmt.Sprintf("Profile for %s was updated.", username))
	h.redirect(c, "/user/"+username)
}

// DeleteUser removes the owner's account: every owned feedback record
// first, then the user row. If feedback removal fails the account stays.
func (h *Handler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := authz.RequireOwner(identityFrom(c), username); err != nil {
		h.denyProfile(c, err, "delete")
		return
	}

	report := h.accounts.DeleteAccount(c.Request.Context(), username)
	flashReport(c, report.Messages)

	if !report.UserDeleted {
		h.redirect(c, "/user/"+username)
		return
	}

	h.endSession(c)
	h.redirect(c, "/")
}

// requireFeedbackOwner looks up the record at :id and gates it on the
// session identity. It handles the flash and redirect on failure and
// returns nil when the caller may not proceed.
func (h *Handler) requireFeedbackOwner(c *gin.Context, verb string) *models.Feedback {
	id := identityFrom(c)
	if id == authz.Anonymous {
		addFlash(c, store.SeverityError, fmt.Sprintf("You must login to %s feedback.", verb))
		h.redirect(c, "/login")
		return nil
	}

	fbID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		addFlash(c, store.SeverityError, "The requested feedback was not found.")
		h.redirect(c, "/user/"+string(id))
		return nil
	}

	fb, err := h.feedback.GetByID(c.Request.Context(), uint(fbID))
	if err != nil {
		addFlash(c, store.SeverityError, "The requested feedback was not found.")
		h.redirect(c, "/user/"+string(id))
		return nil
	}

	if err := authz.RequireOwner(id, fb.OwnerUsername); err != nil {
		addFlash(c, store.SeverityError, fmt.Sprintf("You cannot %s another users feedback.", verb))
		h.redirect(c, "/user/"+string(id))
		return nil
	}

	return fb
}

// ShowAddFeedback renders the add-feedback form for the profile owner.
func (h *Handler) ShowAddFeedback(c *gin.Context) {
	username := c.Param("username")
	id := identityFrom(c)
	if err := authz.RequireOwner(id, username); err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			addFlash(c, store.SeverityError, "You may only add feedback to your own profile!")
			h.redirect(c, "/user/"+string(id))
			return
		}
		addFlash(c, store.SeverityError, "You must login to provide feedback.")
		h.redirect(c, "/login")
		return
	}

	h.render(c, http.StatusOK, "feedback_form.html", gin.H{
		"Mode":   "Add",
		"Action": "/user/" + username + "/feedback/add",
		"Form":   FeedbackForm{},
	})
}

// AddFeedback creates a feedback record owned by the profile owner.
func (h *Handler) AddFeedback(c *gin.Context) {
	username := c.Param("username")
	id := identityFrom(c)
	if err := authz.RequireOwner(id, username); err != nil {
		if errors.Is(err, authz.ErrNotOwner) {
			addFlash(c, store.SeverityError, "You may only add feedback to your own profile!")
			h.redirect(c, "/user/"+string(id))
			return
		}
		addFlash(c, store.SeverityError, "You must login to provide feedback.")
		h.redirect(c, "/login")
		return
	}

	var form FeedbackForm
	_ = c.ShouldBind(&form)

	fb, err := h.feedback.Create(c.Request.Context(), username, form.Title, form.Content)
	if err != nil {
		var verrs store.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				addFlash(c, store.SeverityError, fe.Message)
			}
		} else {
			addFlash(c, store.SeverityError,
				fmt.Sprintf("An error occurred. Feedback '%s' was NOT created.", form.Title))
		}
		h.render(c, http.StatusOK, "feedback_form.html", gin.H{
			"Mode":   "Add",
			"Action": "/user/" + username + "/feedback/add",
			"Form":   form,
		})
		return
	}

	addFlash(c, store.SeverityOkay, fmt.Sprintf("Feedback '%s' was created.", fb.Title))
	h.redirect(c, "/user/"+username)
}

// ShowUpdateFeedback renders the edit form for the record's owner.
func (h *Handler) ShowUpdateFeedback(c *gin.Context) {
	fb := h.requireFeedbackOwner(c, "edit")
	if fb == nil {
		return
	}

	h.render(c, http.StatusOK, "feedback_form.html", gin.H{
		"Mode":   "Update",
		"Action": fmt.Sprintf("/feedback/%d/update", fb.ID),
		"Form":   FeedbackForm{Title: fb.Title, Content: fb.Content},
	})
}

// UpdateFeedback changes the title and content of an owned record.
func (h *Handler) UpdateFeedback(c *gin.Context) {
	fb := h.requireFeedbackOwner(c, "edit")
	if fb == nil {
		return
	}

	var form FeedbackForm
	_ = c.ShouldBind(&form)

	updated, err := h.feedback.Update(c.Request.Context(), fb, form.Title, form.Content)
	if err != nil {
		var verrs store.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				addFlash(c, store.SeverityError, fe.Message)
			}
		} else {
			addFlash(c, store.SeverityError,
				fmt.Sprintf("An error occurred. Feedback '%s' was NOT updated.", fb.Title))
		}
		h.render(c, http.StatusOK, "feedback_form.html", gin.H{
			"Mode":   "Update",
			"Action": fmt.Sprintf("/feedback/%d/update", fb.ID),
			"Form":   form,
		})
		return
	}

	addFlash(c, store.SeverityOkay, fmt.Sprintf("Feedback '%s' was updated.", updated.Title))
	h.redirect(c, "/user/"+fb.OwnerUsername)
}

// DeleteFeedback removes an owned record.
func (h *Handler) DeleteFeedback(c *gin.Context) {
	fb := h.requireFeedbackOwner(c, "delete")
	if fb == nil {
		return
	}

	title := fb.Title
	if err := h.feedback.Delete(c.Request.Context(), fb); err != nil {
		addFlash(c, store.SeverityError, fmt.Sprintf("An error occurred. '%s' was NOT deleted.", title))
	} else {
		addFlash(c, store.SeverityOkay, fmt.Sprintf("'%s' was deleted.", title))
	}
	h.redirect(c, "/user/"+fb.OwnerUsername)
}

// Healthz reports process liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

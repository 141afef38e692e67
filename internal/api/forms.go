package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterForm carries the registration fields. The length rules match
// the users table columns.
type RegisterForm struct {
	Username  string `form:"username" binding:"required,min=4,max=20"`
	Password  string `form:"password" binding:"required,min=6"`
	Email     string `form:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" binding:"required,notblank,max=30"`
	LastName  string `form:"last_name" binding:"required,notblank,max=30"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ProfileForm struct {
	Email     string `form:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" binding:"required,notblank,max=30"`
	LastName  string `form:"last_name" binding:"required,notblank,max=30"`
}

// FeedbackForm has no binding rules; the store checks both fields and
// reports every blank one, not just the first.
type FeedbackForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// registerFormValidations adds the notblank rule (non-empty after
// trimming) to gin's validator.
func registerFormValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// formErrors maps a binding failure to per-field messages for the form
// templates.
func formErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "The submitted form could not be read."
		return out
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			out["username"] = "REQUIRED, Username must be 4 to 20 characters in length."
		case "Password":
			out["password"] = "REQUIRED, Password must be at least 6 characters in length."
		case "Email":
			if fe.Tag() == "email" {
				out["email"] = "REQUIRED, Email is not formatted correctly."
			} else {
				out["email"] = "REQUIRED, Email must be 1 to 50 characters in length."
			}
		case "FirstName":
			out["first_name"] = "REQUIRED, First Name must be 1 to 30 characters in length."
		case "LastName":
			out["last_name"] = "REQUIRED, Last Name must be 1 to 30 characters in length."
		}
	}
	return out
}

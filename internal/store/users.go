package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feedbackboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when a login names an unknown user, so a
// missing account costs the same as a wrong password.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("placeholder-never-matches"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// UserStore manages the users table.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new user store.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// RegisterInput carries the registration form fields. Password is the raw
// password; it is hashed before anything touches the database.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Register creates a new user. All fields are trimmed and the email is
// lowercased before the insert. A uniqueness violation comes back as a
// *DuplicateFieldError naming the colliding field when the constraint
// identifies it.
func (s *UserStore) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if dup := duplicateError(err); dup != nil {
			switch dup.Field {
			case "username":
				dup.Value = user.Username
			case "email":
				dup.Value = user.Email
			}
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate looks a user up by exact username and verifies the raw
// password against the stored hash. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a compare so the timing matches the wrong-password path
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Get returns a user by username.
func (s *UserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// UpdateProfile changes a user's email and names. The username is
// immutable. A duplicate email is classified like in Register.
func (s *UserStore) UpdateProfile(ctx context.Context, username, email, firstName, lastName string) (*models.User, error) {
	var verrs ValidationErrors
	email = strings.ToLower(requireNonBlank(&verrs, "email", email))
	firstName = requireNonBlank(&verrs, "first_name", firstName)
	lastName = requireNonBlank(&verrs, "last_name", lastName)
	if len(verrs) > 0 {
		return nil, verrs
	}

	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if dup := duplicateError(err); dup != nil {
			if dup.Field == "email" {
				dup.Value = email
			}
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.Email = email
	user.FirstName = firstName
	user.LastName = lastName
	return user, nil
}

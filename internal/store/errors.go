package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// postgres error code for unique_violation
const pgUniqueViolation = "23505"

// DuplicateFieldError reports a uniqueness violation on user creation or
// profile update. Field is "username" or "email" when the violated
// constraint identifies it, empty when only a generic duplicate is known.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	if e.Field == "" {
		return "username and/or email are already used. Please select a different username and/or email."
	}
	return fmt.Sprintf("%s '%s' already exists. Please select a different %s", e.Field, e.Value, e.Field)
}

// duplicateError translates a failed write into a *DuplicateFieldError, or
// returns nil when err is not a uniqueness violation. Postgres names the
// violated constraint, so the field is derived from the constraint name,
// never from the human-readable message text.
func duplicateError(err error) *DuplicateFieldError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil
		}
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return &DuplicateFieldError{Field: "email"}
		case strings.Contains(pgErr.ConstraintName, "username"), pgErr.ConstraintName == "users_pkey":
			return &DuplicateFieldError{Field: "username"}
		}
		return &DuplicateFieldError{}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateFieldError{}
	}
	return nil
}

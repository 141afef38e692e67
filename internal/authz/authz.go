// Package authz holds the ownership gate. The acting identity is passed
// in explicitly rather than read from ambient state, so the rules can be
// exercised without a running web server.
package authz

import (
	"errors"
)

// Identity is the username a request acts as. The zero value is an
// anonymous caller.
type Identity string

// Anonymous is the identity of a request with no session.
const Anonymous Identity = ""

var (
	// ErrLoginRequired means no session identity was presented.
	ErrLoginRequired = errors.New("login required")

	// ErrNotOwner means an authenticated caller does not own the resource.
	// The denial carries no resource details.
	ErrNotOwner = errors.New("not the resource owner")
)

// Require rejects anonymous callers.
func Require(id Identity) error {
	if id == Anonymous {
		return ErrLoginRequired
	}
	return nil
}

// RequireOwner passes only when id is authenticated and equals the
// resource owner.
func RequireOwner(id Identity, owner string) error {
	if err := Require(id); err != nil {
		return err
	}
	if string(id) != owner {
		return ErrNotOwner
	}
	return nil
}

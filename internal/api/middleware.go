package api

import (
	"feedbackboard/internal/authz"
	"feedbackboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	identityKey   = "identity"
	sessionCookie = "fb_session"
)

// SessionIdentity resolves the session cookie into the acting identity.
// Missing, expired, or forged tokens leave the request anonymous.
func SessionIdentity(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
			if username, err := m.Parse(token); err == nil {
				c.Set(identityKey, authz.Identity(username))
			}
		}
		c.Next()
	}
}

// identityFrom returns the identity set by SessionIdentity, or Anonymous.
func identityFrom(c *gin.Context) authz.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(authz.Identity); ok {
			return id
		}
	}
	return authz.Anonymous
}

// RequestID tags every request and response with an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

package api

import (
	"encoding/base64"
	"encoding/json"

	"feedbackboard/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "fb_flash"
	flashKey    = "flashes"
)

// flash is one outcome message shown on the next rendered page.
type flash struct {
	Severity string `json:"s"`
	Text     string `json:"t"`
}

// addFlash queues a message for the next page the caller sees, whether
// that page is rendered by this request or after a redirect.
func addFlash(c *gin.Context, severity, text string) {
	pending := pendingFlashes(c)
	pending = append(pending, flash{Severity: severity, Text: text})
	c.Set(flashKey, pending)
}

// flashReport queues every status message from an account deletion.
func flashReport(c *gin.Context, msgs []store.StatusMessage) {
	for _, m := range msgs {
		addFlash(c, m.Severity, m.Text)
	}
}

func pendingFlashes(c *gin.Context) []flash {
	if v, ok := c.Get(flashKey); ok {
		if pending, ok := v.([]flash); ok {
			return pending
		}
	}
	return nil
}

// cookieFlashes decodes messages left by a previous request. A cookie
// that fails to decode is treated as empty.
func cookieFlashes(c *gin.Context) []flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []flash
	if err := json.Unmarshal(decoded, &msgs); err != nil {
		return nil
	}
	return msgs
}

func writeFlashCookie(c *gin.Context, msgs []flash) {
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString(encoded), 300, "/", "", false, true)
}

func clearFlashCookie(c *gin.Context) {
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
}

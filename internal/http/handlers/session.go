package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SIDCodec signs the session cookie ("id.sig") so a visitor cannot mint
// arbitrary session ids and walk into another visitor's cart.
type SIDCodec struct{ secret []byte }

func NewSIDCodec(secret string) SIDCodec { return SIDCodec{secret: []byte(secret)} }

func (sc SIDCodec) sign(id string) string {
	mac := hmac.New(sha256.New, sc.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (sc SIDCodec) verify(v string) (string, bool) {
	i := strings.LastIndexByte(v, '.')
	if i <= 0 {
		return "", false
	}
	id := v[:i]
	if hmac.Equal([]byte(sc.sign(id)), []byte(v)) {
		return id, true
	}
	return "", false
}

// EnsureSID returns the request's session id, minting a fresh one when the
// cookie is absent or fails verification.
func (sc SIDCodec) EnsureSID(c *fiber.Ctx) string {
	if v := c.Cookies("sid"); v != "" {
		if id, ok := sc.verify(v); ok {
			return id
		}
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sc.sign(id),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind TLS
	})
	return id
}

// CurrentSID reads without minting; empty when no valid cookie rode in.
func (sc SIDCodec) CurrentSID(c *fiber.Ctx) string {
	if v := c.Cookies("sid"); v != "" {
		if id, ok := sc.verify(v); ok {
			return id
		}
	}
	return ""
}

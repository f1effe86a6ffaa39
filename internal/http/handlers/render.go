package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if _, ok := data["CSRFToken"]; !ok {
		tok, _ := c.Locals("CSRFToken").(string)
		data["CSRFToken"] = tok
	}
	if msg := takeFlash(c); msg != "" {
		data["Flash"] = msg
	}
	return c.Render(tmpl, data)
}

// setFlash queues a one-shot message for the next rendered page.
func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c *fiber.Ctx) string {
	v := c.Cookies("flash")
	if v == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	msg, err := url.QueryUnescape(v)
	if err != nil {
		return ""
	}
	return msg
}

package handlers

import (
	"time"

	applog "candelore/internal/log"
	"candelore/internal/services"
	"candelore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
	SID  SIDCodec
}

// GET /admin/login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

// POST /admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := h.SID.EnsureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok || pass == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}

	if _, err := h.Auth.Login(sid, email, pass); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

// POST /admin/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := h.SID.CurrentSID(c); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/admin/login")
}

package handlers

import (
	applog "candelore/internal/log"
	"candelore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates the back office. Everything under /admin except login
// needs an authenticated, active user bound to the session.
func RequireAdmin(auth *services.AuthService, sc SIDCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := sc.CurrentSID(c)
		if sid == "" {
			return c.Redirect("/admin/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || !u.Active {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/admin/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

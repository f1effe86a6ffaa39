package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"candelore/internal/config"
	"candelore/internal/http/handlers"
	applog "candelore/internal/log"
	"candelore/internal/repos"
	"candelore/internal/uploads"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	files, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = cfg.MaxUploadMB << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf", // without this the middleware never exposes the token to views
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The cart API is JSON-only and carries no form token.
			return strings.HasPrefix(c.Path(), "/cart/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	uploadDir := cfg.UploadDir
	if !filepath.IsAbs(uploadDir) {
		if abs, err := filepath.Abs(uploadDir); err == nil {
			uploadDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", uploadDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(uploadDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, files)

	// Public pages
	app.Get("/", deps.Public.Home)
	app.Get("/compositions", deps.Public.Compositions)
	app.Get("/faq", deps.Public.FAQ)
	app.Get("/catalog", deps.Public.Catalogue)
	app.Get("/product/:id", deps.Public.ProductDetail)

	// Cart & checkout
	app.Get("/cart", deps.Cart.View)
	app.Post("/cart/add", deps.Cart.Add)
	app.Post("/cart/update/:index", deps.Cart.Update)
	app.Post("/cart/remove/:index", deps.Cart.Remove)
	app.Get("/checkout", deps.Checkout.Form)
	app.Post("/checkout", deps.Checkout.Place)
	app.Get("/order/success/:order_id", deps.Checkout.Success)

	// Admin (login throttled)
	app.Get("/admin/login", deps.Auth.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.Auth.Login)
	app.Post("/admin/logout", deps.Auth.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.AuthSvc, deps.SID))
	admin.Get("/", deps.AdminProducts.Dashboard)
	admin.Get("/products", deps.AdminProducts.List)
	admin.Get("/products/new", deps.AdminProducts.NewForm)
	admin.Post("/products/new", deps.AdminProducts.Create)
	admin.Get("/products/:id/edit", deps.AdminProducts.EditForm)
	admin.Post("/products/:id/edit", deps.AdminProducts.Update)
	admin.Post("/products/:id/delete", deps.AdminProducts.Delete)
	admin.Post("/products/:id/colors/add", deps.AdminProducts.AddColor)
	admin.Post("/colors/:id/delete", deps.AdminProducts.DeleteColor)
	admin.Post("/products/:id/images/add", deps.AdminProducts.AddImage)
	admin.Post("/images/:id/delete", deps.AdminProducts.DeleteImage)
	admin.Get("/compositions", deps.AdminCompositions.List)
	admin.Get("/compositions/new", deps.AdminCompositions.NewForm)
	admin.Post("/compositions/new", deps.AdminCompositions.Create)
	admin.Get("/compositions/:id/edit", deps.AdminCompositions.EditForm)
	admin.Post("/compositions/:id/edit", deps.AdminCompositions.Update)
	admin.Post("/compositions/:id/delete", deps.AdminCompositions.Delete)
	admin.Get("/orders", deps.AdminOrders.List)
	admin.Post("/orders/:id/status", deps.AdminOrders.UpdateStatus)

	// Health & 404
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

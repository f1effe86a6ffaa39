package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"candelore/internal/config"
	"candelore/internal/http/handlers"
	"candelore/internal/repos"
	"candelore/internal/uploads"
)

// newBrowserApp mounts the same csrf stack the binary uses, so form flows are
// exercised end to end: token issued on GET, checked on POST.
func newBrowserApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
		INSERT INTO products(id,sku,name,description,wax_type,category,price,active,created_at)
		  VALUES ('cndl-a','CNDL-A','Amber Pillar','Soy pillar','soy','pillar',10.00,1,'now');
	`); err != nil {
		t.Fatal(err)
	}
	store, err := uploads.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	deps := handlers.NewDeps(db, config.Config{SessionSecret: "test-secret", MaxUploadMB: 10}, store)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/cart/")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})
	app.Post("/cart/add", deps.Cart.Add)
	app.Get("/checkout", deps.Checkout.Form)
	app.Post("/checkout", deps.Checkout.Place)
	app.Get("/order/success/:order_id", deps.Checkout.Success)
	app.Get("/admin/login", deps.Auth.LoginForm)
	app.Post("/admin/login", deps.Auth.Login)
	return app
}

var csrfField = regexp.MustCompile(`name="csrf" value="([^"]*)"`)

func TestCheckoutFormCarriesUsableToken(t *testing.T) {
	app := newBrowserApp(t)

	// Fill the cart through the JSON API, which is exempt from the token check.
	resp, err := app.Test(jsonReq("POST", "/cart/add", "", `{"product_id":"cndl-a","quantity":1}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("add = %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")

	req := httptest.NewRequest("GET", "/checkout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	if resp, err = app.Test(req, -1); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("checkout form = %d, want 200", resp.StatusCode)
	}
	csrfCookie := cookieValue(resp, "csrf_")
	if csrfCookie == "" {
		t.Fatal("no csrf_ cookie issued on GET")
	}
	body, _ := io.ReadAll(resp.Body)
	m := csrfField.FindStringSubmatch(string(body))
	if m == nil || m[1] == "" {
		t.Fatal("checkout form rendered without a csrf token")
	}

	// Submit the form exactly as a browser would: hidden field + cookie.
	form := "name=Ada+Lovelace&phone=%2B1+234+5678&csrf=" + m[1]
	req = httptest.NewRequest("POST", "/checkout", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfCookie})
	if resp, err = app.Test(req, -1); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("place = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/order/success/") {
		t.Fatalf("redirected to %q", loc)
	}
}

// A rejected login must come back with a token the visitor can retry with.
func TestFailedLoginRendersUsableToken(t *testing.T) {
	app := newBrowserApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/login", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	csrfCookie := cookieValue(resp, "csrf_")
	body, _ := io.ReadAll(resp.Body)
	m := csrfField.FindStringSubmatch(string(body))
	if m == nil || m[1] == "" {
		t.Fatal("login form rendered without a csrf token")
	}

	form := "email=ghost%40candelore.test&password=whatever1%21&csrf=" + m[1]
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfCookie})
	if resp, err = app.Test(req, -1); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("bad login = %d, want 401", resp.StatusCode)
	}
	body, _ = io.ReadAll(resp.Body)
	m = csrfField.FindStringSubmatch(string(body))
	if m == nil || m[1] == "" {
		t.Fatal("failed login rendered without a csrf token")
	}
}

func TestFormPostWithoutTokenIsRejected(t *testing.T) {
	app := newBrowserApp(t)
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader("name=Ada&phone=12345"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("tokenless post = %d, want 403", resp.StatusCode)
	}
}

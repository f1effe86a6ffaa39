package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"candelore/internal/repos"
	"candelore/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	fixture := `
	INSERT INTO products(id,sku,name,description,wax_type,category,price,active,created_at)
	  VALUES ('cndl-a','CNDL-A','Amber Pillar','Soy pillar candle','soy','pillar',10.00,1,'now'),
	         ('cndl-b','CNDL-B','Birch Taper','Beeswax taper','beeswax','taper',4.50,1,'now');
	INSERT INTO colors(id,product_id,name,hex,is_default,price_modifier)
	  VALUES ('col-white','cndl-a','White','#FFFFFF',1,0),
	         ('col-red','cndl-a','Red','#CC0000',0,0.1);
	`
	if _, err := db.Exec(fixture); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartAndCheckout(db *sqlx.DB) (*services.CartService, *services.CheckoutService, *repos.OrderRepo) {
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	colorRepo := repos.NewColorRepo(db)
	imageRepo := repos.NewImageRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartSvc := services.NewCartService(cartRepo, prodRepo, colorRepo, imageRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, prodRepo, colorRepo, orderRepo)
	return cartSvc, checkoutSvc, orderRepo
}

func str(s string) *string { return &s }

// Repeated adds with the same (product, color) merge into one line; a
// different color makes a new line.
func TestCartAddMergesOnProductAndColor(t *testing.T) {
	db := memdb(t)
	cartSvc, _, _ := newCartAndCheckout(db)
	sid := "visitor-1"

	if err := cartSvc.Add(sid, "cndl-a", str("col-red"), 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cndl-a", str("col-red"), 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cndl-a", nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cndl-b", nil, 1); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 3 {
		t.Fatalf("want 3 distinct lines, got %d: %+v", len(cv.Items), cv.Items)
	}
	if cv.Items[0].Qty != 3 {
		t.Fatalf("merged line qty = %d, want 3", cv.Items[0].Qty)
	}
	if cv.Items[0].UnitPrice != 11.00 {
		t.Fatalf("red unit price = %v, want 11.00", cv.Items[0].UnitPrice)
	}
	if cv.Items[1].UnitPrice != 10.00 {
		t.Fatalf("colorless unit price = %v, want 10.00", cv.Items[1].UnitPrice)
	}
}

func TestCartUpdateQuantityClampsAndIgnoresOutOfRange(t *testing.T) {
	db := memdb(t)
	cartSvc, _, _ := newCartAndCheckout(db)
	sid := "visitor-2"

	if err := cartSvc.Add(sid, "cndl-a", nil, 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.UpdateQuantity(sid, 0, 0); err != nil {
		t.Fatal(err)
	}
	cv, _ := cartSvc.View(sid)
	if cv.Items[0].Qty != 1 {
		t.Fatalf("qty should clamp to 1, got %d", cv.Items[0].Qty)
	}

	// Out of range: silent no-ops, cart untouched
	if err := cartSvc.UpdateQuantity(sid, 7, 5); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Remove(sid, 7); err != nil {
		t.Fatal(err)
	}
	cv, _ = cartSvc.View(sid)
	if len(cv.Items) != 1 || cv.Items[0].Qty != 1 {
		t.Fatalf("cart changed by out-of-range ops: %+v", cv.Items)
	}
}

func TestCartRemoveKeepsOrder(t *testing.T) {
	db := memdb(t)
	cartSvc, _, _ := newCartAndCheckout(db)
	sid := "visitor-3"

	if err := cartSvc.Add(sid, "cndl-a", nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cndl-b", nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Remove(sid, 0); err != nil {
		t.Fatal(err)
	}
	cv, _ := cartSvc.View(sid)
	if len(cv.Items) != 1 || cv.Items[0].ProductID != "cndl-b" {
		t.Fatalf("unexpected cart after remove: %+v", cv.Items)
	}
}

// End-to-end scenario: price 10.00 with +10% color, qty 2 then 1 more,
// checkout totals 33.00 and the cart drains.
func TestCheckoutScenario(t *testing.T) {
	db := memdb(t)
	cartSvc, checkoutSvc, orderRepo := newCartAndCheckout(db)
	sid := "visitor-4"

	if err := cartSvc.Add(sid, "cndl-a", str("col-red"), 2); err != nil {
		t.Fatal(err)
	}
	cv, _ := cartSvc.View(sid)
	if len(cv.Items) != 1 || cv.Items[0].UnitPrice != 11.00 || cv.Items[0].Subtotal != 22.00 {
		t.Fatalf("bad cart view: %+v", cv)
	}
	if err := cartSvc.Add(sid, "cndl-a", str("col-red"), 1); err != nil {
		t.Fatal(err)
	}

	oid, err := checkoutSvc.Place(sid, services.Customer{Name: "Olena", Phone: "+380501112233", ContactMethod: "viber"})
	if err != nil {
		t.Fatal(err)
	}
	o, err := orderRepo.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 33.00 {
		t.Fatalf("order total = %v, want 33.00", o.Total)
	}
	if o.Status != "new" {
		t.Fatalf("order status = %q, want new", o.Status)
	}
	items, err := orderRepo.Items(oid)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Qty != 3 {
		t.Fatalf("bad order items: %+v", items)
	}

	cv, _ = cartSvc.View(sid)
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", cv.Items)
	}
}

func TestCheckoutEmptyCartWritesNothing(t *testing.T) {
	db := memdb(t)
	_, checkoutSvc, _ := newCartAndCheckout(db)

	if _, err := checkoutSvc.Place("visitor-5", services.Customer{Name: "Nobody", Phone: "12345"}); err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("orders written for empty cart: %d", n)
	}
}

func TestCheckoutSkipsDeletedProducts(t *testing.T) {
	db := memdb(t)
	cartSvc, checkoutSvc, orderRepo := newCartAndCheckout(db)
	sid := "visitor-6"

	if err := cartSvc.Add(sid, "cndl-a", nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, "cndl-b", nil, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`DELETE FROM products WHERE id='cndl-a'`); err != nil {
		t.Fatal(err)
	}

	oid, err := checkoutSvc.Place(sid, services.Customer{Name: "Ihor", Phone: "067 111 22 33"})
	if err != nil {
		t.Fatal(err)
	}
	o, _ := orderRepo.Get(oid)
	if o.Total != 9.00 {
		t.Fatalf("order total = %v, want 9.00 (deleted line dropped)", o.Total)
	}
	items, _ := orderRepo.Items(oid)
	if len(items) != 1 || items[0].ProductID != "cndl-b" {
		t.Fatalf("bad surviving items: %+v", items)
	}
}

// A committed order survives a cart that refuses to clear; the stale cart is
// the smaller problem.
func TestCheckoutSucceedsWhenCartClearFails(t *testing.T) {
	db := memdb(t)
	cartSvc, checkoutSvc, orderRepo := newCartAndCheckout(db)
	sid := "visitor-clear"

	if err := cartSvc.Add(sid, "cndl-a", nil, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TRIGGER block_clear BEFORE DELETE ON cart_items
	  BEGIN SELECT RAISE(ABORT, 'cart locked'); END`); err != nil {
		t.Fatal(err)
	}

	orderID, err := checkoutSvc.Place(sid, services.Customer{Name: "Ada", Phone: "12345"})
	if err != nil {
		t.Fatalf("place = %v, want order despite failed clear", err)
	}
	if _, err := orderRepo.Get(orderID); err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	cv, err := cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 {
		t.Fatalf("cart lines = %d, want the original line still present", len(cv.Items))
	}
}

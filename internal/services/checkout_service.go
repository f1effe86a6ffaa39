package services

import (
	"database/sql"
	"errors"

	"candelore/internal/domain"
	applog "candelore/internal/log"
	"candelore/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart refuses checkout before anything is written.
var ErrEmptyCart = errors.New("cart is empty")

type Customer struct {
	Name          string
	Phone         string
	ContactMethod string
	Address       string
	Comment       string
}

// CheckoutService drains a session's cart into a persisted order.
type CheckoutService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Colors *repos.ColorRepo
	Orders *repos.OrderRepo
}

func NewCheckoutService(carts *repos.CartRepo, prods *repos.ProductRepo, colors *repos.ColorRepo, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Carts: carts, Prods: prods, Colors: colors, Orders: orders}
}

// Place writes one order plus one item per cart line whose product still
// exists; lines pointing at deleted products are dropped, not failed. The
// header and items land in a single transaction and the cart is cleared only
// after the commit.
func (s *CheckoutService) Place(sessionID string, cust Customer) (string, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	orderID := uuid.NewString()
	items := []domain.OrderItem{}
	total := decimal.Zero
	for _, ln := range lines {
		if _, err := s.Prods.Get(ln.ProductID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return "", err
		}
		colorID := ln.ColorID
		if colorID != nil {
			if _, err := s.Colors.Get(*colorID); err != nil {
				colorID = nil // color deleted since add, keep line without it
			}
		}
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: ln.ProductID,
			ColorID:   colorID,
			Qty:       ln.Qty,
			UnitPrice: ln.UnitPrice,
		})
		total = total.Add(lineSubtotal(ln.UnitPrice, ln.Qty))
	}

	o := domain.Order{
		ID:            orderID,
		CustomerName:  cust.Name,
		Phone:         cust.Phone,
		ContactMethod: cust.ContactMethod,
		Address:       cust.Address,
		Comment:       cust.Comment,
	}
	o.Total, _ = total.Round(2).Float64()

	if err := s.Orders.CreateWithItems(o, items); err != nil {
		return "", err
	}
	if err := s.Carts.Clear(cartID); err != nil {
		// The order is committed; a stale cart invites a duplicate on refresh.
		applog.Error(nil, "checkout.cart.clear", err, map[string]any{"cart_id": cartID, "order_id": orderID})
	}
	return orderID, nil
}

package services

import (
	"database/sql"
	"errors"

	"candelore/internal/repos"

	"github.com/shopspring/decimal"
)

type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Colors *repos.ColorRepo
	Images *repos.ImageRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, colors *repos.ColorRepo, images *repos.ImageRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods, Colors: colors, Images: images}
}

// Add puts qty of a product (optionally in a color) into the session's cart.
// A line matching on (product, color) gains quantity instead of duplicating.
// The unit price is captured here and never recomputed.
func (s *CartService) Add(sessionID, productID string, colorID *string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	modifier := 0.0
	if colorID != nil {
		c, err := s.Colors.Get(*colorID)
		if err != nil {
			return err
		}
		modifier = c.PriceModifier
	}
	return s.Carts.Upsert(cartID, p.ID, colorID, qty, UnitPrice(p.Price, modifier))
}

// UpdateQuantity clamps to >= 1. An out-of-range index is a silent no-op.
func (s *CartService) UpdateQuantity(sessionID string, index, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	if err := s.Carts.SetQtyAt(cartID, index, qty); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}

// Remove drops the line at index. Out of range is a silent no-op.
func (s *CartService) Remove(sessionID string, index int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	if err := s.Carts.RemoveAt(cartID, index); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartViewItem struct {
	Index       int
	ProductID   string
	ProductName string
	ColorName   string
	ColorHex    string
	Qty         int
	UnitPrice   float64
	Subtotal    float64
	Preview     string
}

type CartView struct {
	Items []CartViewItem
	Total float64
}

// View renders the cart with captured prices. Lines whose product has been
// deleted since are left out of the view (checkout drops them too).
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}

	cv := CartView{Items: []CartViewItem{}}
	total := decimal.Zero
	for i, ln := range lines {
		p, err := s.Prods.Get(ln.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return CartView{}, err
		}
		item := CartViewItem{
			Index:       i,
			ProductID:   p.ID,
			ProductName: p.Name,
			Qty:         ln.Qty,
			UnitPrice:   ln.UnitPrice,
		}
		if ln.ColorID != nil {
			if c, err := s.Colors.Get(*ln.ColorID); err == nil {
				item.ColorName = c.Name
				item.ColorHex = c.Hex
			}
		}
		if imgs, err := s.Images.ForProduct(p.ID); err == nil && len(imgs) > 0 {
			item.Preview = imgs[0].PreviewFilename
		}
		sub := lineSubtotal(ln.UnitPrice, ln.Qty)
		item.Subtotal, _ = sub.Round(2).Float64()
		total = total.Add(sub)
		cv.Items = append(cv.Items, item)
	}
	cv.Total, _ = total.Round(2).Float64()
	return cv, nil
}

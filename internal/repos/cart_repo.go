package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CartRepo stores each visitor's cart server-side, keyed by the session id.
// Lines form an ordered list (position column) so the shop endpoints can
// address them by index.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartLine struct {
	ID        string  `db:"id"`
	ProductID string  `db:"product_id"`
	ColorID   *string `db:"color_id"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Position  int     `db:"position"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if _, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339)); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT id, product_id, color_id, qty, unit_price, position
	  FROM cart_items WHERE cart_id = ?
	  ORDER BY position
	`, cartID)
	return lines, err
}

// Upsert merges on (product_id, color_id): an existing line gains qty, a new
// line is appended at the end with the captured unit price.
func (r *CartRepo) Upsert(cartID, productID string, colorID *string, qty int, unitPrice float64) error {
	res, err := r.db.Exec(`
	  UPDATE cart_items SET qty = qty + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE cart_id = ? AND product_id = ? AND color_id IS ?
	`, qty, cartID, productID, colorID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var next sql.NullInt64
	if err := r.db.Get(&next, `SELECT MAX(position)+1 FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO cart_items(id, cart_id, product_id, color_id, qty, unit_price, position, created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, uuid.NewString(), cartID, productID, colorID, qty, unitPrice, next.Int64)
	return err
}

// lineAt resolves the nth line by position order. sql.ErrNoRows when the
// index is out of range.
func (r *CartRepo) lineAt(cartID string, index int) (string, error) {
	if index < 0 {
		return "", sql.ErrNoRows
	}
	var id string
	err := r.db.Get(&id, `
	  SELECT id FROM cart_items WHERE cart_id = ?
	  ORDER BY position LIMIT 1 OFFSET ?
	`, cartID, index)
	return id, err
}

func (r *CartRepo) SetQtyAt(cartID string, index, qty int) error {
	id, err := r.lineAt(cartID, index)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, qty, id)
	return err
}

func (r *CartRepo) RemoveAt(cartID string, index int) error {
	id, err := r.lineAt(cartID, index)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`DELETE FROM cart_items WHERE id = ?`, id)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

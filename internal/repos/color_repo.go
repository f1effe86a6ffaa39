package repos

import (
	"candelore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ColorRepo struct{ db *sqlx.DB }

func NewColorRepo(db *sqlx.DB) *ColorRepo { return &ColorRepo{db: db} }

// ForProduct returns a product's colors, default first.
func (r *ColorRepo) ForProduct(productID string) ([]domain.Color, error) {
	var out []domain.Color
	err := r.db.Select(&out, `
	  SELECT id, product_id, name, hex, is_default, price_modifier
	  FROM colors WHERE product_id = ?
	  ORDER BY is_default DESC, name
	`, productID)
	return out, err
}

func (r *ColorRepo) Get(id string) (domain.Color, error) {
	var c domain.Color
	err := r.db.Get(&c, `
	  SELECT id, product_id, name, hex, is_default, price_modifier
	  FROM colors WHERE id = ?
	`, id)
	return c, err
}

func (r *ColorRepo) Insert(c domain.Color) error {
	_, err := r.db.Exec(`
	  INSERT INTO colors(id, product_id, name, hex, is_default, price_modifier)
	  VALUES(?,?,?,?,?,?)
	`, c.ID, c.ProductID, c.Name, c.Hex, c.Default, c.PriceModifier)
	return err
}

// ClearDefault drops the default flag on every color of the product. Called
// before inserting a new default so at most one sibling carries the flag.
func (r *ColorRepo) ClearDefault(productID string) error {
	_, err := r.db.Exec(`UPDATE colors SET is_default = 0 WHERE product_id = ?`, productID)
	return err
}

func (r *ColorRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM colors WHERE id = ?`, id)
	return err
}

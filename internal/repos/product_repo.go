package repos

import (
	"time"

	"candelore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, sku, name, description, wax_type, category,
  width, height, depth, weight, price, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

// ListActive returns storefront products.
func (r *ProductRepo) ListActive() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE active = 1 ORDER BY name`)
	return out, err
}

// ListAll returns every product for the admin list, inactive included.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY name`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, sku, name, description, wax_type, category,
	                       width, height, depth, weight, price, active, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.SKU, p.Name, p.Description, p.WaxType, p.Category,
		p.Width, p.Height, p.Depth, p.Weight, p.Price, p.Active)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET sku=?, name=?, description=?, wax_type=?, category=?,
	         width=?, height=?, depth=?, weight=?, price=?, active=?, updated_at=?
	  WHERE id=?
	`, p.SKU, p.Name, p.Description, p.WaxType, p.Category,
		p.Width, p.Height, p.Depth, p.Weight, p.Price, p.Active,
		time.Now().UTC().Format(time.RFC3339), p.ID)
	return err
}

// Delete removes the product row; colors and images cascade. Stored image
// files are the caller's problem (see CatalogService.DeleteProduct).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

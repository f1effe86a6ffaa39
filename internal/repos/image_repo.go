package repos

import (
	"candelore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ImageRepo struct{ db *sqlx.DB }

func NewImageRepo(db *sqlx.DB) *ImageRepo { return &ImageRepo{db: db} }

// ForProduct returns a product's images in display order.
func (r *ImageRepo) ForProduct(productID string) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.db.Select(&out, `
	  SELECT id, product_id, filename, preview_filename, alt_text, sort_order
	  FROM product_images WHERE product_id = ?
	  ORDER BY sort_order, id
	`, productID)
	return out, err
}

func (r *ImageRepo) Get(id string) (domain.ProductImage, error) {
	var img domain.ProductImage
	err := r.db.Get(&img, `
	  SELECT id, product_id, filename, preview_filename, alt_text, sort_order
	  FROM product_images WHERE id = ?
	`, id)
	return img, err
}

func (r *ImageRepo) Insert(img domain.ProductImage) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_images(id, product_id, filename, preview_filename, alt_text, sort_order)
	  VALUES(?,?,?,?,?,?)
	`, img.ID, img.ProductID, img.Filename, img.PreviewFilename, img.AltText, img.SortOrder)
	return err
}

func (r *ImageRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM product_images WHERE id = ?`, id)
	return err
}

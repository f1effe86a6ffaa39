package repos

import (
	"candelore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CompositionRepo struct{ db *sqlx.DB }

func NewCompositionRepo(db *sqlx.DB) *CompositionRepo { return &CompositionRepo{db: db} }

// ListActive returns storefront compositions, newest first.
func (r *CompositionRepo) ListActive() ([]domain.Composition, error) {
	var out []domain.Composition
	err := r.db.Select(&out, `
	  SELECT id, title, description, image, active, created_at
	  FROM compositions WHERE active = 1
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *CompositionRepo) ListAll() ([]domain.Composition, error) {
	var out []domain.Composition
	err := r.db.Select(&out, `
	  SELECT id, title, description, image, active, created_at
	  FROM compositions
	  ORDER BY datetime(created_at) DESC
	`)
	return out, err
}

func (r *CompositionRepo) Get(id string) (domain.Composition, error) {
	var c domain.Composition
	err := r.db.Get(&c, `
	  SELECT id, title, description, image, active, created_at
	  FROM compositions WHERE id = ?
	`, id)
	return c, err
}

func (r *CompositionRepo) Insert(c domain.Composition) error {
	_, err := r.db.Exec(`
	  INSERT INTO compositions(id, title, description, image, active, created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, c.ID, c.Title, c.Description, c.Image, c.Active)
	return err
}

func (r *CompositionRepo) Update(c domain.Composition) error {
	_, err := r.db.Exec(`
	  UPDATE compositions SET title=?, description=?, image=?, active=? WHERE id=?
	`, c.Title, c.Description, c.Image, c.Active, c.ID)
	return err
}

func (r *CompositionRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM compositions WHERE id = ?`, id)
	return err
}

package services

import (
	"io"

	"candelore/internal/domain"
	"candelore/internal/repos"
	"candelore/internal/uploads"

	"github.com/google/uuid"
)

type CompositionService struct {
	Comps *repos.CompositionRepo
	Files *uploads.Store
}

func NewCompositionService(comps *repos.CompositionRepo, files *uploads.Store) *CompositionService {
	return &CompositionService{Comps: comps, Files: files}
}

func (s *CompositionService) ListActive() ([]domain.Composition, error) { return s.Comps.ListActive() }
func (s *CompositionService) ListAll() ([]domain.Composition, error)    { return s.Comps.ListAll() }
func (s *CompositionService) Get(id string) (domain.Composition, error) { return s.Comps.Get(id) }

// Create stores the showcase; the image is optional (pass a nil reader).
func (s *CompositionService) Create(title, description string, active bool, uploadName string, r io.Reader) (string, error) {
	c := domain.Composition{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Active:      active,
	}
	if r != nil && uploadName != "" {
		original, _, err := s.Files.Save(uploadName, r)
		if err != nil {
			return "", err
		}
		c.Image = original
	}
	return c.ID, s.Comps.Insert(c)
}

// Update edits the fields and, when a new image is supplied, swaps the stored
// files. The old files are removed best effort once the row points elsewhere.
func (s *CompositionService) Update(id, title, description string, active bool, uploadName string, r io.Reader) error {
	c, err := s.Comps.Get(id)
	if err != nil {
		return err
	}
	c.Title = title
	c.Description = description
	c.Active = active

	old := c.Image
	if r != nil && uploadName != "" {
		original, _, err := s.Files.Save(uploadName, r)
		if err != nil {
			return err
		}
		c.Image = original
	}
	if err := s.Comps.Update(c); err != nil {
		return err
	}
	if old != "" && old != c.Image {
		s.Files.Remove(old, uploads.PreviewName(old))
	}
	return nil
}

func (s *CompositionService) Delete(id string) error {
	c, err := s.Comps.Get(id)
	if err != nil {
		return err
	}
	if c.Image != "" {
		s.Files.Remove(c.Image, uploads.PreviewName(c.Image))
	}
	return s.Comps.Delete(id)
}

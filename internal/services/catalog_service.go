package services

import (
	"io"

	"candelore/internal/domain"
	"candelore/internal/repos"
	"candelore/internal/uploads"

	"github.com/google/uuid"
)

// CatalogService carries the admin-side product policies: the auto white
// default color, the single-default-per-product rule, and file cleanup on
// delete.
type CatalogService struct {
	Prods  *repos.ProductRepo
	Colors *repos.ColorRepo
	Images *repos.ImageRepo
	Files  *uploads.Store
}

func NewCatalogService(prods *repos.ProductRepo, colors *repos.ColorRepo, images *repos.ImageRepo, files *uploads.Store) *CatalogService {
	return &CatalogService{Prods: prods, Colors: colors, Images: images, Files: files}
}

// CreateProduct inserts the product and, when the caller supplies no colors,
// a default white variant (#FFFFFF, modifier 0).
func (s *CatalogService) CreateProduct(p domain.Product, colors []domain.Color) (string, error) {
	p.ID = uuid.NewString()
	p.Active = true
	if err := s.Prods.Insert(p); err != nil {
		return "", err
	}
	if len(colors) == 0 {
		colors = []domain.Color{{Name: "White", Hex: "#FFFFFF", Default: true, PriceModifier: 0}}
	}
	for _, c := range colors {
		c.ID = uuid.NewString()
		c.ProductID = p.ID
		if err := s.Colors.Insert(c); err != nil {
			return "", err
		}
	}
	return p.ID, nil
}

func (s *CatalogService) UpdateProduct(p domain.Product) error {
	return s.Prods.Update(p)
}

// DeleteProduct removes stored image files first, then the row; colors and
// image rows cascade with it.
func (s *CatalogService) DeleteProduct(id string) error {
	imgs, err := s.Images.ForProduct(id)
	if err != nil {
		return err
	}
	for _, img := range imgs {
		s.Files.Remove(img.Filename, img.PreviewFilename)
	}
	return s.Prods.Delete(id)
}

// AddColor inserts a color variant. A new default clears the flag on every
// sibling first (last writer wins).
func (s *CatalogService) AddColor(c domain.Color) error {
	if c.Default {
		if err := s.Colors.ClearDefault(c.ProductID); err != nil {
			return err
		}
	}
	c.ID = uuid.NewString()
	return s.Colors.Insert(c)
}

// DeleteColor removes a variant and reports the product it belonged to so
// the caller can redirect back to the edit form.
func (s *CatalogService) DeleteColor(id string) (string, error) {
	c, err := s.Colors.Get(id)
	if err != nil {
		return "", err
	}
	return c.ProductID, s.Colors.Delete(id)
}

// AddImage ingests the upload and associates it with the product. The row is
// written only after both files are safely on disk.
func (s *CatalogService) AddImage(productID, uploadName string, r io.Reader, altText string, sortOrder int) (domain.ProductImage, error) {
	original, preview, err := s.Files.Save(uploadName, r)
	if err != nil {
		return domain.ProductImage{}, err
	}
	img := domain.ProductImage{
		ID:              uuid.NewString(),
		ProductID:       productID,
		Filename:        original,
		PreviewFilename: preview,
		AltText:         altText,
		SortOrder:       sortOrder,
	}
	if err := s.Images.Insert(img); err != nil {
		s.Files.Remove(original, preview)
		return domain.ProductImage{}, err
	}
	return img, nil
}

// DeleteImage removes both stored files before dropping the row.
func (s *CatalogService) DeleteImage(id string) (string, error) {
	img, err := s.Images.Get(id)
	if err != nil {
		return "", err
	}
	s.Files.Remove(img.Filename, img.PreviewFilename)
	return img.ProductID, s.Images.Delete(id)
}

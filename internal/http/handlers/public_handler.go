package handlers

import (
	applog "candelore/internal/log"
	"candelore/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PublicHandler struct {
	Catalog *services.CatalogService
	Comps   *services.CompositionService
}

// GET /
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	comps, err := h.Comps.ListActive()
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "home", fiber.Map{"Compositions": comps})
}

// GET /compositions
func (h *PublicHandler) Compositions(c *fiber.Ctx) error {
	comps, err := h.Comps.ListActive()
	if err != nil {
		applog.Error(c, "compositions.load", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "compositions", fiber.Map{"Compositions": comps})
}

// GET /faq
func (h *PublicHandler) FAQ(c *fiber.Ctx) error {
	return render(c, "faq", fiber.Map{})
}

// GET /catalog
func (h *PublicHandler) Catalogue(c *fiber.Ctx) error {
	products, err := h.Catalog.Prods.ListActive()
	if err != nil {
		applog.Error(c, "catalog.load", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "catalog", fiber.Map{"Products": products})
}

// GET /product/:id
func (h *PublicHandler) ProductDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.Catalog.Prods.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	colors, err := h.Catalog.Colors.ForProduct(p.ID)
	if err != nil {
		applog.Error(c, "product.colors", err, map[string]any{"product_id": id})
		return fiber.ErrInternalServerError
	}
	images, err := h.Catalog.Images.ForProduct(p.ID)
	if err != nil {
		applog.Error(c, "product.images", err, map[string]any{"product_id": id})
		return fiber.ErrInternalServerError
	}
	return render(c, "product", fiber.Map{"Product": p, "Colors": colors, "Images": images})
}

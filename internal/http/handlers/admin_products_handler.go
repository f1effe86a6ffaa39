package handlers

import (
	"errors"

	"candelore/internal/domain"
	applog "candelore/internal/log"
	"candelore/internal/services"
	"candelore/internal/uploads"
	"candelore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminProductsHandler struct {
	Catalog *services.CatalogService
}

// GET /admin
func (h *AdminProductsHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// GET /admin/products
func (h *AdminProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.Prods.ListAll()
	if err != nil {
		applog.Error(c, "admin.products.list", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

// GET /admin/products/new
func (h *AdminProductsHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{"Product": nil, "Colors": nil, "Images": nil})
}

func productFromForm(c *fiber.Ctx, base domain.Product) (domain.Product, bool) {
	sku, ok := validate.SKU(c.FormValue("sku", base.SKU))
	if !ok {
		return base, false
	}
	name, ok := validate.Name(c.FormValue("name", base.Name))
	if !ok {
		return base, false
	}
	base.SKU = sku
	base.Name = name
	base.Description = c.FormValue("description", base.Description)
	base.WaxType = c.FormValue("wax_type", base.WaxType)
	base.Category = c.FormValue("category", base.Category)
	base.Width = validate.Float(c.FormValue("width"))
	base.Height = validate.Float(c.FormValue("height"))
	base.Depth = validate.Float(c.FormValue("depth"))
	base.Weight = validate.Float(c.FormValue("weight"))
	base.Price = validate.Price(c.FormValue("price"))
	return base, true
}

// POST /admin/products/new
func (h *AdminProductsHandler) Create(c *fiber.Ctx) error {
	p, ok := productFromForm(c, domain.Product{})
	if !ok {
		setFlash(c, "SKU and name are required")
		return c.Redirect("/admin/products/new")
	}
	id, err := h.Catalog.CreateProduct(p, nil)
	if err != nil {
		applog.Error(c, "admin.products.create", err, map[string]any{"sku": p.SKU})
		setFlash(c, "Could not create product (duplicate SKU?)")
		return c.Redirect("/admin/products/new")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": id, "sku": p.SKU})
	return c.Redirect("/admin/products/" + id + "/edit")
}

// GET /admin/products/:id/edit
func (h *AdminProductsHandler) EditForm(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.Catalog.Prods.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	colors, _ := h.Catalog.Colors.ForProduct(id)
	images, _ := h.Catalog.Images.ForProduct(id)
	return render(c, "admin_product_form", fiber.Map{"Product": p, "Colors": colors, "Images": images})
}

// POST /admin/products/:id/edit
func (h *AdminProductsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.Catalog.Prods.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	p, ok := productFromForm(c, p)
	if !ok {
		setFlash(c, "SKU and name are required")
		return c.Redirect("/admin/products/" + id + "/edit")
	}
	p.Active = c.FormValue("is_active") != ""
	if err := h.Catalog.UpdateProduct(p); err != nil {
		applog.Error(c, "admin.products.update", err, map[string]any{"product_id": id})
		setFlash(c, "Could not save product")
		return c.Redirect("/admin/products/" + id + "/edit")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	setFlash(c, "Saved")
	return c.Redirect("/admin/products/" + id + "/edit")
}

// POST /admin/products/:id/delete
func (h *AdminProductsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.DeleteProduct(id); err != nil {
		applog.Error(c, "admin.products.delete", err, map[string]any{"product_id": id})
		setFlash(c, "Could not delete product")
		return c.Redirect("/admin/products")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/colors/add
func (h *AdminProductsHandler) AddColor(c *fiber.Ctx) error {
	productID := c.Params("id")
	name, okName := validate.Name(c.FormValue("color_name"))
	hex, okHex := validate.HexColor(c.FormValue("color_hex"))
	if !okName || !okHex {
		setFlash(c, "Color needs a name and a #RRGGBB value")
		return c.Redirect("/admin/products/" + productID + "/edit")
	}
	col := domain.Color{
		ProductID:     productID,
		Name:          name,
		Hex:           hex,
		Default:       c.FormValue("is_default") != "",
		PriceModifier: validate.Float(c.FormValue("price_modifier")),
	}
	if err := h.Catalog.AddColor(col); err != nil {
		applog.Error(c, "admin.colors.add", err, map[string]any{"product_id": productID})
		setFlash(c, "Could not add color")
	}
	return c.Redirect("/admin/products/" + productID + "/edit")
}

// POST /admin/colors/:id/delete
func (h *AdminProductsHandler) DeleteColor(c *fiber.Ctx) error {
	productID, err := h.Catalog.DeleteColor(c.Params("id"))
	if err != nil {
		applog.Error(c, "admin.colors.delete", err, map[string]any{"color_id": c.Params("id")})
		return c.Redirect("/admin/products")
	}
	return c.Redirect("/admin/products/" + productID + "/edit")
}

// POST /admin/products/:id/images/add
func (h *AdminProductsHandler) AddImage(c *fiber.Ctx) error {
	productID := c.Params("id")
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		setFlash(c, "No image file provided")
		return c.Redirect("/admin/products/" + productID + "/edit")
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "admin.images.open", err, map[string]any{"product_id": productID})
		setFlash(c, "Could not read the uploaded file")
		return c.Redirect("/admin/products/" + productID + "/edit")
	}
	defer f.Close()

	sortOrder := 0
	if n := validate.Index(c.FormValue("sort_order")); n >= 0 {
		sortOrder = n
	}
	img, err := h.Catalog.AddImage(productID, fh.Filename, f, c.FormValue("alt_text"), sortOrder)
	if err != nil {
		if errors.Is(err, uploads.ErrBadExtension) {
			setFlash(c, "Unsupported image type (use jpg, jpeg, png, gif or webp)")
		} else {
			applog.Error(c, "admin.images.add", err, map[string]any{"product_id": productID})
			setFlash(c, "Upload failed: "+err.Error())
		}
		return c.Redirect("/admin/products/" + productID + "/edit")
	}
	applog.Audit(c, "admin.images.add", map[string]any{"product_id": productID, "image_id": img.ID})
	return c.Redirect("/admin/products/" + productID + "/edit")
}

// POST /admin/images/:id/delete
func (h *AdminProductsHandler) DeleteImage(c *fiber.Ctx) error {
	productID, err := h.Catalog.DeleteImage(c.Params("id"))
	if err != nil {
		applog.Error(c, "admin.images.delete", err, map[string]any{"image_id": c.Params("id")})
		return c.Redirect("/admin/products")
	}
	applog.Audit(c, "admin.images.delete", map[string]any{"image_id": c.Params("id")})
	return c.Redirect("/admin/products/" + productID + "/edit")
}

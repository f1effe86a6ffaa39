package handlers

import (
	"errors"
	"io"

	applog "candelore/internal/log"
	"candelore/internal/services"
	"candelore/internal/uploads"
	"candelore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminCompositionsHandler struct {
	Comps *services.CompositionService
}

// GET /admin/compositions
func (h *AdminCompositionsHandler) List(c *fiber.Ctx) error {
	comps, err := h.Comps.ListAll()
	if err != nil {
		applog.Error(c, "admin.compositions.list", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "admin_compositions", fiber.Map{"Compositions": comps})
}

// GET /admin/compositions/new
func (h *AdminCompositionsHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_composition_form", fiber.Map{"Composition": nil})
}

// optionalUpload opens the "image" form file when one was submitted.
func optionalUpload(c *fiber.Ctx) (string, io.ReadCloser) {
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil
	}
	return fh.Filename, f
}

func flashUploadError(c *fiber.Ctx, err error) {
	if errors.Is(err, uploads.ErrBadExtension) {
		setFlash(c, "Unsupported image type (use jpg, jpeg, png, gif or webp)")
	} else {
		setFlash(c, "Upload failed: "+err.Error())
	}
}

// POST /admin/compositions/new
func (h *AdminCompositionsHandler) Create(c *fiber.Ctx) error {
	title, ok := validate.Name(c.FormValue("title"))
	if !ok {
		setFlash(c, "Title is required")
		return c.Redirect("/admin/compositions/new")
	}
	name, f := optionalUpload(c)
	if f != nil {
		defer f.Close()
	}
	id, err := h.Comps.Create(title, c.FormValue("description"), c.FormValue("is_active") != "", name, f)
	if err != nil {
		applog.Error(c, "admin.compositions.create", err, nil)
		flashUploadError(c, err)
		return c.Redirect("/admin/compositions/new")
	}
	applog.Audit(c, "admin.compositions.create", map[string]any{"composition_id": id})
	return c.Redirect("/admin/compositions")
}

// GET /admin/compositions/:id/edit
func (h *AdminCompositionsHandler) EditForm(c *fiber.Ctx) error {
	comp, err := h.Comps.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Composition not found"})
	}
	return render(c, "admin_composition_form", fiber.Map{"Composition": comp})
}

// POST /admin/compositions/:id/edit
func (h *AdminCompositionsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	comp, err := h.Comps.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Composition not found"})
	}
	title, ok := validate.Name(c.FormValue("title", comp.Title))
	if !ok {
		setFlash(c, "Title is required")
		return c.Redirect("/admin/compositions/" + id + "/edit")
	}
	name, f := optionalUpload(c)
	if f != nil {
		defer f.Close()
	}
	err = h.Comps.Update(id, title, c.FormValue("description", comp.Description), c.FormValue("is_active") != "", name, f)
	if err != nil {
		applog.Error(c, "admin.compositions.update", err, map[string]any{"composition_id": id})
		flashUploadError(c, err)
		return c.Redirect("/admin/compositions/" + id + "/edit")
	}
	applog.Audit(c, "admin.compositions.update", map[string]any{"composition_id": id})
	return c.Redirect("/admin/compositions")
}

// POST /admin/compositions/:id/delete
func (h *AdminCompositionsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Comps.Delete(id); err != nil {
		applog.Error(c, "admin.compositions.delete", err, map[string]any{"composition_id": id})
		setFlash(c, "Could not delete composition")
	} else {
		applog.Audit(c, "admin.compositions.delete", map[string]any{"composition_id": id})
	}
	return c.Redirect("/admin/compositions")
}

package handlers

import (
	"database/sql"
	"errors"

	applog "candelore/internal/log"
	"candelore/internal/services"
	"candelore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
	SID  SIDCodec
}

type cartAddReq struct {
	ProductID string  `json:"product_id"`
	ColorID   *string `json:"color_id"`
	Quantity  int     `json:"quantity"`
}

type cartQtyReq struct {
	Quantity int `json:"quantity"`
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(h.SID.EnsureSID(c))
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// POST /cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.SID.EnsureSID(c)
	var req cartAddReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing product_id"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if err := h.Cart.Add(sid, req.ProductID, req.ColorID, req.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "cart.add", err, map[string]any{"product_id": req.ProductID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not add to cart"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// POST /cart/update/:index
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := h.SID.EnsureSID(c)
	index := validate.Index(c.Params("index"))
	var req cartQtyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad json"})
	}
	if err := h.Cart.UpdateQuantity(sid, index, req.Quantity); err != nil {
		applog.Error(c, "cart.update", err, map[string]any{"index": index})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update cart"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// POST /cart/remove/:index
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := h.SID.EnsureSID(c)
	index := validate.Index(c.Params("index"))
	if err := h.Cart.Remove(sid, index); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"index": index})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update cart"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

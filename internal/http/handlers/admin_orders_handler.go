package handlers

import (
	applog "candelore/internal/log"
	"candelore/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type AdminOrdersHandler struct {
	Orders *repos.OrderRepo
}

// GET /admin/orders
func (h *AdminOrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(200)
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

// POST /admin/orders/:id/status
func (h *AdminOrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || status == "" {
		setFlash(c, "Missing order or status")
		return c.Redirect("/admin/orders")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.status", err, map[string]any{"order_id": id})
		setFlash(c, "Could not update order status")
		return c.Redirect("/admin/orders")
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

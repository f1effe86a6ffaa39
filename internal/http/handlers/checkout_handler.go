package handlers

import (
	"errors"

	applog "candelore/internal/log"
	"candelore/internal/repos"
	"candelore/internal/services"
	"candelore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
	SID      SIDCodec
}

// GET /checkout
func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	cv, err := h.Cart.View(h.SID.EnsureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

// POST /checkout
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := h.SID.EnsureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		setFlash(c, "Please enter your name")
		return c.Redirect("/checkout")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		setFlash(c, "Please enter a valid phone number")
		return c.Redirect("/checkout")
	}

	cust := services.Customer{
		Name:          name,
		Phone:         phone,
		ContactMethod: validate.ContactMethod(c.FormValue("contact_method")),
		Address:       c.FormValue("address"),
		Comment:       c.FormValue("comment"),
	}

	orderID, err := h.Checkout.Place(sid, cust)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "checkout.place", err, nil)
		setFlash(c, "Could not place your order, please try again")
		return c.Redirect("/checkout")
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Redirect("/order/success/" + orderID)
}

// GET /order/success/:order_id
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	oid := c.Params("order_id")
	o, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	items, err := h.Orders.Items(oid)
	if err != nil {
		applog.Error(c, "order.success.items", err, map[string]any{"order_id": oid})
		return fiber.ErrInternalServerError
	}
	return render(c, "order_success", fiber.Map{"Order": o, "Items": items})
}

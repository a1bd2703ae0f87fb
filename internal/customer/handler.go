package customer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/order"
)

type OrderLister interface {
	List() []order.Order
}

type Handler struct {
	service *Service
	orders  OrderLister
}

func NewHandler(s *Service, orders OrderLister) *Handler {
	return &Handler{service: s, orders: orders}
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/customers", h.list)
	admin.Post("/customers", h.save)
	admin.Post("/customers/recompute", h.recompute)
	admin.Put("/customers/:id", h.save)
	admin.Delete("/customers/:id", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) save(c *fiber.Ctx) error {
	payload := new(Customer)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = c.Params("id")
	out, err := h.service.Save(c.UserContext(), *payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameMissing):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if payload.ID == "" {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) recompute(c *fiber.Ctx) error {
	list, err := h.service.Recompute(c.UserContext(), h.orders.List())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(list)
}

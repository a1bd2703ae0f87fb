package order

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/logging"
)

// Sessions resolves the signed-in customer for the customer-facing routes.
type Sessions interface {
	Orders(ctx context.Context, sessionID string) ([]Order, error)
	CancelOrder(ctx context.Context, sessionID, orderID string) (Order, error)
}

// Handler serves customer order history and admin order management.
type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(s *Service, sessions Sessions) *Handler {
	return &Handler{service: s, sessions: sessions}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/orders", h.getOrders)
	r.Post("/api/v1/orders/:id/cancel", h.cancelOrder)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/orders", h.listAll)
	admin.Get("/orders/stats", h.stats)
	admin.Get("/orders/:id", h.getOrder)
	admin.Patch("/orders/:id/status", h.setStatus)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.sessions.Orders(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrLoginRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	o, err := h.sessions.CancelOrder(c.UserContext(), sessionID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrLoginRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotCustomerOrder):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrNotCancellable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error(), "status": o.Status})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(o)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	if st := c.Query("status"); st != "" {
		out := []Order{}
		for _, o := range h.service.List() {
			if string(o.Status) == st {
				out = append(out, o)
			}
		}
		return c.JSON(out)
	}
	return c.JSON(h.service.List())
}

func (h *Handler) stats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	o, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(o)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) setStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	o, changed, err := h.service.SetStatus(c.UserContext(), c.Params("id"), payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, ErrTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error(), "status": o.Status})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if changed {
		logging.FromContext(c.UserContext()).Info("order status set", "order_id", o.ID, "status", o.Status)
	}
	return c.JSON(fiber.Map{"order": o, "changed": changed})
}

package promotion

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
)

// Sessions exposes the per-session dismissal state.
type Sessions interface {
	PromotionView(ctx context.Context, sessionID string) (authenticated bool, dismissed map[string]bool, err error)
	DismissPromotion(ctx context.Context, sessionID, promotionID string) error
}

type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(s *Service, sessions Sessions) *Handler {
	return &Handler{service: s, sessions: sessions}
}

// RegisterPublicRoutes lists promotions for an anonymous visitor without a
// session.
func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/promotions", h.publicList)
	app.Get("/api/v1/flash-sales", h.activeFlashSales)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/session/promotions", h.sessionList)
	r.Post("/api/v1/promotions/:id/dismiss", h.dismiss)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/promotions", h.listPromotions)
	admin.Post("/promotions", h.savePromotion)
	admin.Put("/promotions/:id", h.savePromotion)
	admin.Delete("/promotions/:id", h.deletePromotion)

	admin.Get("/discounts", h.listDiscounts)
	admin.Post("/discounts", h.createDiscount)
	admin.Patch("/discounts/:code", h.setDiscountStatus)
	admin.Delete("/discounts/:code", h.deleteDiscount)

	admin.Get("/flash-sales", h.listFlashSales)
	admin.Post("/flash-sales", h.createFlashSale)
	admin.Delete("/flash-sales/:id", h.deleteFlashSale)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrCodeExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrTitleMissing), errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidRule),
		errors.Is(err, ErrCodeMissing), errors.Is(err, ErrNameMissing):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) publicList(c *fiber.Ctx) error {
	return c.JSON(h.service.Visible(c.Query("view", ViewHome), false, nil))
}

func (h *Handler) sessionList(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	authed, dismissed, err := h.sessions.PromotionView(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.service.Visible(c.Query("view", ViewHome), authed, dismissed))
}

func (h *Handler) dismiss(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id := c.Params("id")
	if _, err := h.service.GetPromotion(id); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.sessions.DismissPromotion(c.UserContext(), sessionID, id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) activeFlashSales(c *fiber.Ctx) error {
	out := []FlashSale{}
	for _, f := range h.service.FlashSales() {
		if f.Status == StatusActive {
			out = append(out, f)
		}
	}
	return c.JSON(out)
}

func (h *Handler) listPromotions(c *fiber.Ctx) error {
	return c.JSON(h.service.Promotions())
}

func (h *Handler) savePromotion(c *fiber.Ctx) error {
	p := new(Promotion)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p.ID = c.Params("id")
	out, created, err := h.service.SavePromotion(c.UserContext(), *p)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

func (h *Handler) deletePromotion(c *fiber.Ctx) error {
	if err := h.service.DeletePromotion(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listDiscounts(c *fiber.Ctx) error {
	return c.JSON(h.service.Discounts())
}

func (h *Handler) createDiscount(c *fiber.Ctx) error {
	d := new(Discount)
	if err := c.BodyParser(d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.service.CreateDiscount(c.UserContext(), *d)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

type discountStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setDiscountStatus(c *fiber.Ctx) error {
	payload := new(discountStatusRequest)
	if err := c.BodyParser(payload); err != nil || payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status is required"})
	}
	out, err := h.service.SetDiscountStatus(c.UserContext(), c.Params("code"), payload.Status)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(out)
}

func (h *Handler) deleteDiscount(c *fiber.Ctx) error {
	if err := h.service.DeleteDiscount(c.UserContext(), c.Params("code")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listFlashSales(c *fiber.Ctx) error {
	return c.JSON(h.service.FlashSales())
}

func (h *Handler) createFlashSale(c *fiber.Ctx) error {
	f := new(FlashSale)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.service.CreateFlashSale(c.UserContext(), *f)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) deleteFlashSale(c *fiber.Ctx) error {
	if err := h.service.DeleteFlashSale(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package ai

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/order"
)

// StatsSource feeds the dashboard insight.
type StatsSource interface {
	Stats() order.Stats
}

type Handler struct {
	adapter      *Adapter
	stats        StatsSource
	storeContext func() string
}

// NewHandler wires the adapter to HTTP. storeContext describes the shop to
// the chat assistant and is evaluated per message.
func NewHandler(a *Adapter, stats StatsSource, storeContext func() string) *Handler {
	return &Handler{adapter: a, stats: stats, storeContext: storeContext}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/chat", h.chat)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/ai/description", h.description)
	admin.Post("/ai/marketing", h.marketing)
	admin.Get("/ai/insight", h.insight)
}

func textResponse(c *fiber.Ctx, text string, err error) error {
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"text": text})
}

type descriptionRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func (h *Handler) description(c *fiber.Ctx) error {
	payload := new(descriptionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if strings.TrimSpace(payload.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}
	text, err := h.adapter.GenerateDescription(c.UserContext(), payload.Name, payload.Category, payload.Price)
	return textResponse(c, text, err)
}

type marketingRequest struct {
	Topic     string `json:"topic"`
	PromoCode string `json:"promoCode"`
}

func (h *Handler) marketing(c *fiber.Ctx) error {
	payload := new(marketingRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if strings.TrimSpace(payload.Topic) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "topic is required"})
	}
	text, err := h.adapter.GenerateMarketingCopy(c.UserContext(), payload.Topic, payload.PromoCode)
	return textResponse(c, text, err)
}

func (h *Handler) insight(c *fiber.Ctx) error {
	st := h.stats.Stats()
	text, err := h.adapter.SummarizeSalesTrend(c.UserContext(), st.Orders, st.Revenue)
	return textResponse(c, text, err)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *fiber.Ctx) error {
	payload := new(chatRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if strings.TrimSpace(payload.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "message is required"})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	text, err := h.adapter.Chat(c.UserContext(), sessionID, payload.Message, h.storeContext())
	return textResponse(c, text, err)
}

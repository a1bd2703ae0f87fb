package address

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/logging"
)

// Handler exposes address helpers used by the profile editor.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/address/locate", h.locate)
	r.Post("/api/v1/address/compose", h.compose)
}

type locateRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (h *Handler) locate(c *fiber.Ctx) error {
	payload := new(locateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.Locate(c.UserContext(), payload.Lat, payload.Lng)
	if err != nil {
		if errors.Is(err, ErrInvalidCoordinates) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		logging.FromContext(c.UserContext()).Warn("geocode failed", "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "location lookup failed"})
	}
	return c.JSON(addr)
}

func (h *Handler) compose(c *fiber.Ctx) error {
	payload := new(Address)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(Normalize(*payload))
}

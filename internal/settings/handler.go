package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/logging"
)

type Handler struct {
	service *Service
	store   kvstore.Store
}

// NewHandler serves the settings document. store backs the admin export of
// every collection.
func NewHandler(s *Service, store kvstore.Store) *Handler {
	return &Handler{service: s, store: store}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/settings", h.get)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Put("/settings", h.update)
	admin.Get("/export", h.export)
}

func (h *Handler) get(c *fiber.Ctx) error {
	return c.JSON(h.service.Get())
}

func (h *Handler) update(c *fiber.Ctx) error {
	// start from the current document so partial bodies keep other fields
	payload := h.service.Get()
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.service.Update(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrSiteNameMissing), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrTaxRate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	logging.FromContext(c.UserContext()).Info("settings updated", "maintenance", out.MaintenanceMode)
	return c.JSON(out)
}

func (h *Handler) export(c *fiber.Ctx) error {
	docs, err := kvstore.Export(c.UserContext(), h.store, kvstore.CollectionKeys)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(docs)
}

package user

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
)

// Sessions is the session-scoped profile store used by the profile routes.
type Sessions interface {
	Profile(ctx context.Context, sessionID string) (Profile, error)
	UpdateProfile(ctx context.Context, sessionID string, u ProfileUpdate) (Profile, error)
}

type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(service *Service, sessions Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/profile", h.getProfile)
	r.Put("/api/v1/profile", h.updateProfile)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/users", h.listUsers)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, err := h.sessions.Profile(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrLoginRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	payload := new(ProfileUpdate)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, err := h.sessions.UpdateProfile(c.UserContext(), sessionID, *payload)
	if err != nil {
		if errors.Is(err, auth.ErrLoginRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Profile updated", "profile": p})
}

// listUsers returns profiles only; carts and wishlists stay private.
func (h *Handler) listUsers(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	profiles := make([]Profile, 0, len(entries))
	for _, e := range entries {
		profiles = append(profiles, e.Profile)
	}
	return c.JSON(profiles)
}

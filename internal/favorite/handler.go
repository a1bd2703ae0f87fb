package favorite

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/product"
)

type Sessions interface {
	Wishlist(ctx context.Context, sessionID string) (Wishlist, error)
	ToggleWishlist(ctx context.Context, sessionID, productID string) (Wishlist, bool, error)
}

type Catalog interface {
	List() []product.Product
}

// Handler delegates wishlist operations to the session store.
// This keeps wishlist-specific HTTP routing isolated from the cart handler.
type Handler struct {
	sessions Sessions
	catalog  Catalog
}

func NewHandler(s Sessions, catalog Catalog) *Handler {
	return &Handler{sessions: s, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/wishlist", h.getWishlist)
	r.Post("/api/v1/wishlist", h.toggle)
}

type toggleRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	w, err := h.sessions.Wishlist(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if w == nil {
		w = Wishlist{}
	}
	return c.JSON(fiber.Map{"productIds": w, "products": w.Products(h.catalog.List())})
}

func (h *Handler) toggle(c *fiber.Ctx) error {
	payload := new(toggleRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	w, added, err := h.sessions.ToggleWishlist(c.UserContext(), sessionID, payload.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrLoginRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	msg := "Removed from wishlist."
	if added {
		msg = "Added to wishlist."
	}
	return c.JSON(fiber.Map{"message": msg, "added": added, "productIds": w})
}

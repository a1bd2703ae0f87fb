package cart

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/product"
)

// AddRequest is the body of an add-to-cart call.
type AddRequest struct {
	ProductID       string            `json:"productId"`
	Quantity        int               `json:"quantity,omitempty"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	UploadedImages  []string          `json:"uploadedImages,omitempty"`
}

// Sessions is the session-scoped cart store the handler works against.
type Sessions interface {
	Cart(ctx context.Context, sessionID string) (Cart, error)
	AddToCart(ctx context.Context, sessionID string, req AddRequest) (Cart, error)
	RemoveFromCart(ctx context.Context, sessionID string, index int) (Cart, error)
}

// Handler delegates cart operations to the session store.
// This keeps cart-specific HTTP routing isolated.
type Handler struct {
	sessions Sessions
}

func NewHandler(s Sessions) *Handler {
	return &Handler{sessions: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/cart", h.getCart)
	r.Post("/api/v1/cart", h.addToCart)
	r.Delete("/api/v1/cart/:index", h.removeFromCart)
}

func cartResponse(c Cart) fiber.Map {
	if c == nil {
		c = Cart{}
	}
	return fiber.Map{"items": c, "total": c.Total(), "count": c.Count()}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	items, err := h.sessions.Cart(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cartResponse(items))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(AddRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.sessions.AddToCart(c.UserContext(), sessionID, *payload)
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
	return c.JSON(cartResponse(items))
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	items, err := h.sessions.RemoveFromCart(c.UserContext(), sessionID, index)
	if err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cartResponse(items))
}

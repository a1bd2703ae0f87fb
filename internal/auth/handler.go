package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/logging"
)

// Handler issues session and admin tokens.
type Handler struct {
	secret    []byte
	adminHash string
}

func NewHandler(secret []byte, adminHash string) *Handler {
	return &Handler{secret: secret, adminHash: adminHash}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/v1/session", h.newSession)
	app.Post("/api/v1/admin/login", h.adminLogin)
}

func (h *Handler) newSession(c *fiber.Ctx) error {
	id := uuid.NewString()
	signed, err := IssueSessionToken(h.secret, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessionId": id, "token": signed})
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) adminLogin(c *fiber.Ctx) error {
	payload := new(adminLoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := CheckAdminPassword(h.adminHash, payload.Password); err != nil {
		logging.FromContext(c.UserContext()).Warn("admin login rejected", "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid password"})
	}
	signed, err := IssueAdminToken(h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.JSON(fiber.Map{"message": "Login successful", "token": signed})
}

package content

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/logging"
)

// Sessions names the signed-in customer filing a ticket.
type Sessions interface {
	CustomerName(ctx context.Context, sessionID string) (string, error)
}

type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(s *Service, sessions Sessions) *Handler {
	return &Handler{service: s, sessions: sessions}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/blog", h.publishedPosts)
	app.Get("/api/v1/faqs", h.listFAQs)
	app.Post("/api/v1/newsletter", h.subscribe)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/support/tickets", h.openTicket)
}

func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Get("/blog", h.listPosts)
	admin.Post("/blog", h.publishPost)
	admin.Delete("/blog/:id", h.deletePost)

	admin.Post("/faqs", h.addFAQ)
	admin.Delete("/faqs/:id", h.deleteFAQ)

	admin.Get("/tickets", h.listTickets)
	admin.Patch("/tickets/:id", h.setTicketStatus)

	admin.Get("/subscribers", h.listSubscribers)
	admin.Delete("/subscribers/:email", h.unsubscribe)
	admin.Post("/subscribers/campaign", h.campaign)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTitleMissing), errors.Is(err, ErrQuestionFields),
		errors.Is(err, ErrSubjectMissing), errors.Is(err, ErrInvalidEmail):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) publishedPosts(c *fiber.Ctx) error {
	out := []BlogPost{}
	for _, p := range h.service.Posts() {
		if p.Status == PostPublished {
			out = append(out, p)
		}
	}
	return c.JSON(out)
}

func (h *Handler) listPosts(c *fiber.Ctx) error {
	return c.JSON(h.service.Posts())
}

func (h *Handler) publishPost(c *fiber.Ctx) error {
	p := new(BlogPost)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.service.PublishPost(c.UserContext(), *p)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) deletePost(c *fiber.Ctx) error {
	if err := h.service.DeletePost(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listFAQs(c *fiber.Ctx) error {
	return c.JSON(h.service.FAQs())
}

func (h *Handler) addFAQ(c *fiber.Ctx) error {
	f := new(FAQ)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.service.AddFAQ(c.UserContext(), *f)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) deleteFAQ(c *fiber.Ctx) error {
	if err := h.service.DeleteFAQ(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type ticketRequest struct {
	Subject  string `json:"subject"`
	Priority string `json:"priority"`
}

func (h *Handler) openTicket(c *fiber.Ctx) error {
	payload := new(ticketRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sessionID, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	name, err := h.sessions.CustomerName(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrLoginRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "login required", "route": "login"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	t, err := h.service.OpenTicket(c.UserContext(), name, payload.Subject, payload.Priority)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	logging.FromContext(c.UserContext()).Info("ticket opened", "ticket_id", t.ID)
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *Handler) listTickets(c *fiber.Ctx) error {
	return c.JSON(h.service.Tickets())
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setTicketStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil || payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status is required"})
	}
	t, err := h.service.SetTicketStatus(c.UserContext(), c.Params("id"), payload.Status)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(t)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(c *fiber.Ctx) error {
	payload := new(subscribeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sub, err := h.service.Subscribe(c.UserContext(), payload.Email)
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *Handler) listSubscribers(c *fiber.Ctx) error {
	return c.JSON(h.service.Subscribers())
}

func (h *Handler) unsubscribe(c *fiber.Ctx) error {
	sub, err := h.service.Unsubscribe(c.UserContext(), c.Params("email"))
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sub)
}

// campaign reports the audience a newsletter send would reach. Delivery
// itself is out of process.
func (h *Handler) campaign(c *fiber.Ctx) error {
	audience := h.service.ActiveSubscribers()
	logging.FromContext(c.UserContext()).Info("campaign queued", "recipients", len(audience))
	return c.JSON(fiber.Map{"message": "Email Sent to Subscribers!", "recipients": len(audience)})
}

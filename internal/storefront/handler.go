package storefront

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/checkout"
	"github.com/wichananm65/fyx-store/internal/logging"
)

// Handler serves the login flow and checkout of the caller's session.
type Handler struct {
	manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/auth", h.authState)
	r.Post("/api/v1/auth/open", h.openLogin)
	r.Post("/api/v1/auth/method", h.chooseMethod)
	r.Post("/api/v1/auth/phone", h.submitPhone)
	r.Post("/api/v1/auth/otp", h.verifyOTP)
	r.Post("/api/v1/auth/email", h.submitEmail)
	r.Post("/api/v1/auth/cancel", h.cancelLogin)
	r.Post("/api/v1/auth/logout", h.logout)

	r.Get("/api/v1/checkout", h.checkoutState)
	r.Post("/api/v1/checkout/next", h.checkoutNext)
	r.Post("/api/v1/checkout/back", h.checkoutBack)
	r.Post("/api/v1/checkout/payment", h.selectPayment)
	r.Post("/api/v1/checkout/place", h.placeOrder)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrLoginRequired), errors.Is(err, ErrNoSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, auth.ErrInvalidTransition), errors.Is(err, auth.ErrBusy), errors.Is(err, checkout.ErrLastStep):
		return fiber.StatusConflict
	case errors.Is(err, auth.ErrPhoneRequired), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrUnknownMethod),
		errors.Is(err, checkout.ErrUnknownMethod):
		return fiber.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidOTP), errors.Is(err, checkout.ErrProfileIncomplete), errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoPaymentMethod), errors.Is(err, checkout.ErrPaymentProofRequired),
		errors.Is(err, checkout.ErrPaymentNotConfirmed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error, state any) error {
	status := errorStatus(err)
	body := fiber.Map{"message": err.Error()}
	switch {
	case errors.Is(err, auth.ErrLoginRequired):
		body["route"] = RouteLogin
	case errors.Is(err, checkout.ErrProfileIncomplete):
		body["route"] = RouteProfileEdit
	}
	if state != nil && status != fiber.StatusInternalServerError {
		body["state"] = state
	}
	return c.Status(status).JSON(body)
}

func (h *Handler) authState(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.AuthState(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return c.JSON(v)
}

func (h *Handler) openLogin(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.OpenLogin(c.UserContext(), id)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

type methodRequest struct {
	Method auth.Method `json:"method"`
}

func (h *Handler) chooseMethod(c *fiber.Ctx) error {
	payload := new(methodRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.ChooseMethod(c.UserContext(), id, payload.Method)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) submitPhone(c *fiber.Ctx) error {
	payload := new(phoneRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.SubmitPhone(c.UserContext(), id, payload.Phone)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

type otpRequest struct {
	Code string `json:"code"`
}

func (h *Handler) verifyOTP(c *fiber.Ctx) error {
	payload := new(otpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.VerifyOTP(c.UserContext(), id, payload.Code)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) submitEmail(c *fiber.Ctx) error {
	payload := new(emailRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.SubmitEmail(c.UserContext(), id, payload.Email)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

func (h *Handler) cancelLogin(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.CancelLogin(c.UserContext(), id)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.Logout(c.UserContext(), id)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

func (h *Handler) checkoutState(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.Checkout(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return c.JSON(v)
}

func (h *Handler) checkoutNext(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.CheckoutNext(c.UserContext(), id)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

func (h *Handler) checkoutBack(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.CheckoutBack(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	return c.JSON(v)
}

func (h *Handler) selectPayment(c *fiber.Ctx) error {
	payload := new(checkout.Payment)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	v, err := h.manager.SelectPayment(c.UserContext(), id, *payload)
	if err != nil {
		return fail(c, err, v)
	}
	return c.JSON(v)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	id, err := auth.SessionIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	o, err := h.manager.FinalCheckout(c.UserContext(), id)
	if err != nil {
		return fail(c, err, nil)
	}
	logging.FromContext(c.UserContext()).Info("checkout completed", "order_id", o.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": o, "route": RouteOrderSuccess})
}

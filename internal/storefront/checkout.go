package storefront

import (
	"context"
	"errors"

	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/checkout"
	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/metrics"
	"github.com/wichananm65/fyx-store/internal/order"
)

// CheckoutView is the checkout page: step, chosen payment and the amounts
// the order would be placed with right now.
type CheckoutView struct {
	Step     checkout.Step    `json:"step"`
	Payment  checkout.Payment `json:"payment"`
	Items    cart.Cart        `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Shipping float64          `json:"shipping"`
	Total    float64          `json:"total"`
	UPILink  string           `json:"upiLink,omitempty"`
	Route    Route            `json:"route,omitempty"`
}

const upiNote = "FYX Order"

func (m *Manager) checkoutView(s *Session) CheckoutView {
	shipping := m.cfg.Settings.ShippingFee()
	v := CheckoutView{
		Step:     s.flow.Step(),
		Payment:  s.flow.Payment(),
		Items:    s.cart.Clone(),
		Subtotal: s.cart.Total(),
		Shipping: shipping,
		Total:    s.cart.Total() + shipping,
	}
	if m.cfg.UPIPayee != "" && len(s.cart) > 0 {
		v.UPILink = checkout.UPILink(m.cfg.UPIPayee, v.Total, upiNote)
	}
	return v
}

func (m *Manager) Checkout(ctx context.Context, sessionID string) (CheckoutView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return CheckoutView{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return CheckoutView{}, err
	}
	return m.checkoutView(s), nil
}

// CheckoutNext advances the flow. An incomplete profile routes the client
// to profile editing.
func (m *Manager) CheckoutNext(ctx context.Context, sessionID string) (CheckoutView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return CheckoutView{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return CheckoutView{}, err
	}
	if _, err := s.flow.Next(s.profile.HasContact()); err != nil {
		v := m.checkoutView(s)
		if errors.Is(err, checkout.ErrProfileIncomplete) {
			v.Route = RouteProfileEdit
		}
		return v, err
	}
	return m.checkoutView(s), nil
}

func (m *Manager) CheckoutBack(ctx context.Context, sessionID string) (CheckoutView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return CheckoutView{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return CheckoutView{}, err
	}
	s.flow.Back()
	return m.checkoutView(s), nil
}

func (m *Manager) SelectPayment(ctx context.Context, sessionID string, p checkout.Payment) (CheckoutView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return CheckoutView{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return CheckoutView{}, err
	}
	if err := s.flow.SelectPayment(p); err != nil {
		return m.checkoutView(s), err
	}
	return m.checkoutView(s), nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, checkout.ErrProfileIncomplete):
		return "profile_incomplete"
	case errors.Is(err, checkout.ErrNoPaymentMethod), errors.Is(err, checkout.ErrUnknownMethod):
		return "no_payment_method"
	case errors.Is(err, checkout.ErrPaymentProofRequired):
		return "payment_proof"
	case errors.Is(err, checkout.ErrPaymentNotConfirmed):
		return "payment_unconfirmed"
	default:
		return "other"
	}
}

// FinalCheckout commits the cart as an order. It holds the session lock
// from the precondition checks until the cart is emptied, so no cart edit of
// the same session can slip in between.
func (m *Manager) FinalCheckout(ctx context.Context, sessionID string) (order.Order, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return order.Order{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return order.Order{}, err
	}

	reject := func(err error) (order.Order, error) {
		metrics.CheckoutRejected.WithLabelValues(rejectReason(err)).Inc()
		return order.Order{}, err
	}
	if len(s.cart) == 0 {
		return reject(checkout.ErrEmptyCart)
	}
	if !s.profile.HasContact() {
		return reject(checkout.ErrProfileIncomplete)
	}
	pay := s.flow.Payment()
	if err := m.cfg.Verifier.Verify(ctx, pay); err != nil {
		return reject(err)
	}

	draft := order.Draft{
		CustomerKey:   s.key,
		CustomerName:  s.profile.Name,
		CustomerEmail: s.profile.Email,
		Phone:         s.profile.Phone,
		Address:       s.profile.Address.Line,
		Items:         s.cart,
		Shipping:      m.cfg.Settings.ShippingFee(),
		PaymentMethod: string(pay.Method),
	}
	if pay.Method == checkout.MethodUPI {
		draft.PaymentProof = pay.ProofImage
		draft.UPIID = pay.UPIID
	}
	o, err := m.cfg.Orders.Place(ctx, draft)
	if err != nil {
		return order.Order{}, err
	}

	s.cart = cart.Cart{}
	s.flow.Reset()
	if err := m.save(ctx, s, s.profile, s.cart, s.wishlist); err != nil {
		// the order stands; the emptied cart is retried on the next save
		logging.FromContext(ctx).Error("cart not cleared in directory", "session_id", s.id, "order_id", o.ID, "error", err)
	}
	return o, nil
}

package storefront

import (
	"context"
	"strings"

	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/favorite"
	"github.com/wichananm65/fyx-store/internal/order"
	"github.com/wichananm65/fyx-store/internal/user"
)

func (m *Manager) Cart(ctx context.Context, sessionID string) (cart.Cart, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.cart.Clone(), nil
}

// AddToCart appends a snapshot of the product with its option choices
// resolved against the product's options.
func (m *Manager) AddToCart(ctx context.Context, sessionID string, req cart.AddRequest) (cart.Cart, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return nil, err
	}
	p, err := m.cfg.Catalog.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	next, _ := s.cart.Add(&p, req.Quantity, req.SelectedOptions, req.UploadedImages)
	if err := m.save(ctx, s, s.profile, next, s.wishlist); err != nil {
		return nil, err
	}
	s.cart = next
	return next.Clone(), nil
}

func (m *Manager) RemoveFromCart(ctx context.Context, sessionID string, index int) (cart.Cart, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	next, err := s.cart.Remove(index)
	if err != nil {
		return nil, err
	}
	if err := m.save(ctx, s, s.profile, next, s.wishlist); err != nil {
		return nil, err
	}
	s.cart = next
	return next.Clone(), nil
}

func (m *Manager) Wishlist(ctx context.Context, sessionID string) (favorite.Wishlist, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.wishlist.Clone(), nil
}

func (m *Manager) ToggleWishlist(ctx context.Context, sessionID, productID string) (favorite.Wishlist, bool, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return nil, false, err
	}
	if _, err := m.cfg.Catalog.GetByID(productID); err != nil {
		return nil, false, err
	}
	next, added := s.wishlist.Toggle(productID)
	if err := m.save(ctx, s, s.profile, s.cart, next); err != nil {
		return nil, false, err
	}
	s.wishlist = next
	return next.Clone(), added, nil
}

func (m *Manager) Profile(ctx context.Context, sessionID string) (user.Profile, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return user.Profile{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return user.Profile{}, err
	}
	return s.profile, nil
}

// UpdateProfile edits the signed-in profile. The directory key stays the
// identity used at login even when email or phone change.
func (m *Manager) UpdateProfile(ctx context.Context, sessionID string, u user.ProfileUpdate) (user.Profile, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return user.Profile{}, err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return user.Profile{}, err
	}
	next := s.profile.Apply(u, m.cfg.Users.Now())
	if err := m.save(ctx, s, next, s.cart, s.wishlist); err != nil {
		return user.Profile{}, err
	}
	s.profile = next
	return next, nil
}

// CustomerName is the name shown on support tickets.
func (m *Manager) CustomerName(ctx context.Context, sessionID string) (string, error) {
	p, err := m.Profile(ctx, sessionID)
	if err != nil {
		return "", err
	}
	for _, v := range []string{p.Name, p.Email, p.Phone} {
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
	return "Customer", nil
}

// Orders lists the orders placed under the session's login identity, newest
// first.
func (m *Manager) Orders(ctx context.Context, sessionID string) ([]order.Order, error) {
	key, err := m.identity(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.cfg.Orders.ListFor(key), nil
}

func (m *Manager) CancelOrder(ctx context.Context, sessionID, orderID string) (order.Order, error) {
	key, err := m.identity(ctx, sessionID)
	if err != nil {
		return order.Order{}, err
	}
	return m.cfg.Orders.Cancel(ctx, orderID, key)
}

// identity is the directory key of a signed-in session. Editable profile
// contact details never decide ownership.
func (m *Manager) identity(ctx context.Context, sessionID string) (string, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return "", err
	}
	defer unlock()
	if err := requireLogin(s); err != nil {
		return "", err
	}
	return s.key, nil
}

func (m *Manager) PromotionView(ctx context.Context, sessionID string) (bool, map[string]bool, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return false, nil, err
	}
	defer unlock()
	dismissed := make(map[string]bool, len(s.dismissed))
	for k, v := range s.dismissed {
		dismissed[k] = v
	}
	return s.machine.Authenticated(), dismissed, nil
}

// DismissPromotion hides a promotion for the rest of this session only.
func (m *Manager) DismissPromotion(ctx context.Context, sessionID, promotionID string) error {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return err
	}
	defer unlock()
	s.dismissed[promotionID] = true
	return nil
}

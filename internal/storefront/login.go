package storefront

import (
	"context"
	"errors"

	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/favorite"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/metrics"
	"github.com/wichananm65/fyx-store/internal/user"
)

// AuthView is the login state reported to the client.
type AuthView struct {
	State     auth.State    `json:"state"`
	Route     Route         `json:"route,omitempty"`
	Profile   *user.Profile `json:"profile,omitempty"`
	Returning bool          `json:"returning,omitempty"`
}

func authView(s *Session) AuthView {
	v := AuthView{State: s.machine.State()}
	if s.machine.Authenticated() {
		p := s.profile
		v.Profile = &p
	}
	return v
}

func (m *Manager) AuthState(ctx context.Context, sessionID string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	return authView(s), nil
}

func (m *Manager) OpenLogin(ctx context.Context, sessionID string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	if err := s.machine.Open(); err != nil {
		return authView(s), err
	}
	return authView(s), nil
}

// ChooseMethod picks phone, email or oauth. OAuth runs the provider right
// away; the session lock is released while it is pending so other calls on
// the session are not stuck behind the delay.
func (m *Manager) ChooseMethod(ctx context.Context, sessionID string, method auth.Method) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	if err := s.machine.Choose(method); err != nil {
		v := authView(s)
		unlock()
		return v, err
	}
	if method != auth.MethodOAuth {
		v := authView(s)
		unlock()
		return v, nil
	}
	unlock()

	id, oauthErr := m.cfg.Provider.OAuth(ctx)

	s, unlock, err = m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	id, err = s.machine.FinishOAuth(id, oauthErr)
	if err != nil {
		return authView(s), err
	}
	return m.completeLogin(ctx, s, id)
}

func (m *Manager) SubmitPhone(ctx context.Context, sessionID, phone string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	if err := s.machine.SubmitPhone(ctx, phone); err != nil {
		return authView(s), err
	}
	return authView(s), nil
}

func (m *Manager) VerifyOTP(ctx context.Context, sessionID, code string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	id, err := s.machine.VerifyOTP(ctx, code)
	if err != nil {
		return authView(s), err
	}
	return m.completeLogin(ctx, s, id)
}

func (m *Manager) SubmitEmail(ctx context.Context, sessionID, email string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	id, err := s.machine.SubmitEmail(email)
	if err != nil {
		return authView(s), err
	}
	return m.completeLogin(ctx, s, id)
}

func (m *Manager) CancelLogin(ctx context.Context, sessionID string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	if err := s.machine.Cancel(); err != nil {
		return authView(s), err
	}
	return authView(s), nil
}

// completeLogin attaches the directory entry for id to the session. A
// returning user's saved profile, cart and wishlist replace whatever the
// session held; a new user is registered with the session's current cart
// and wishlist. Runs with the session locked.
func (m *Manager) completeLogin(ctx context.Context, s *Session, id auth.Identity) (AuthView, error) {
	key, err := user.NormalizeIdentity(id.Email, id.Phone)
	if err != nil {
		_ = s.machine.Logout()
		return authView(s), err
	}
	hadCart := len(s.cart) > 0

	seed := user.Profile{Email: id.Email, Phone: id.Phone, Name: id.Name}
	entry, found, err := m.cfg.Users.Login(ctx, key, seed)
	if err != nil {
		_ = s.machine.Logout()
		return authView(s), err
	}
	if !found && (len(s.cart) > 0 || len(s.wishlist) > 0) {
		entry.Cart = s.cart.Clone()
		entry.Wishlist = s.wishlist.Clone()
		if err := m.cfg.Users.Save(ctx, key, entry); err != nil {
			_ = s.machine.Logout()
			return authView(s), err
		}
	}
	if err := kvstore.SaveJSON(ctx, m.cfg.Store, kvstore.SessionKey(s.id), sessionRecord{Identity: key}); err != nil {
		_ = s.machine.Logout()
		return authView(s), err
	}

	s.key = key
	s.profile = entry.Profile
	s.cart = nonNilCart(entry.Cart)
	s.wishlist = nonNilWishlist(entry.Wishlist)
	s.flow.Reset()

	metrics.Logins.WithLabelValues(string(id.Method)).Inc()
	logging.FromContext(ctx).Info("login completed", "session_id", s.id, "method", id.Method, "returning", found)

	v := authView(s)
	v.Returning = found
	v.Route = RouteHome
	if hadCart {
		v.Route = RouteCheckout
	}
	return v, nil
}

// Logout forgets the session's identity and state. The directory entry is
// kept so the next login restores it.
func (m *Manager) Logout(ctx context.Context, sessionID string) (AuthView, error) {
	s, unlock, err := m.acquire(ctx, sessionID)
	if err != nil {
		return AuthView{}, err
	}
	defer unlock()
	if err := s.machine.Logout(); err != nil {
		return authView(s), err
	}
	if err := m.cfg.Store.Delete(ctx, kvstore.SessionKey(s.id)); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		logging.FromContext(ctx).Warn("session record not removed", "session_id", s.id, "error", err)
	}
	s.key = ""
	s.profile = user.Profile{}
	s.cart = cart.Cart{}
	s.wishlist = favorite.Wishlist{}
	s.flow.Reset()
	v := authView(s)
	v.Route = RouteHome
	return v, nil
}

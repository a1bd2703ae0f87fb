// Package storefront keeps the per-visitor session: login state, profile,
// cart, wishlist and checkout progress. Every session is serialised by its
// own mutex and mirrored to the user directory after each change.
package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/checkout"
	"github.com/wichananm65/fyx-store/internal/favorite"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/order"
	"github.com/wichananm65/fyx-store/internal/product"
	"github.com/wichananm65/fyx-store/internal/user"
)

var ErrNoSession = errors.New("session id is required")

// Route tells the client which view follows an operation.
type Route string

const (
	RouteHome         Route = "home"
	RouteLogin        Route = "login"
	RouteCheckout     Route = "checkout"
	RouteProfileEdit  Route = "profile-edit"
	RouteOrderSuccess Route = "order-success"
)

type Catalog interface {
	GetByID(id string) (product.Product, error)
	List() []product.Product
}

type ShippingFees interface {
	ShippingFee() float64
}

// Config carries the collaborators a Manager needs. Verifier defaults to
// checkout.ManualVerifier.
type Config struct {
	Store    kvstore.Store
	Provider auth.Provider
	Users    *user.Service
	Catalog  Catalog
	Orders   *order.Service
	Settings ShippingFees
	Verifier checkout.PaymentVerifier
	UPIPayee string
}

// Session is one visitor. Fields are guarded by mu, except refs and lastUsed
// which belong to the Manager's lock.
type Session struct {
	mu        sync.Mutex
	refs      int
	lastUsed  time.Time
	id        string
	loaded    bool
	machine   *auth.Machine
	key       string
	profile   user.Profile
	cart      cart.Cart
	wishlist  favorite.Wishlist
	flow      *checkout.Flow
	dismissed map[string]bool
}

// sessionRecord is what survives a restart under fyx_session:<id>.
type sessionRecord struct {
	Identity string `json:"identity"`
}

// Manager holds the live sessions. Anonymous sessions with nothing to keep
// are dropped as soon as their call ends; everything else stays until Sweep
// finds it idle and is rebuilt from the store on the next call.
type Manager struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cfg Config) *Manager {
	if cfg.Verifier == nil {
		cfg.Verifier = checkout.ManualVerifier{}
	}
	return &Manager{cfg: cfg, now: time.Now, sessions: map[string]*Session{}}
}

// Live reports how many sessions are held in memory.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions unused for longer than idle and returns how many went.
// Signed-in sessions come back through restore; an unfinished login or
// checkout step is lost.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.refs == 0 && s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done. A zero interval
// disables it.
func (m *Manager) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(idle); n > 0 {
				logging.FromContext(ctx).Debug("idle sessions dropped", "count", n)
			}
		}
	}
}

// disposable reports whether s holds nothing worth keeping in memory.
func (s *Session) disposable() bool {
	return s.machine.State() == auth.StateAnonymous &&
		len(s.cart) == 0 && len(s.wishlist) == 0 && len(s.dismissed) == 0
}

// acquire returns the locked session for id, restoring it from the store on
// first use. The caller must call unlock.
func (m *Manager) acquire(ctx context.Context, id string) (*Session, func(), error) {
	if id == "" {
		return nil, nil, ErrNoSession
	}
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			id:        id,
			machine:   auth.NewMachine(m.cfg.Provider),
			cart:      cart.Cart{},
			wishlist:  favorite.Wishlist{},
			flow:      checkout.NewFlow(),
			dismissed: map[string]bool{},
		}
		m.sessions[id] = s
	}
	s.refs++
	s.lastUsed = m.now()
	m.mu.Unlock()

	s.mu.Lock()
	if !s.loaded {
		if err := m.restore(ctx, s); err != nil {
			m.release(s)
			return nil, nil, err
		}
		s.loaded = true
	}
	return s, func() { m.release(s) }, nil
}

// release gives up s, which must be locked. The last holder of a disposable
// session removes it from the map before unlocking, so no other call can
// still be waiting on it.
func (m *Manager) release(s *Session) {
	m.mu.Lock()
	s.refs--
	s.lastUsed = m.now()
	if s.refs == 0 && s.disposable() && m.sessions[s.id] == s {
		delete(m.sessions, s.id)
	}
	m.mu.Unlock()
	s.mu.Unlock()
}

func (m *Manager) restore(ctx context.Context, s *Session) error {
	var rec sessionRecord
	found, err := kvstore.LoadJSON(ctx, m.cfg.Store, kvstore.SessionKey(s.id), &rec)
	if err != nil || !found || rec.Identity == "" {
		return err
	}
	e, err := m.cfg.Users.Get(ctx, rec.Identity)
	if errors.Is(err, user.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.key = rec.Identity
	s.profile = e.Profile
	s.cart = nonNilCart(e.Cart)
	s.wishlist = nonNilWishlist(e.Wishlist)
	s.machine.Resume()
	return nil
}

// save mirrors the given state to the directory entry of a signed-in
// session. Callers assign the state to the session only after save succeeds.
func (m *Manager) save(ctx context.Context, s *Session, p user.Profile, c cart.Cart, w favorite.Wishlist) error {
	if s.key == "" {
		return nil
	}
	return m.cfg.Users.Save(ctx, s.key, user.Entry{Profile: p, Cart: c.Clone(), Wishlist: w.Clone()})
}

func requireLogin(s *Session) error {
	if !s.machine.Authenticated() {
		return auth.ErrLoginRequired
	}
	return nil
}

func nonNilCart(c cart.Cart) cart.Cart {
	if c == nil {
		return cart.Cart{}
	}
	return c
}

func nonNilWishlist(w favorite.Wishlist) favorite.Wishlist {
	if w == nil {
		return favorite.Wishlist{}
	}
	return w
}

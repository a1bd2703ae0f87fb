package user

import (
	"context"
	"errors"
	"time"

	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/favorite"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Login looks up the directory entry for key. When none exists a fresh
// profile is created from the login input and registered; found reports
// which case happened.
func (s *Service) Login(ctx context.Context, key string, seed Profile) (e Entry, found bool, err error) {
	e, err = s.repo.Get(ctx, key)
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Entry{}, false, err
	}
	ts := s.now().UTC().Format(time.RFC3339)
	if seed.Type == "" {
		seed.Type = DefaultType
	}
	seed.CreatedAt = ts
	seed.UpdatedAt = ts
	e = Entry{Profile: seed, Cart: cart.Cart{}, Wishlist: favorite.Wishlist{}}
	if err := s.repo.Put(ctx, key, e); err != nil {
		return Entry{}, false, err
	}
	return e, false, nil
}

func (s *Service) Get(ctx context.Context, key string) (Entry, error) {
	return s.repo.Get(ctx, key)
}

// Save writes the session's current state back under key.
func (s *Service) Save(ctx context.Context, key string, e Entry) error {
	return s.repo.Put(ctx, key, e)
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Now() string {
	return s.now().UTC().Format(time.RFC3339)
}

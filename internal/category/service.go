package category

import (
	"context"
	"strings"
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` category names; limit <= 0 means all.
func (s *Service) List(limit int) []string {
	items, err := s.repo.List(limit)
	if err != nil {
		return []string{}
	}
	return items
}

func (s *Service) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if err := s.repo.Add(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}

// Delete removes the name only. Products that still reference it keep the
// stale category string.
func (s *Service) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

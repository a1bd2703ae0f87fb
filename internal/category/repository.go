package category

import (
	"context"
	"errors"

	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

type Repository interface {
	List(limit int) ([]string, error)
	Add(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

// StoreRepository keeps category names as a JSON string array under
// fyx_categories.
type StoreRepository struct {
	names *collection.Collection[string]
}

func NewStoreRepository(ctx context.Context, s kvstore.Store, seed []string) (*StoreRepository, error) {
	c := collection.New(s, kvstore.KeyCategories, func(n string) string { return n })
	if err := c.Load(ctx, seed); err != nil {
		return nil, err
	}
	return &StoreRepository{names: c}, nil
}

func (r *StoreRepository) List(limit int) ([]string, error) {
	all := r.names.List()
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *StoreRepository) Add(ctx context.Context, name string) error {
	_, err := r.names.Append(ctx, name)
	if errors.Is(err, collection.ErrDuplicate) {
		return ErrExists
	}
	return err
}

func (r *StoreRepository) Delete(ctx context.Context, name string) error {
	err := r.names.Delete(ctx, name)
	if errors.Is(err, collection.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

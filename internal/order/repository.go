package order

import (
	"context"
	"errors"

	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

// Repository stores orders newest first.
type Repository interface {
	List() []Order
	GetByID(id string) (Order, error)
	Prepend(ctx context.Context, o Order) (Order, error)
	UpdateStatus(ctx context.Context, id string, fn func(*Order) error) (Order, error)
}

type StoreRepository struct {
	items *collection.Collection[Order]
}

func NewStoreRepository(ctx context.Context, s kvstore.Store) (*StoreRepository, error) {
	c := collection.New(s, kvstore.KeyOrders, func(o Order) string { return o.ID })
	if err := c.Load(ctx, nil); err != nil {
		return nil, err
	}
	return &StoreRepository{items: c}, nil
}

func (r *StoreRepository) List() []Order {
	return r.items.List()
}

func (r *StoreRepository) GetByID(id string) (Order, error) {
	o, err := r.items.Get(id)
	if errors.Is(err, collection.ErrNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *StoreRepository) Prepend(ctx context.Context, o Order) (Order, error) {
	return r.items.Prepend(ctx, o)
}

func (r *StoreRepository) UpdateStatus(ctx context.Context, id string, fn func(*Order) error) (Order, error) {
	o, err := r.items.Update(ctx, id, fn)
	if errors.Is(err, collection.ErrNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

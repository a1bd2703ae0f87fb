package product

import (
	"context"
	"errors"

	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrNameMissing = errors.New("product name is required")
)

type Repository interface {
	List() []Product
	GetByID(id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	// Reset replaces all products with the provided list (used for dev / seeding)
	Reset(ctx context.Context, products []Product) error
}

// StoreRepository keeps the catalog as one JSON blob under fyx_products.
type StoreRepository struct {
	items *collection.Collection[Product]
}

// NewStoreRepository loads the catalog, writing the seed when the store has
// none yet.
func NewStoreRepository(ctx context.Context, s kvstore.Store, seed []Product) (*StoreRepository, error) {
	c := collection.New(s, kvstore.KeyProducts, func(p Product) string { return p.ID })
	if err := c.Load(ctx, seed); err != nil {
		return nil, err
	}
	return &StoreRepository{items: c}, nil
}

func (r *StoreRepository) List() []Product {
	return r.items.List()
}

func (r *StoreRepository) GetByID(id string) (Product, error) {
	p, err := r.items.Get(id)
	if errors.Is(err, collection.ErrNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *StoreRepository) Create(ctx context.Context, p Product) (Product, error) {
	return r.items.Append(ctx, p)
}

func (r *StoreRepository) Update(ctx context.Context, p Product) (Product, error) {
	out, err := r.items.Update(ctx, p.ID, func(cur *Product) error {
		*cur = p
		return nil
	})
	if errors.Is(err, collection.ErrNotFound) {
		return Product{}, ErrNotFound
	}
	return out, err
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.items.Delete(ctx, id); err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *StoreRepository) Reset(ctx context.Context, products []Product) error {
	return r.items.Reset(ctx, products)
}

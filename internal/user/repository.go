package user

import (
	"context"
	"sort"
	"sync"

	"github.com/wichananm65/fyx-store/internal/kvstore"
)

// Repository is the user directory: identity key to {profile, cart, wishlist}.
type Repository interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, e Entry) error
	List(ctx context.Context) ([]Entry, error)
}

// StoreRepository keeps the whole directory as one JSON object under
// fyx_users.
type StoreRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewStoreRepository(s kvstore.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) load(ctx context.Context) (map[string]Entry, error) {
	dir := map[string]Entry{}
	if _, err := kvstore.LoadJSON(ctx, r.store, kvstore.KeyUsers, &dir); err != nil {
		return nil, err
	}
	if dir == nil {
		dir = map[string]Entry{}
	}
	return dir, nil
}

func (r *StoreRepository) Get(ctx context.Context, key string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir, err := r.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	e, ok := dir[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *StoreRepository) Put(ctx context.Context, key string, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir, err := r.load(ctx)
	if err != nil {
		return err
	}
	dir[key] = e
	return kvstore.SaveJSON(ctx, r.store, kvstore.KeyUsers, dir)
}

// List returns entries sorted by key.
func (r *StoreRepository) List(ctx context.Context) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(dir))
	for k := range dir {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, dir[k])
	}
	return out, nil
}

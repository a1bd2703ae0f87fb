// Package collection provides a named, ordered list of records persisted as
// one JSON blob. The admin sub-entities (discounts, blog posts, FAQs, ...)
// and the catalog are all built on it.
package collection

import (
	"context"
	"errors"
	"sync"

	"github.com/wichananm65/fyx-store/internal/kvstore"
)

var (
	ErrNotFound  = errors.New("item not found")
	ErrDuplicate = errors.New("item already exists")
)

type Collection[T any] struct {
	mu    sync.RWMutex
	store kvstore.Store
	key   string
	idOf  func(T) string
	items []T
}

// New returns an empty collection bound to key. idOf extracts the identity
// used by Get, Update and Delete.
func New[T any](store kvstore.Store, key string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{store: store, key: key, idOf: idOf, items: []T{}}
}

// Load reads the collection from the store. When nothing has been stored
// yet the seed becomes the initial content and is written back.
func (c *Collection[T]) Load(ctx context.Context, seed []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var items []T
	found, err := kvstore.LoadJSON(ctx, c.store, c.key, &items)
	if err != nil {
		return err
	}
	if !found {
		items = append([]T{}, seed...)
		if err := kvstore.SaveJSON(ctx, c.store, c.key, items); err != nil {
			return err
		}
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	return nil
}

func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Append adds item at the end.
func (c *Collection[T]) Append(ctx context.Context, item T) (T, error) {
	return c.insert(ctx, item, false)
}

// Prepend adds item at the front; newest-first lists use it.
func (c *Collection[T]) Prepend(ctx context.Context, item T) (T, error) {
	return c.insert(ctx, item, true)
}

func (c *Collection[T]) insert(ctx context.Context, item T, front bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if c.indexOf(c.idOf(item)) >= 0 {
		return zero, ErrDuplicate
	}
	next := make([]T, 0, len(c.items)+1)
	if front {
		next = append(next, item)
		next = append(next, c.items...)
	} else {
		next = append(next, c.items...)
		next = append(next, item)
	}
	if err := c.save(ctx, next); err != nil {
		return zero, err
	}
	return item, nil
}

// Update applies fn to a copy of the item with the given id and stores the
// result. The identity returned by idOf must not change.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	item := c.items[i]
	if err := fn(&item); err != nil {
		return zero, err
	}
	if c.idOf(item) != id {
		return zero, errors.New("collection: update must not change the item id")
	}
	next := make([]T, len(c.items))
	copy(next, c.items)
	next[i] = item
	if err := c.save(ctx, next); err != nil {
		return zero, err
	}
	return item, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return c.save(ctx, next)
}

// Reset replaces the whole collection.
func (c *Collection[T]) Reset(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, append([]T{}, items...))
}

// save writes next to the store and only then swaps it in, so a failed write
// leaves the in-memory list untouched.
func (c *Collection[T]) save(ctx context.Context, next []T) error {
	if err := kvstore.SaveJSON(ctx, c.store, c.key, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, it := range c.items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

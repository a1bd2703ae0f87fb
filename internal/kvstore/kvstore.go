package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("key not found")
)

// Names of the blobs the storefront keeps. Each logical collection lives
// under its own key as a JSON document.
const (
	KeyProducts    = "fyx_products"
	KeyOrders      = "fyx_orders"
	KeyCategories  = "fyx_categories"
	KeyUsers       = "fyx_users"
	KeySettings    = "fyx_settings"
	KeyPromotions  = "fyx_promotions"
	KeyDiscounts   = "fyx_discounts"
	KeyBlog        = "fyx_blog"
	KeyFlashSales  = "fyx_flash"
	KeyFAQs        = "fyx_faqs"
	KeyTickets     = "fyx_tickets"
	KeySubscribers = "fyx_subscribers"
	KeyCustomers   = "fyx_customers"

	sessionPrefix = "fyx_session:"
)

// Store is a get/set store of named string blobs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionKey is the key holding the identity signed in on a session.
func SessionKey(sessionID string) string {
	return sessionPrefix + sessionID
}

// LoadJSON decodes the blob under key into v. It reports false, with a nil
// error, when nothing has been stored yet.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}

// CollectionKeys lists every shared collection key, in export order.
var CollectionKeys = []string{
	KeyProducts, KeyOrders, KeyCategories, KeyUsers, KeySettings,
	KeyPromotions, KeyDiscounts, KeyBlog, KeyFlashSales, KeyFAQs,
	KeyTickets, KeySubscribers, KeyCustomers,
}

type multiGetter interface {
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
}

// Export reads the given keys in one pass and returns the raw documents.
// Stores able to batch reads (Postgres) do so; others are read key by key.
func Export(ctx context.Context, s Store, keys []string) (map[string]json.RawMessage, error) {
	raw := make(map[string]string, len(keys))
	if mg, ok := s.(multiGetter); ok {
		m, err := mg.GetMany(ctx, keys)
		if err != nil {
			return nil, err
		}
		raw = m
	} else {
		for _, k := range keys {
			v, err := s.Get(ctx, k)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			raw[k] = v
		}
	}
	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		if !json.Valid([]byte(v)) {
			return nil, fmt.Errorf("stored %s is not valid json", k)
		}
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

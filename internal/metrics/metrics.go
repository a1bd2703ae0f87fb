package metrics

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

// Registry holds every storefront collector. It is separate from the
// default registry so tests can read values without global state leaking.
var Registry = prometheus.NewRegistry()

var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "orders_placed_total",
		Help:      "Orders created by a successful checkout.",
	})
	CheckoutRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "checkout_rejected_total",
		Help:      "Final checkout attempts refused by a precondition.",
	}, []string{"reason"})
	OrderStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "order_status_changes_total",
		Help:      "Order status transitions applied.",
	}, []string{"status"})
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "logins_total",
		Help:      "Completed logins by method.",
	}, []string{"method"})
	StoreWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "store_writes_total",
		Help:      "Blob writes to the key-value store.",
	}, []string{"key"})
	AIFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyx",
		Name:      "ai_fallbacks_total",
		Help:      "AI text calls answered with fallback text.",
	}, []string{"operation"})
)

func init() {
	Registry.MustRegister(OrdersPlaced, CheckoutRejected, OrderStatusChanges, Logins, StoreWrites, AIFallbacks)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Store wraps a kvstore.Store and counts writes per collection key.
type Store struct {
	kvstore.Store
}

func InstrumentStore(s kvstore.Store) *Store {
	return &Store{Store: s}
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.Store.Set(ctx, key, value); err != nil {
		return err
	}
	StoreWrites.WithLabelValues(metricKey(key)).Inc()
	return nil
}

// GetMany forwards batch reads when the wrapped store supports them.
func (s *Store) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	type multiGetter interface {
		GetMany(ctx context.Context, keys []string) (map[string]string, error)
	}
	if mg, ok := s.Store.(multiGetter); ok {
		return mg.GetMany(ctx, keys)
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := s.Store.Get(ctx, k)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// session keys carry an id; collapse them so label cardinality stays fixed
func metricKey(key string) string {
	if strings.HasPrefix(key, kvstore.SessionKey("")) {
		return "fyx_session"
	}
	return key
}

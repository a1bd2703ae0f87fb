package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/cart"
	"github.com/wichananm65/fyx-store/internal/events"
	"github.com/wichananm65/fyx-store/internal/logging"
	"github.com/wichananm65/fyx-store/internal/metrics"
)

// CustomerRecorder keeps the admin customer list's spend and order counts in
// step with placed orders.
type CustomerRecorder interface {
	RecordPurchase(ctx context.Context, email, phone string, total float64) error
}

// Draft is everything checkout knows when it commits.
type Draft struct {
	// CustomerKey is the directory identity that owns the order.
	CustomerKey   string
	CustomerName  string
	CustomerEmail string
	Phone         string
	Address       string
	Items         cart.Cart
	Shipping      float64
	PaymentMethod string
	PaymentProof  string
	UPIID         string
}

type Stats struct {
	Orders   int            `json:"orders"`
	Revenue  float64        `json:"revenue"`
	ByStatus map[Status]int `json:"byStatus"`
}

// Service provides business logic for orders.
type Service struct {
	repo      Repository
	customers CustomerRecorder
	publisher events.Publisher
	topic     string
	now       func() time.Time

	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds one event write.
const DefaultPublishTimeout = 2 * time.Second

// NewService wires the order list to its side effects. customers and
// publisher may be nil.
func NewService(r Repository, customers CustomerRecorder, publisher events.Publisher, topic string) *Service {
	return &Service{
		repo:           r,
		customers:      customers,
		publisher:      publisher,
		topic:          topic,
		now:            time.Now,
		publishTimeout: DefaultPublishTimeout,
	}
}

// Place turns a draft into a confirmed order at the head of the order list.
// The total is the item subtotal plus shipping as they are right now.
func (s *Service) Place(ctx context.Context, d Draft) (Order, error) {
	if len(d.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	now := s.now()
	ts := now.UTC().Format(time.RFC3339)
	o := Order{
		ID:            uuid.NewString(),
		OrderNumber:   NewOrderNumber(),
		CustomerKey:   d.CustomerKey,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Phone:         d.Phone,
		Address:       d.Address,
		Items:         d.Items.Clone(),
		Total:         d.Items.Total() + d.Shipping,
		Shipping:      d.Shipping,
		PaymentMethod: d.PaymentMethod,
		PaymentProof:  d.PaymentProof,
		UPIID:         d.UPIID,
		Status:        StatusConfirmed,
		Date:          now.Format("Jan 2, 2006"),
		Time:          now.Format("3:04 PM"),
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	created, err := s.repo.Prepend(ctx, o)
	if err != nil {
		return Order{}, err
	}
	metrics.OrdersPlaced.Inc()

	l := logging.FromContext(ctx)
	if s.customers != nil {
		if err := s.customers.RecordPurchase(ctx, created.CustomerEmail, created.Phone, created.Total); err != nil {
			l.Warn("customer rollup failed", "order_id", created.ID, "err", err)
		}
	}
	s.publish(ctx, events.TypeOrderPlaced, created)
	l.Info("order placed", "order_id", created.ID, "order_number", created.OrderNumber, "total", created.Total)
	return created, nil
}

// SetStatus applies an admin status change. Setting the current status
// again changes nothing and reports changed=false.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Order, bool, error) {
	if !status.Valid() {
		return Order{}, false, ErrInvalidStatus
	}
	cur, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, false, err
	}
	if cur.Status == status {
		return cur, false, nil
	}
	if !CanTransition(cur.Status, status) {
		return cur, false, ErrTransition
	}
	return s.applyStatus(ctx, id, status, ErrTransition)
}

// Cancel is the customer-side cancellation. It is limited to orders owned by
// customerKey in the confirmed state.
func (s *Service) Cancel(ctx context.Context, id, customerKey string) (Order, error) {
	cur, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !cur.OwnedBy(customerKey) {
		return Order{}, ErrNotCustomerOrder
	}
	if cur.Status != StatusConfirmed {
		return cur, ErrNotCancellable
	}
	o, _, err := s.applyStatus(ctx, id, StatusCancelled, ErrNotCancellable)
	return o, err
}

func (s *Service) applyStatus(ctx context.Context, id string, status Status, refused error) (Order, bool, error) {
	ts := s.now().UTC().Format(time.RFC3339)
	o, err := s.repo.UpdateStatus(ctx, id, func(o *Order) error {
		// re-check under the repository lock
		if !CanTransition(o.Status, status) {
			return refused
		}
		o.Status = status
		o.UpdatedAt = ts
		return nil
	})
	if err != nil {
		return Order{}, false, err
	}
	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()
	s.publish(ctx, events.TypeOrderStatusChanged, o)
	return o, true, nil
}

func (s *Service) publish(ctx context.Context, typ string, o Order) {
	if s.publisher == nil {
		return
	}
	ev := events.OrderEvent{
		Type:        typ,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Total:       o.Total,
		Customer:    o.CustomerName,
		At:          s.now().UTC(),
	}
	// the order is already stored; a slow broker must not hold up the caller
	pctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.PublishEvent(pctx, s.topic, o.ID, ev); err != nil {
		logging.FromContext(ctx).Warn("order event not published", "order_id", o.ID, "type", typ, "err", err)
	}
}

func (s *Service) List() []Order {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

// ListFor returns the orders owned by customerKey, newest first.
func (s *Service) ListFor(customerKey string) []Order {
	out := []Order{}
	for _, o := range s.repo.List() {
		if o.OwnedBy(customerKey) {
			out = append(out, o)
		}
	}
	return out
}

// Stats sums every order, cancelled ones included, as the dashboard shows.
func (s *Service) Stats() Stats {
	st := Stats{ByStatus: map[Status]int{}}
	for _, o := range s.repo.List() {
		st.Orders++
		st.Revenue += o.Total
		st.ByStatus[o.Status]++
	}
	return st
}

package order

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/cart"
)

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrTransition       = errors.New("order status change not allowed")
	ErrNotCancellable   = errors.New("only confirmed orders can be cancelled")
	ErrEmptyOrder       = errors.New("order has no items")
	ErrNotCustomerOrder = errors.New("order belongs to another customer")
)

// OrderNumberPrefix starts every human-readable order number.
const OrderNumberPrefix = "FYX-"

// Order is a checkout snapshot. Only Status (and UpdatedAt) change after
// creation.
type Order struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerKey   string    `json:"customerKey,omitempty"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Items         cart.Cart `json:"items"`
	Total         float64   `json:"total"`
	Shipping      float64   `json:"shipping"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentProof  string    `json:"paymentProof,omitempty"`
	UPIID         string    `json:"upiId,omitempty"`
	Status        Status    `json:"status"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var rank = map[Status]int{
	StatusConfirmed:  0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// CanTransition reports whether an order may move from one status to
// another. Staying put is always allowed. Fulfilment only moves forward,
// cancellation is reachable from confirmed alone, and cancelled and
// delivered are terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusCancelled {
		return from == StatusConfirmed
	}
	fr, ok1 := rank[from]
	tr, ok2 := rank[to]
	return ok1 && ok2 && tr > fr
}

// NewOrderNumber returns FYX- followed by eight upper-case characters.
func NewOrderNumber() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return OrderNumberPrefix + strings.ToUpper(token[:8])
}

// BelongsTo matches an order to a customer record by email or phone. It is
// only good enough for the admin rollup: contact details are editable, so
// ownership checks use OwnedBy.
func (o Order) BelongsTo(email, phone string) bool {
	if email != "" && strings.EqualFold(o.CustomerEmail, email) {
		return true
	}
	return phone != "" && digits(o.Phone) != "" && digits(o.Phone) == digits(phone)
}

// OwnedBy reports whether the order was placed by the directory identity key.
func (o Order) OwnedBy(key string) bool {
	return key != "" && o.CustomerKey == key
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

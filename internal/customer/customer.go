package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/order"
)

var (
	ErrNotFound    = errors.New("customer not found")
	ErrNameMissing = errors.New("customer name is required")
)

const (
	StatusActive = "Active"
	StatusNew    = "New"
)

// Customer is a row of the admin customer list. Spent and Orders are a
// cache of the order list and can be rebuilt with Recompute.
type Customer struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Spent  float64 `json:"spent"`
	Orders int     `json:"orders"`
	Status string  `json:"status"`
}

func Seed() []Customer {
	return []Customer{
		{ID: "1", Name: "Shourya Singh", Email: "shourya@fyx.com", Phone: "7068528064", Spent: 12500, Orders: 8, Status: StatusActive},
		{ID: "2", Name: "Rahul Verma", Email: "rahul.v@gmail.com", Phone: "9876543210", Spent: 4500, Orders: 3, Status: StatusActive},
		{ID: "3", Name: "Priya Sharma", Email: "priya.s@outlook.com", Phone: "8765432109", Spent: 0, Orders: 0, Status: StatusNew},
	}
}

func (c Customer) matches(email, phone string) bool {
	o := order.Order{CustomerEmail: c.Email, Phone: c.Phone}
	return o.BelongsTo(email, phone)
}

type Service struct {
	items *collection.Collection[Customer]
}

func NewService(ctx context.Context, s kvstore.Store, seed []Customer) (*Service, error) {
	c := collection.New(s, kvstore.KeyCustomers, func(c Customer) string { return c.ID })
	if err := c.Load(ctx, seed); err != nil {
		return nil, err
	}
	return &Service{items: c}, nil
}

func (s *Service) List() []Customer {
	return s.items.List()
}

func (s *Service) Get(id string) (Customer, error) {
	c, err := s.items.Get(id)
	if errors.Is(err, collection.ErrNotFound) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

// Save creates c when its id is empty and replaces the stored row otherwise.
func (s *Service) Save(ctx context.Context, c Customer) (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Customer{}, ErrNameMissing
	}
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Status == "" {
		c.Status = StatusNew
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
		return s.items.Append(ctx, c)
	}
	out, err := s.items.Update(ctx, c.ID, func(cur *Customer) error {
		*cur = c
		return nil
	})
	if errors.Is(err, collection.ErrNotFound) {
		return Customer{}, ErrNotFound
	}
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.items.Delete(ctx, id)
	if errors.Is(err, collection.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// RecordPurchase adds total to every customer matching email or phone, the
// same rule Recompute applies.
// Purchases by unknown customers are ignored.
func (s *Service) RecordPurchase(ctx context.Context, email, phone string, total float64) error {
	for _, c := range s.items.List() {
		if !c.matches(email, phone) {
			continue
		}
		if _, err := s.items.Update(ctx, c.ID, func(cur *Customer) error {
			cur.Spent += total
			cur.Orders++
			if cur.Status == StatusNew {
				cur.Status = StatusActive
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Recompute rebuilds every customer's spend and order count from orders.
func (s *Service) Recompute(ctx context.Context, orders []order.Order) ([]Customer, error) {
	list := s.items.List()
	for i := range list {
		list[i].Spent = 0
		list[i].Orders = 0
		for _, o := range orders {
			if o.BelongsTo(list[i].Email, list[i].Phone) {
				list[i].Spent += o.Total
				list[i].Orders++
			}
		}
		if list[i].Orders > 0 && list[i].Status == StatusNew {
			list[i].Status = StatusActive
		}
	}
	if err := s.items.Reset(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

package promotion

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/fyx-store/internal/collection"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

// Service owns banners, discount codes and flash sales.
type Service struct {
	promotions *collection.Collection[Promotion]
	discounts  *collection.Collection[Discount]
	flashSales *collection.Collection[FlashSale]
}

func NewService(ctx context.Context, s kvstore.Store) (*Service, error) {
	svc := &Service{
		promotions: collection.New(s, kvstore.KeyPromotions, func(p Promotion) string { return p.ID }),
		discounts:  collection.New(s, kvstore.KeyDiscounts, func(d Discount) string { return d.Code }),
		flashSales: collection.New(s, kvstore.KeyFlashSales, func(f FlashSale) string { return f.ID }),
	}
	if err := svc.promotions.Load(ctx, SeedPromotions()); err != nil {
		return nil, err
	}
	if err := svc.discounts.Load(ctx, SeedDiscounts()); err != nil {
		return nil, err
	}
	if err := svc.flashSales.Load(ctx, SeedFlashSales()); err != nil {
		return nil, err
	}
	return svc, nil
}

func notFound(err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Promotions() []Promotion {
	return s.promotions.List()
}

// Visible filters the active promotions for one visitor. dismissed holds the
// ids the visitor closed during this session.
func (s *Service) Visible(view string, authenticated bool, dismissed map[string]bool) []Promotion {
	out := []Promotion{}
	for _, p := range s.promotions.List() {
		if p.Visible(view, authenticated, dismissed[p.ID]) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) GetPromotion(id string) (Promotion, error) {
	p, err := s.promotions.Get(id)
	return p, notFound(err)
}

// SavePromotion creates p when its id is empty and replaces it otherwise.
func (s *Service) SavePromotion(ctx context.Context, p Promotion) (Promotion, bool, error) {
	if err := p.normalize(); err != nil {
		return Promotion{}, false, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
		out, err := s.promotions.Append(ctx, p)
		return out, true, err
	}
	out, err := s.promotions.Update(ctx, p.ID, func(cur *Promotion) error {
		*cur = p
		return nil
	})
	return out, false, notFound(err)
}

func (s *Service) DeletePromotion(ctx context.Context, id string) error {
	return notFound(s.promotions.Delete(ctx, id))
}

func (s *Service) Discounts() []Discount {
	return s.discounts.List()
}

// CreateDiscount prepends a new code. Type defaults to Percentage, value to
// 10, and the code starts Active with no usage.
func (s *Service) CreateDiscount(ctx context.Context, d Discount) (Discount, error) {
	d.Code = strings.TrimSpace(d.Code)
	if d.Code == "" {
		return Discount{}, ErrCodeMissing
	}
	if d.Type == "" {
		d.Type = DiscountPercentage
	}
	if d.Value <= 0 {
		d.Value = 10
	}
	d.Usage = 0
	d.Status = StatusActive
	out, err := s.discounts.Prepend(ctx, d)
	if errors.Is(err, collection.ErrDuplicate) {
		return Discount{}, ErrCodeExists
	}
	return out, err
}

func (s *Service) SetDiscountStatus(ctx context.Context, code, status string) (Discount, error) {
	out, err := s.discounts.Update(ctx, code, func(d *Discount) error {
		d.Status = status
		return nil
	})
	return out, notFound(err)
}

func (s *Service) DeleteDiscount(ctx context.Context, code string) error {
	return notFound(s.discounts.Delete(ctx, code))
}

func (s *Service) FlashSales() []FlashSale {
	return s.flashSales.List()
}

// CreateFlashSale prepends a new campaign with 10% off for 24 hours unless
// the caller says otherwise.
func (s *Service) CreateFlashSale(ctx context.Context, f FlashSale) (FlashSale, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return FlashSale{}, ErrNameMissing
	}
	if f.Discount == "" {
		f.Discount = "10%"
	}
	if f.EndsIn == "" {
		f.EndsIn = "24 Hours"
	}
	f.ID = uuid.NewString()
	f.Status = StatusActive
	return s.flashSales.Prepend(ctx, f)
}

func (s *Service) DeleteFlashSale(ctx context.Context, id string) error {
	return notFound(s.flashSales.Delete(ctx, id))
}

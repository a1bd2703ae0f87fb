package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllCategories is the pseudo-category that disables category filtering.
const AllCategories = "All"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

// Save creates p when its id is empty or unknown and replaces the stored
// product otherwise. Options are pruned here and nowhere else.
func (s *Service) Save(ctx context.Context, p Product) (Product, bool, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Product{}, false, ErrNameMissing
	}
	p.Options = PruneOptions(p.Options)

	if p.ID != "" {
		if cur, err := s.repo.GetByID(p.ID); err == nil {
			// the admin form does not carry reviews
			if p.Reviews == nil {
				p.Reviews = cur.Reviews
			}
			out, err := s.repo.Update(ctx, p)
			return out, false, err
		} else if !errors.Is(err, ErrNotFound) {
			return Product{}, false, err
		}
	} else {
		p.ID = uuid.NewString()
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	out, err := s.repo.Create(ctx, p)
	return out, true, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Filter narrows the catalog by category (exact match, "All" or empty for
// every category) and by a case-insensitive query on name or category.
func (s *Service) Filter(category, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Product{}
	for _, p := range s.repo.List() {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Service) Featured() []Product {
	out := []Product{}
	for _, p := range s.repo.List() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// AddReview appends a review to the product. Ratings are clamped to 1..5.
func (s *Service) AddReview(ctx context.Context, productID string, r Review) (Product, error) {
	p, err := s.repo.GetByID(productID)
	if err != nil {
		return Product{}, err
	}
	if r.Rating < 1 {
		r.Rating = 1
	}
	if r.Rating > 5 {
		r.Rating = 5
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date == "" {
		r.Date = time.Now().Format("Jan 2, 2006")
	}
	p.Reviews = append(append([]Review{}, p.Reviews...), r)
	return s.repo.Update(ctx, p)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(ctx context.Context, products []Product) error {
	return s.repo.Reset(ctx, products)
}

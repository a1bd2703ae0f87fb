package settings

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/wichananm65/fyx-store/internal/kvstore"
)

var (
	ErrSiteNameMissing = errors.New("site name is required")
	ErrNegativeAmount  = errors.New("fees and thresholds must be >= 0")
	ErrTaxRate         = errors.New("tax rate must be between 0 and 100")
)

type Settings struct {
	SiteName              string  `json:"siteName"`
	MaintenanceMode       bool    `json:"maintenanceMode"`
	ShippingFee           float64 `json:"shippingFee"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	SupportEmail          string  `json:"supportEmail"`
	PrimaryColor          string  `json:"primaryColor"`
	FontFamily            string  `json:"fontFamily"`
	EnableBlog            bool    `json:"enableBlog"`
	TaxRate               float64 `json:"taxRate"`
}

func Defaults() Settings {
	return Settings{
		SiteName:              "FYX",
		ShippingFee:           29,
		FreeShippingThreshold: 999,
		SupportEmail:          "support@fyx.com",
		PrimaryColor:          "#000000",
		FontFamily:            "Inter",
		EnableBlog:            true,
		TaxRate:               18,
	}
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.SiteName) == "" {
		return ErrSiteNameMissing
	}
	if s.ShippingFee < 0 || s.FreeShippingThreshold < 0 {
		return ErrNegativeAmount
	}
	if s.TaxRate < 0 || s.TaxRate > 100 {
		return ErrTaxRate
	}
	return nil
}

// Service holds the store-wide settings document under fyx_settings.
type Service struct {
	mu      sync.RWMutex
	store   kvstore.Store
	current Settings
}

// NewService loads the stored settings, falling back to Defaults when none
// have been saved yet.
func NewService(ctx context.Context, store kvstore.Store) (*Service, error) {
	cur := Defaults()
	if _, err := kvstore.LoadJSON(ctx, store, kvstore.KeySettings, &cur); err != nil {
		return nil, err
	}
	return &Service{store: store, current: cur}, nil
}

func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ShippingFee is read by checkout at commit time.
func (s *Service) ShippingFee() float64 {
	return s.Get().ShippingFee
}

func (s *Service) Update(ctx context.Context, next Settings) (Settings, error) {
	next.SiteName = strings.TrimSpace(next.SiteName)
	if err := next.validate(); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := kvstore.SaveJSON(ctx, s.store, kvstore.KeySettings, next); err != nil {
		return Settings{}, err
	}
	s.current = next
	return next, nil
}

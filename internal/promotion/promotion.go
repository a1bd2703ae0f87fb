package promotion

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("promotion not found")
	ErrTitleMissing = errors.New("promotion title is required")
	ErrInvalidType  = errors.New("unknown promotion type")
	ErrInvalidRule  = errors.New("unknown display rule")
	ErrCodeMissing  = errors.New("discount code is required")
	ErrCodeExists   = errors.New("discount code already exists")
	ErrNameMissing  = errors.New("flash sale name is required")
)

type Type string

const (
	TypeBanner       Type = "banner"
	TypePopup        Type = "popup"
	TypeAnnouncement Type = "announcement"
)

// Display says who sees a promotion.
type Display string

const (
	DisplayAll    Display = "all"
	DisplayHome   Display = "home"
	DisplayGuests Display = "guests"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusExpired  = "Expired"
)

// ViewHome is the storefront view DisplayHome promotions are limited to.
const ViewHome = "home"

// Promotion is an admin-configured banner or popup. Dismissals live on the
// visitor's session and are never written here.
type Promotion struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Status      string  `json:"status"`
	Display     Display `json:"display"`
	Dismissible bool    `json:"dismissible"`
}

func (p *Promotion) normalize() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrTitleMissing
	}
	switch p.Type {
	case "":
		p.Type = TypeBanner
	case TypeBanner, TypePopup, TypeAnnouncement:
	default:
		return ErrInvalidType
	}
	switch p.Display {
	case "":
		p.Display = DisplayAll
	case DisplayAll, DisplayHome, DisplayGuests:
	default:
		return ErrInvalidRule
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return nil
}

// Visible reports whether the promotion should be shown on view to a visitor
// who is (or is not) signed in and has dismissed it (or not).
func (p Promotion) Visible(view string, authenticated, dismissed bool) bool {
	if p.Status != StatusActive {
		return false
	}
	if dismissed && p.Dismissible {
		return false
	}
	switch p.Display {
	case DisplayHome:
		return view == ViewHome
	case DisplayGuests:
		return !authenticated
	default:
		return true
	}
}

// Discount is a promo code. The code is its identity.
type Discount struct {
	Code   string  `json:"code"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Usage  int     `json:"usage"`
	Status string  `json:"status"`
}

const (
	DiscountPercentage = "Percentage"
	DiscountFixed      = "Fixed"
)

type FlashSale struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Discount string `json:"discount"`
	EndsIn   string `json:"endsIn"`
	Status   string `json:"status"`
}

func SeedPromotions() []Promotion {
	return []Promotion{
		{ID: "1", Type: TypeBanner, Title: "Monsoon Madness", Content: "Up to 40% off on custom prints.", Status: StatusActive, Display: DisplayAll, Dismissible: true},
		{ID: "2", Type: TypePopup, Title: "Welcome to FYX", Content: "Use WELCOME10 on your first order.", Status: StatusActive, Display: DisplayGuests, Dismissible: true},
	}
}

func SeedDiscounts() []Discount {
	return []Discount{
		{Code: "WELCOME10", Type: DiscountPercentage, Value: 10, Usage: 145, Status: StatusActive},
		{Code: "FREESHIP", Type: DiscountFixed, Value: 29, Usage: 89, Status: StatusActive},
		{Code: "SUMMER25", Type: DiscountPercentage, Value: 25, Usage: 12, Status: StatusExpired},
	}
}

func SeedFlashSales() []FlashSale {
	return []FlashSale{
		{ID: "1", Name: "Monsoon Madness", Discount: "40%", EndsIn: "2 Days", Status: StatusActive},
		{ID: "2", Name: "Weekend Special", Discount: "20%", EndsIn: "Ended", Status: StatusInactive},
	}
}

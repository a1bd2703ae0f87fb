package settings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/kvstore"
)

func TestService_DefaultsAndPersistence(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if s.Get() != Defaults() || s.ShippingFee() != 29 {
		t.Fatalf("expected defaults, got %+v", s.Get())
	}

	next := s.Get()
	next.ShippingFee = 49
	next.MaintenanceMode = true
	if _, err := s.Update(ctx, next); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ShippingFee() != 49 || !reloaded.Get().MaintenanceMode {
		t.Fatalf("settings were not persisted: %+v", reloaded.Get())
	}
}

func TestService_UpdateValidates(t *testing.T) {
	s, _ := NewService(context.Background(), kvstore.NewMemoryStore())
	bad := Defaults()
	bad.TaxRate = 120
	if _, err := s.Update(context.Background(), bad); !errors.Is(err, ErrTaxRate) {
		t.Fatalf("expected ErrTaxRate, got %v", err)
	}
	if s.Get().TaxRate != 18 {
		t.Fatalf("rejected update changed state: %+v", s.Get())
	}
}

func TestSettingsRoutes(t *testing.T) {
	store := kvstore.NewMemoryStore()
	s, _ := NewService(context.Background(), store)
	app := fiber.New()
	h := NewHandler(s, store)
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))

	req := httptest.NewRequest("PUT", "/api/v1/admin/settings", strings.NewReader(`{"siteName":"FYX Store"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/settings", nil))
	var got Settings
	body, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// partial update keeps the remaining fields
	if got.SiteName != "FYX Store" || got.ShippingFee != 29 || got.FontFamily != "Inter" {
		t.Fatalf("unexpected settings %+v", got)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/admin/export", nil))
	body, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(body), kvstore.KeySettings) {
		t.Fatalf("export is missing settings: %s", body)
	}
}

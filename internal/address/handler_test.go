package address

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestComposeLine(t *testing.T) {
	cases := []struct {
		in   Address
		want string
	}{
		{Address{House: "441/574", Street: "Rastogi nagar", City: "Lucknow", State: "Uttar pradesh", Pincode: "226003"}, "441/574, Rastogi nagar, Lucknow, Uttar pradesh 226003"},
		{Address{City: " Pune ", Pincode: "411001"}, "Pune, 411001"},
		{Address{}, ""},
	}
	for _, tc := range cases {
		if got := ComposeLine(tc.in); got != tc.want {
			t.Errorf("ComposeLine(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_KeepsFreeFormLine(t *testing.T) {
	got := Normalize(Address{Line: "  somewhere near the lake "})
	if got.Line != "somewhere near the lake" {
		t.Fatalf("unexpected line %q", got.Line)
	}
	got = Normalize(Address{Line: "old", City: "Delhi"})
	if got.Line != "Delhi" {
		t.Fatalf("structured fields should win over a stale line, got %q", got.Line)
	}
}

func TestService_LocateValidatesAndHonoursContext(t *testing.T) {
	g := NewFakeGeocoder()
	g.Delay = 0
	s := NewService(g)

	if _, err := s.Locate(context.Background(), 91, 0); err != ErrInvalidCoordinates {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
	addr, err := s.Locate(context.Background(), 26.85, 80.95)
	if err != nil || addr.City != "Lucknow" || addr.Line == "" {
		t.Fatalf("unexpected address %+v err=%v", addr, err)
	}

	slow := NewFakeGeocoder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewService(slow).Locate(ctx, 0, 0); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAddressRoutes(t *testing.T) {
	g := NewFakeGeocoder()
	g.Delay = 0
	app := fiber.New()
	NewHandler(NewService(g)).RegisterProtectedRoutes(app)

	req := httptest.NewRequest("POST", "/api/v1/address/locate", strings.NewReader(`{"lat":26.85,"lng":80.95}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var addr Address
	body, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(body, &addr); err != nil || addr.Pincode != "226003" {
		t.Fatalf("unexpected body %s err=%v", body, err)
	}

	req = httptest.NewRequest("POST", "/api/v1/address/locate", strings.NewReader(`{"lat":200,"lng":0}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad coordinates, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/address/compose", strings.NewReader(`{"house":"12","city":"Agra"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	body, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"line":"12, Agra"`) {
		t.Fatalf("unexpected compose body %s", body)
	}
}

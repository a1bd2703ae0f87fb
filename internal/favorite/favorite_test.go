package favorite

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/fyx-store/internal/auth"
	"github.com/wichananm65/fyx-store/internal/product"
)

func TestWishlist_Toggle(t *testing.T) {
	var w Wishlist
	w, added := w.Toggle("3")
	if !added || !w.Contains("3") {
		t.Fatalf("first toggle should add, got %v", w)
	}
	w, _ = w.Toggle("1")
	w, added = w.Toggle("3")
	if added || w.Contains("3") || len(w) != 1 || w[0] != "1" {
		t.Fatalf("second toggle should remove and keep order, got %v added=%v", w, added)
	}
}

func TestWishlist_ProductsSkipsDeleted(t *testing.T) {
	w := Wishlist{"8", "gone", "2"}
	got := w.Products(product.Seed())
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "8" {
		t.Fatalf("unexpected products %+v", got)
	}
}

type catalogStub []product.Product

func (c catalogStub) List() []product.Product { return c }

type fakeSessions struct {
	lists map[string]Wishlist
}

func (f *fakeSessions) Wishlist(_ context.Context, id string) (Wishlist, error) {
	return f.lists[id], nil
}

func (f *fakeSessions) ToggleWishlist(_ context.Context, id, productID string) (Wishlist, bool, error) {
	w, ok := f.lists[id]
	if !ok {
		return nil, false, auth.ErrLoginRequired
	}
	w, added := w.Toggle(productID)
	f.lists[id] = w
	return w, added, nil
}

func TestWishlistRoutes(t *testing.T) {
	sessions := &fakeSessions{lists: map[string]Wishlist{"s1": {}}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Session-ID"); v != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"session_id": v}})
		}
		return c.Next()
	})
	NewHandler(sessions, catalogStub(product.Seed())).RegisterProtectedRoutes(app)

	req := httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":"4"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "nobody")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("anonymous toggle should ask for login, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/wishlist", strings.NewReader(`{"productId":"4"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "Added to wishlist.") {
		t.Fatalf("unexpected toggle response %d %s", res.StatusCode, body)
	}

	req = httptest.NewRequest("GET", "/api/v1/wishlist", nil)
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	body, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Classic Round T-Shirt") {
		t.Fatalf("wishlist should resolve products, got %s", body)
	}
}

package cart

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

type fakeSessions struct {
	loggedIn map[string]bool
	carts    map[string]Cart
	catalog  map[string]product.Product
}

func (f *fakeSessions) Cart(_ context.Context, id string) (Cart, error) {
	return f.carts[id], nil
}

func (f *fakeSessions) AddToCart(_ context.Context, id string, req AddRequest) (Cart, error) {
	if !f.loggedIn[id] {
		return nil, auth.ErrLoginRequired
	}
	p, ok := f.catalog[req.ProductID]
	if !ok {
		return nil, product.ErrNotFound
	}
	f.carts[id], _ = f.carts[id].Add(&p, req.Quantity, req.SelectedOptions, req.UploadedImages)
	return f.carts[id], nil
}

func (f *fakeSessions) RemoveFromCart(_ context.Context, id string, index int) (Cart, error) {
	next, err := f.carts[id].Remove(index)
	if err != nil {
		return nil, err
	}
	f.carts[id] = next
	return next, nil
}

func makeAppWithCartHandler(cHandler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Session-ID"); v != "" {
			claims := jwt.MapClaims{"session_id": v}
			tok := &jwt.Token{Claims: claims}
			c.Locals("user", tok)
		}
		return c.Next()
	})
	cHandler.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	seed := product.Seed()
	sessions := &fakeSessions{
		loggedIn: map[string]bool{"s1": true},
		carts:    map[string]Cart{},
		catalog:  map[string]product.Product{"1": seed[0], "7": seed[6]},
	}
	app := makeAppWithCartHandler(NewHandler(sessions))

	// unauthorized access should be blocked
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", res.StatusCode)
	}

	// anonymous session is sent to login instead of mutating the cart
	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "anon")
	res, _ = app.Test(req)
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusUnauthorized || !strings.Contains(string(body), `"route":"login"`) {
		t.Fatalf("expected login redirect, got %d %s", res.StatusCode, body)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"1","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"7","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	body, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"total":1397`) || !strings.Contains(string(body), `"count":3`) {
		t.Fatalf("unexpected cart body %s", body)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":"404"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/cart/5", nil)
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for bad index, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/cart/0", nil)
	req.Header.Set("X-Session-ID", "s1")
	res, _ = app.Test(req)
	body, _ = io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(body), `"total":498`) {
		t.Fatalf("unexpected remove response %d %s", res.StatusCode, body)
	}
}

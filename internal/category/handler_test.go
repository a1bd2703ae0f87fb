package category

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/kvstore"
	"github.com/wichananm65/fyx-store/internal/product"
)

func TestDeleteCategory_KeepsProductsReferencingIt(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	catRepo, err := NewStoreRepository(ctx, store, Seed())
	if err != nil {
		t.Fatalf("category repo: %v", err)
	}
	prodRepo, err := product.NewStoreRepository(ctx, store, product.Seed())
	if err != nil {
		t.Fatalf("product repo: %v", err)
	}
	cats := NewService(catRepo)
	products := product.NewService(prodRepo)

	if err := cats.Delete(ctx, "Magazine"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, name := range cats.List(0) {
		if name == "Magazine" {
			t.Fatalf("Magazine should be gone from the category list")
		}
	}
	p, err := products.GetByID("1")
	if err != nil {
		t.Fatalf("product 1 should survive category deletion: %v", err)
	}
	if p.Category != "Magazine" {
		t.Fatalf("product should keep its stale category, got %q", p.Category)
	}
}

func TestService_AddValidation(t *testing.T) {
	ctx := context.Background()
	repo, _ := NewStoreRepository(ctx, kvstore.NewMemoryStore(), Seed())
	s := NewService(repo)

	if _, err := s.Add(ctx, "   "); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := s.Add(ctx, "Mugs"); err != ErrExists {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	name, err := s.Add(ctx, " Stickers ")
	if err != nil || name != "Stickers" {
		t.Fatalf("unexpected add result %q err=%v", name, err)
	}
	all := s.List(0)
	if all[len(all)-1] != "Stickers" {
		t.Fatalf("new category should be appended, got %v", all)
	}
	if got := s.List(3); len(got) != 3 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
}

func TestCategoryRoutes(t *testing.T) {
	ctx := context.Background()
	repo, _ := NewStoreRepository(ctx, kvstore.NewMemoryStore(), Seed())
	h := NewHandler(NewService(repo))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))

	req := httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{"name":"Stickers"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/categories/Men's%20T-Shirts", nil))
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	body, _ := io.ReadAll(res.Body)
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != 8 || names[7] != "Stickers" {
		t.Fatalf("unexpected categories %v", names)
	}
}

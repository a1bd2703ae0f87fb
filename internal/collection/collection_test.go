package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/fyx-store/internal/kvstore"
)

type faq struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

func faqID(f faq) string { return f.ID }

type failingStore struct {
	*kvstore.MemoryStore
}

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestCollection_LoadSeedsOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	c := New(store, kvstore.KeyFAQs, faqID)
	if err := c.Load(ctx, []faq{{ID: "1", Question: "Shipping?"}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected seed to be used, got %d items", c.Len())
	}
	if _, err := c.Append(ctx, faq{ID: "2", Question: "Returns?"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// a second collection on the same store sees the persisted state, not the seed
	reloaded := New(store, kvstore.KeyFAQs, faqID)
	if err := reloaded.Load(ctx, []faq{{ID: "seed"}}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	items := reloaded.List()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("unexpected reloaded items %+v", items)
	}
}

func TestCollection_PrependUpdateDelete(t *testing.T) {
	ctx := context.Background()
	c := New(kvstore.NewMemoryStore(), kvstore.KeyFAQs, faqID)
	_ = c.Load(ctx, nil)

	_, _ = c.Append(ctx, faq{ID: "a"})
	_, _ = c.Prepend(ctx, faq{ID: "b"})
	if got := c.List(); got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("prepend should put newest first, got %+v", got)
	}

	if _, err := c.Append(ctx, faq{ID: "a"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	updated, err := c.Update(ctx, "a", func(f *faq) error {
		f.Question = "changed"
		return nil
	})
	if err != nil || updated.Question != "changed" {
		t.Fatalf("update failed: %+v err=%v", updated, err)
	}
	if _, err := c.Update(ctx, "a", func(f *faq) error {
		f.ID = "z"
		return nil
	}); err == nil {
		t.Fatalf("expected id change to be refused")
	}

	if err := c.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.Delete(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := c.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted item to be gone, got %v", err)
	}
}

func TestCollection_FailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	c := New[faq](failingStore{kvstore.NewMemoryStore()}, kvstore.KeyFAQs, faqID)

	if _, err := c.Append(ctx, faq{ID: "x"}); err == nil {
		t.Fatalf("expected write error")
	}
	if c.Len() != 0 {
		t.Fatalf("failed write must not change the list, got %d items", c.Len())
	}
}

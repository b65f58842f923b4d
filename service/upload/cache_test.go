package upload

import (
	"context"
	"errors"
	"testing"

	"woocommerce.GO/wc"
)

func TestCacheBuildCollectsAllPages(t *testing.T) {
	repo := &fakeRepo{
		pages: [][]wc.Product{
			{brandProduct(1, "A-1", "acme"), brandProduct(2, "A-2", "acme")},
			{brandProduct(3, "A-3", "acme")},
			{brandProduct(4, "A-4", "acme"), {ID: 5, SKU: ""}},
		},
	}
	c := NewExistingProductCache(repo, nil, 2)

	if err := c.Build(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if !c.Built() {
		t.Fatal("cache must report built")
	}
	if c.Size() != 4 {
		t.Fatalf("expected 4 entries (empty SKU dropped), got %d", c.Size())
	}
	if s, ok := c.Lookup("a-3"); !ok || s.ID != 3 {
		t.Fatalf("lookup a-3 failed: %+v %v", s, ok)
	}
	// Lookup is case-insensitive.
	if _, ok := c.Lookup("A-1"); !ok {
		t.Fatal("lookup must ignore case")
	}
}

func TestCacheBuildBrandFilter(t *testing.T) {
	repo := &fakeRepo{
		pages: [][]wc.Product{{
			brandProduct(1, "A-1", "acme"),
			brandProduct(2, "B-1", "other"),
			{ID: 3, SKU: "C-1"},
		}},
	}
	c := NewExistingProductCache(repo, nil, 2)

	filter := map[string]struct{}{"acme": {}}
	if err := c.Build(context.Background(), filter); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 entry after filtering, got %d", c.Size())
	}
	if _, ok := c.Lookup("B-1"); ok {
		t.Fatal("other-brand product must be filtered out")
	}
}

func TestCacheBuildFailsOnAnyPageError(t *testing.T) {
	repo := &fakeRepo{
		pages: [][]wc.Product{
			{brandProduct(1, "A-1", "acme")},
			{brandProduct(2, "A-2", "acme")},
			{brandProduct(3, "A-3", "acme")},
		},
		pageErrs: map[int]error{3: errors.New("gateway timeout")},
	}
	c := NewExistingProductCache(repo, nil, 2)

	if err := c.Build(context.Background(), nil); err == nil {
		t.Fatal("expected build failure")
	}
	if c.Built() {
		t.Fatal("failed build must not mark the cache built")
	}
}

func TestCacheBuildIdempotent(t *testing.T) {
	repo := &fakeRepo{
		pages: [][]wc.Product{{brandProduct(1, "A-1", "acme")}},
	}
	c := NewExistingProductCache(repo, nil, 2)

	if err := c.Build(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	// Second build keeps the snapshot even if the repo would now fail.
	repo.pageErrs = map[int]error{1: errors.New("down")}
	if err := c.Build(context.Background(), nil); err != nil {
		t.Fatalf("rebuild of a built cache must be a no-op, got %v", err)
	}
	if c.Size() != 1 {
		t.Fatalf("expected snapshot preserved, got %d entries", c.Size())
	}
}

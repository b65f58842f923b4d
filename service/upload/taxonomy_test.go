package upload

import (
	"context"
	"sync"
	"testing"

	"woocommerce.GO/wc"
)

func TestResolveCreatesMissingTermOnce(t *testing.T) {
	terms := &fakeTerms{}
	r := NewTaxonomyResolver(terms, nil)

	var wg sync.WaitGroup
	ids := make([]int64, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = r.Resolve(context.Background(), wc.KindCategory, "Widgets")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] || id == 0 {
			t.Fatalf("all callers must see the same non-zero ID, got %v", ids)
		}
	}
	if got := terms.createCalls[termKey(wc.KindCategory, "Widgets")]; got != 1 {
		t.Fatalf("expected exactly one create call, got %d", got)
	}
}

func TestResolveFindsExistingTermBySearch(t *testing.T) {
	terms := &fakeTerms{
		existing: map[string][]wc.Term{
			termKey(wc.KindBrand, "Acme"): {{ID: 9, Name: "acme"}},
		},
	}
	r := NewTaxonomyResolver(terms, nil)

	if id := r.Resolve(context.Background(), wc.KindBrand, "acme"); id != 9 {
		t.Fatalf("expected existing term 9, got %d", id)
	}
	if terms.createCalls[termKey(wc.KindBrand, "Acme")] != 0 {
		t.Fatal("found terms must not be re-created")
	}
}

func TestResolveRecoversIDFromDuplicateError(t *testing.T) {
	key := termKey(wc.KindCategory, "Gadgets")
	terms := &fakeTerms{
		createErr: map[string]error{
			key: &wc.DuplicateTermError{Name: "Gadgets", ExistingIDs: []int64{42}},
		},
	}
	r := NewTaxonomyResolver(terms, nil)

	if id := r.Resolve(context.Background(), wc.KindCategory, "gadgets"); id != 42 {
		t.Fatalf("expected recovered ID 42, got %d", id)
	}
	// The recovered ID must be cached: a second resolve makes no calls.
	if id := r.Resolve(context.Background(), wc.KindCategory, "Gadgets"); id != 42 {
		t.Fatalf("expected cached ID 42, got %d", id)
	}
	if terms.createCalls[key] != 1 {
		t.Fatalf("expected one create attempt, got %d", terms.createCalls[key])
	}
}

func TestResolveEmptyNameIsZero(t *testing.T) {
	r := NewTaxonomyResolver(&fakeTerms{}, nil)
	if id := r.Resolve(context.Background(), wc.KindCategory, "  "); id != 0 {
		t.Fatalf("expected 0 for blank name, got %d", id)
	}
}

func TestResolveKindsAreIndependent(t *testing.T) {
	terms := &fakeTerms{}
	r := NewTaxonomyResolver(terms, nil)

	catID := r.Resolve(context.Background(), wc.KindCategory, "Acme")
	brandID := r.Resolve(context.Background(), wc.KindBrand, "Acme")

	if catID == 0 || brandID == 0 {
		t.Fatalf("both resolutions must succeed, got %d and %d", catID, brandID)
	}
	if catID == brandID {
		t.Fatal("category and brand caches must not share entries")
	}
}

package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"woocommerce.GO/wc"
)

// kindCache is the per-taxonomy half of the resolver: one name→ID map plus a
// creation mutex so a miss creates the term exactly once per run.
type kindCache struct {
	mu       sync.RWMutex // guards ids
	createMu sync.Mutex   // serializes the search/create path
	ids      map[string]int64
}

func (k *kindCache) get(key string) (int64, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	id, ok := k.ids[key]
	return id, ok
}

func (k *kindCache) put(key string, id int64) {
	k.mu.Lock()
	k.ids[key] = id
	k.mu.Unlock()
}

// TaxonomyResolver maps category/brand names to remote term IDs, creating
// missing terms on demand. Safe for concurrent use; each distinct name maps to
// at most one ID for the lifetime of the resolver.
type TaxonomyResolver struct {
	store TermStore
	log   func(string)
	kinds [2]kindCache
}

func NewTaxonomyResolver(store TermStore, logFn func(string)) *TaxonomyResolver {
	r := &TaxonomyResolver{store: store, log: logFn}
	for i := range r.kinds {
		r.kinds[i].ids = make(map[string]int64)
	}
	return r
}

func (r *TaxonomyResolver) logf(format string, args ...interface{}) {
	if r.log != nil {
		r.log(fmt.Sprintf(format, args...))
	}
}

func (r *TaxonomyResolver) kind(kind wc.TermKind) *kindCache {
	if kind == wc.KindBrand {
		return &r.kinds[1]
	}
	return &r.kinds[0]
}

// Prewarm loads the existing terms of both taxonomies into the cache so the
// first batch does not pay one search per distinct name. Failures are logged
// and ignored — the lazy path covers whatever is missing.
func (r *TaxonomyResolver) Prewarm(ctx context.Context) {
	for _, kind := range []wc.TermKind{wc.KindCategory, wc.KindBrand} {
		terms, err := r.store.ListTerms(ctx, kind)
		if err != nil {
			r.logf("taxonomy prewarm: listing %s terms failed: %v", kind, err)
			continue
		}
		kc := r.kind(kind)
		for _, t := range terms {
			kc.put(cacheKey(t.Name), t.ID)
		}
		r.logf("taxonomy prewarm: cached %d %s terms", len(terms), kind)
	}
}

// Resolve returns the remote ID for a term name, creating the term when it
// does not exist. Returns 0 when the name is empty or every recovery path
// failed; callers treat 0 as "leave the product without this term".
func (r *TaxonomyResolver) Resolve(ctx context.Context, kind wc.TermKind, name string) int64 {
	key := cacheKey(name)
	if key == "" {
		return 0
	}

	kc := r.kind(kind)
	if id, ok := kc.get(key); ok {
		return id
	}

	kc.createMu.Lock()
	defer kc.createMu.Unlock()

	// Another worker may have resolved the same name while we waited.
	if id, ok := kc.get(key); ok {
		return id
	}

	display := capitalizeFirst(name)

	terms, err := r.store.SearchTerms(ctx, kind, display)
	if err != nil {
		r.logf("taxonomy: search %s %q failed: %v", kind, display, err)
	} else {
		for _, t := range terms {
			if strings.EqualFold(strings.TrimSpace(t.Name), display) {
				kc.put(key, t.ID)
				return t.ID
			}
		}
	}

	term, err := r.store.CreateTerm(ctx, kind, display)
	if err == nil {
		r.logf("taxonomy: created %s %q (id %d)", kind, display, term.ID)
		kc.put(key, term.ID)
		return term.ID
	}

	// Lost a race with another process or the term index is stale: the error
	// payload carries the existing ID.
	var dup *wc.DuplicateTermError
	if errors.As(err, &dup) && len(dup.ExistingIDs) > 0 {
		id := dup.ExistingIDs[0]
		r.logf("taxonomy: %s %q already exists (id %d)", kind, display, id)
		kc.put(key, id)
		return id
	}

	r.logf("taxonomy: could not resolve %s %q: %v", kind, display, err)
	return 0
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

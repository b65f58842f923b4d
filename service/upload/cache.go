package upload

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"woocommerce.GO/wc"
)

const cachePageSize = 100

// ProductSummary is the slice of a remote product the duplicate test needs.
type ProductSummary struct {
	ID    int64
	SKU   string
	Brand string
}

// ExistingProductCache holds one SKU→summary snapshot of the remote catalog,
// built once per run by paginated listing. The cache is written only during
// Build and read lock-free afterwards; skip mode's correctness depends on it
// being exhaustive, so any failed page fails the whole build.
type ExistingProductCache struct {
	repo    ProductRepository
	log     func(string)
	workers int

	mu    sync.Mutex
	built bool
	bySKU map[string]ProductSummary
}

func NewExistingProductCache(repo ProductRepository, logFn func(string), workers int) *ExistingProductCache {
	if workers <= 0 {
		workers = 5
	}
	return &ExistingProductCache{
		repo:    repo,
		log:     logFn,
		workers: workers,
		bySKU:   make(map[string]ProductSummary),
	}
}

func (c *ExistingProductCache) logf(format string, args ...interface{}) {
	if c.log != nil {
		c.log(fmt.Sprintf(format, args...))
	}
}

// Build lists every product page and fills the cache. When brandFilter is
// non-empty only products whose brand attribute is in the set are retained.
// Idempotent: a second call on a built cache is a no-op.
func (c *ExistingProductCache) Build(ctx context.Context, brandFilter map[string]struct{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.built {
		c.logf("product cache already built (%d entries)", len(c.bySKU))
		return nil
	}

	first, totalPages, err := c.repo.ListPage(ctx, 1, cachePageSize)
	if err != nil {
		return fmt.Errorf("list products page 1: %w", err)
	}
	c.logf("product cache: page 1/%d loaded (%d products)", totalPages, len(first))

	pages := make([][]wc.Product, totalPages+1)
	pages[1] = first

	if totalPages > 1 {
		remaining := make([]int, 0, totalPages-1)
		for p := 2; p <= totalPages; p++ {
			remaining = append(remaining, p)
		}

		type pageResult struct {
			page  int
			items []wc.Product
			err   error
		}
		results := fanOut(ctx, c.workers, remaining, func(ctx context.Context, page int) pageResult {
			items, _, err := c.repo.ListPage(ctx, page, cachePageSize)
			return pageResult{page: page, items: items, err: err}
		})

		var failed int
		for _, r := range results {
			if r.err != nil {
				c.logf("product cache: page %d/%d failed: %v", r.page, totalPages, r.err)
				failed++
				continue
			}
			pages[r.page] = r.items
			c.logf("product cache: page %d/%d loaded (%d products)", r.page, totalPages, len(r.items))
		}
		// A partial cache would silently break skip mode — missing entries
		// would turn into duplicate-creation attempts.
		if failed > 0 {
			return fmt.Errorf("product cache build incomplete: %d of %d pages failed", failed, totalPages)
		}
	}

	total := 0
	for _, items := range pages {
		for _, p := range items {
			sku := strings.ToLower(strings.TrimSpace(p.SKU))
			if sku == "" {
				continue
			}
			brand := p.BrandAttribute()
			if len(brandFilter) > 0 {
				if _, ok := brandFilter[brand]; !ok {
					continue
				}
			}
			c.bySKU[sku] = ProductSummary{ID: p.ID, SKU: sku, Brand: brand}
			total++
		}
	}

	c.built = true
	c.logf("product cache built: %d products", total)
	return nil
}

// Built reports whether Build completed successfully.
func (c *ExistingProductCache) Built() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}

// Lookup returns the cached summary for a SKU (case-insensitive). Only valid
// after Build; during the batch phase the map is read-only.
func (c *ExistingProductCache) Lookup(sku string) (ProductSummary, bool) {
	s, ok := c.bySKU[strings.ToLower(strings.TrimSpace(sku))]
	return s, ok
}

// Size returns the number of cached products.
func (c *ExistingProductCache) Size() int {
	return len(c.bySKU)
}

package upload

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"woocommerce.GO/wc"
)

// Uploader drives a full catalog run: batches rows, publishes images, builds
// payloads and resolves duplicates according to the selected Mode. One
// Uploader serves one run at a time; batches execute sequentially and every
// concurrent stage inside a batch is joined before the next begins.
type Uploader struct {
	repo      ProductRepository
	assigner  ImageAssigner
	publisher AssetPublisher
	finder    ImageFinder
	taxonomy  *TaxonomyResolver
	cache     *ExistingProductCache
	classify  *wc.ErrorClassifier

	BatchSize       int
	SubChunkSize    int
	ImageWorkers    int
	AssembleWorkers int
	LookupWorkers   int
	BatchPause      time.Duration
	MarketingText   string
	PlaceholderURL  string
	PlaceholderFile string

	// Log and Progress are optional observers. Progress fires at batch
	// boundaries with (processed, total).
	Log      func(string)
	Progress func(processed, total int)

	stop atomic.Bool
}

func NewUploader(repo ProductRepository, terms TermStore, assigner ImageAssigner, publisher AssetPublisher, finder ImageFinder) *Uploader {
	u := &Uploader{
		repo:            repo,
		assigner:        assigner,
		publisher:       publisher,
		finder:          finder,
		classify:        wc.NewErrorClassifier(nil, nil),
		BatchSize:       100,
		SubChunkSize:    25,
		ImageWorkers:    10,
		AssembleWorkers: 10,
		LookupWorkers:   5,
		BatchPause:      2 * time.Second,
	}
	u.taxonomy = NewTaxonomyResolver(terms, u.logf1)
	u.cache = NewExistingProductCache(repo, u.logf1, 5)
	return u
}

// SetPageWorkers resizes the cache build fan-out. Only effective before Run.
func (u *Uploader) SetPageWorkers(n int) {
	u.cache = NewExistingProductCache(u.repo, u.logf1, n)
}

// SetClassifier replaces the duplicate-SKU classifier, used to feed the
// configured extra codes and fragments in.
func (u *Uploader) SetClassifier(c *wc.ErrorClassifier) {
	if c != nil {
		u.classify = c
	}
}

// RequestStop asks the running upload to finish its current batch and return.
// Safe to call from any goroutine. Run clears the flag when it starts.
func (u *Uploader) RequestStop() {
	u.stop.Store(true)
}

func (u *Uploader) stopped() bool {
	return u.stop.Load()
}

func (u *Uploader) logf1(msg string) {
	if u.Log != nil {
		u.Log(msg)
	}
}

func (u *Uploader) logf(format string, args ...interface{}) {
	u.logf1(fmt.Sprintf(format, args...))
}

func (u *Uploader) progress(processed, total int) {
	if u.Progress != nil {
		u.Progress(processed, total)
	}
}

// Run uploads all rows in sequential batches and returns the aggregate
// counters. In SkipExisting mode the product cache is built first and a build
// failure aborts the run before anything is created.
func (u *Uploader) Run(ctx context.Context, rows []ProductRow, mode Mode) Result {
	u.stop.Store(false)
	if u.BatchSize <= 0 {
		u.BatchSize = 100
	}
	if u.SubChunkSize <= 0 {
		u.SubChunkSize = 25
	}

	res := Result{Total: len(rows)}
	if len(rows) == 0 {
		res.Success = true
		res.Message = "nothing to upload"
		return res
	}

	u.logf("upload run started: %d rows, mode %s, batch size %d", len(rows), mode, u.BatchSize)

	if mode == SkipExisting {
		if err := u.cache.Build(ctx, brandFilter(rows)); err != nil {
			u.logf("upload aborted: %v", err)
			res.Errors = 1
			res.Message = fmt.Sprintf("product cache build failed: %v", err)
			return res
		}
	}

	u.publishPlaceholder(ctx)
	u.taxonomy.Prewarm(ctx)

	batches := (len(rows) + u.BatchSize - 1) / u.BatchSize
	for i := 0; i < batches; i++ {
		if u.stopped() || ctx.Err() != nil {
			res.Stopped = true
			break
		}

		start := i * u.BatchSize
		end := start + u.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		u.logf("batch %d/%d: %d rows", i+1, batches, len(batch))

		var br batchResult
		if mode == UpdateExisting {
			br = u.processBatchUpdate(ctx, batch)
		} else {
			br = u.processBatchSkip(ctx, batch)
		}

		res.Processed += br.processed
		res.New += br.new
		res.Updated += br.updated
		res.Skipped += br.skipped
		res.Errors += br.errors
		u.progress(res.Processed, res.Total)

		if i+1 < batches {
			if u.stopped() || ctx.Err() != nil {
				res.Stopped = true
				break
			}
			u.pause(ctx)
		}
	}

	res.Success = !res.Stopped
	res.Message = fmt.Sprintf("processed %d/%d: %d new, %d updated, %d skipped, %d errors",
		res.Processed, res.Total, res.New, res.Updated, res.Skipped, res.Errors)
	if res.Stopped {
		res.Message = "stopped: " + res.Message
	}
	u.logf("upload run finished: %s", res.Message)
	return res
}

// pause waits the inter-batch delay, returning early on cancellation.
func (u *Uploader) pause(ctx context.Context) {
	if u.BatchPause <= 0 {
		return
	}
	t := time.NewTimer(u.BatchPause)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// brandFilter collects the distinct lowercased brands of a run, used to keep
// the product cache limited to the catalog slice being uploaded.
func brandFilter(rows []ProductRow) map[string]struct{} {
	filter := make(map[string]struct{})
	for _, r := range rows {
		b := strings.ToLower(strings.TrimSpace(r.Brand))
		if b != "" {
			filter[b] = struct{}{}
		}
	}
	return filter
}

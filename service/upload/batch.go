package upload

import (
	"context"
	"strings"

	"woocommerce.GO/wc"
)

// assembled pairs a row with its ready-to-send payload so fan-out stages can
// reorder results freely.
type assembled struct {
	row     ProductRow
	payload wc.ProductPayload
}

// createdProduct identifies a product that landed (created or updated) and
// still needs its image attached.
type createdProduct struct {
	id  int64
	sku string
}

// assemble builds payloads for all rows concurrently. Taxonomy resolution
// inside buildPayload is the only network-bound part.
func (u *Uploader) assemble(ctx context.Context, rows []ProductRow) []assembled {
	return fanOut(ctx, u.AssembleWorkers, rows, func(ctx context.Context, row ProductRow) assembled {
		return assembled{row: row, payload: u.buildPayload(ctx, row)}
	})
}

// dropMissingSKU splits off rows without a SKU. Such rows can never be
// created, matched or updated, so they are counted as errors up front instead
// of silently disappearing from the totals.
func (u *Uploader) dropMissingSKU(rows []ProductRow, br *batchResult) []ProductRow {
	valid := rows[:0:0]
	for _, r := range rows {
		if strings.TrimSpace(r.SKU) == "" {
			u.logf("row without SKU rejected (name %q)", r.Name)
			br.errors++
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// processBatchSkip handles one batch in skip-existing mode: rows whose SKU is
// in the pre-built cache are skipped, the rest are created. A duplicate error
// here means the cache and the backend disagree, which is counted as an error
// rather than retried.
func (u *Uploader) processBatchSkip(ctx context.Context, rows []ProductRow) batchResult {
	br := batchResult{processed: len(rows)}
	rows = u.dropMissingSKU(rows, &br)

	images := u.resolveImages(ctx, rows)
	items := u.assemble(ctx, rows)

	toCreate := make([]assembled, 0, len(items))
	for _, it := range items {
		if _, ok := u.cache.Lookup(it.row.SKU); ok {
			br.skipped++
			continue
		}
		toCreate = append(toCreate, it)
	}

	created, duplicates, errs := u.createChunks(ctx, toCreate)
	br.new = len(created)
	br.errors += errs
	for _, d := range duplicates {
		u.logf("unexpected duplicate for %s: SKU exists but was not in the product cache", d.row.SKU)
		br.errors++
	}

	u.assignImages(ctx, created, images)
	return br
}

// processBatchUpdate handles one batch in update-existing mode: everything is
// sent to create first, duplicate-SKU rejections are re-resolved to their real
// product ID by search and bulk-updated.
func (u *Uploader) processBatchUpdate(ctx context.Context, rows []ProductRow) batchResult {
	br := batchResult{processed: len(rows)}
	rows = u.dropMissingSKU(rows, &br)

	images := u.resolveImages(ctx, rows)
	items := u.assemble(ctx, rows)

	created, duplicates, errs := u.createChunks(ctx, items)
	br.new = len(created)
	br.errors += errs

	updates := u.resolveDuplicates(ctx, duplicates, &br)
	updated := u.updateChunks(ctx, updates, &br)

	u.assignImages(ctx, append(created, updated...), images)
	return br
}

// createChunks pushes items through the batch create endpoint in sub-chunks.
// Returns the created products, the items rejected as duplicate SKUs, and the
// count of other failures. A transport-level failure fails the whole
// sub-chunk.
func (u *Uploader) createChunks(ctx context.Context, items []assembled) (created []createdProduct, duplicates []assembled, errs int) {
	for start := 0; start < len(items); start += u.SubChunkSize {
		end := start + u.SubChunkSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		payloads := make([]wc.ProductPayload, len(chunk))
		for i, it := range chunk {
			payloads[i] = it.payload
		}

		results, err := u.repo.BatchCreate(ctx, payloads)
		if err != nil {
			u.logf("batch create failed (%d items): %v", len(chunk), err)
			errs += len(chunk)
			continue
		}

		if len(results) < len(chunk) {
			u.logf("batch create answered %d entries for %d items", len(results), len(chunk))
			errs += len(chunk) - len(results)
		}

		// Response entries are parallel to the request.
		for i, item := range results {
			if i >= len(chunk) {
				break
			}
			switch u.classify.Classify(item) {
			case wc.ClassCreated:
				created = append(created, createdProduct{id: item.ID, sku: chunk[i].row.SKU})
			case wc.ClassDuplicateSKU:
				duplicates = append(duplicates, chunk[i])
			default:
				if item.Error != nil {
					u.logf("create failed for %s: %s (%s)", chunk[i].row.SKU, item.Error.Message, item.Error.Code)
				} else {
					u.logf("create failed for %s: malformed response entry", chunk[i].row.SKU)
				}
				errs++
			}
		}
	}
	return created, duplicates, errs
}

// pendingUpdate is a duplicate row re-keyed to its real product ID.
type pendingUpdate struct {
	sku     string
	payload wc.ProductPayload
}

// resolveDuplicates looks up the real product ID of every duplicate-SKU
// rejection. A SKU that is a duplicate on create but invisible to search is a
// ghost: the lookup table and the product index disagree, so the row is
// counted as an error instead of being retried.
func (u *Uploader) resolveDuplicates(ctx context.Context, duplicates []assembled, br *batchResult) []pendingUpdate {
	if len(duplicates) == 0 {
		return nil
	}

	type lookup struct {
		it      assembled
		product *wc.Product
		err     error
	}
	results := fanOut(ctx, u.LookupWorkers, duplicates, func(ctx context.Context, it assembled) lookup {
		p, err := u.repo.SearchBySKU(ctx, it.row.SKU)
		return lookup{it: it, product: p, err: err}
	})

	updates := make([]pendingUpdate, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			u.logf("SKU lookup failed for %s: %v", r.it.row.SKU, r.err)
			br.errors++
			continue
		}
		if r.product == nil {
			u.logf("ghost SKU %s: rejected as duplicate but not found by search, leaving untouched", r.it.row.SKU)
			br.errors++
			continue
		}
		p := r.it.payload
		p.ID = r.product.ID
		// The batch endpoint rejects updates that re-send the product's own
		// SKU, so it is dropped from the update payload.
		p.SKU = ""
		updates = append(updates, pendingUpdate{sku: r.it.row.SKU, payload: p})
	}
	return updates
}

// updateChunks pushes resolved duplicates through the batch update endpoint in
// sub-chunks and returns the successfully updated products.
func (u *Uploader) updateChunks(ctx context.Context, updates []pendingUpdate, br *batchResult) []createdProduct {
	var updated []createdProduct
	for start := 0; start < len(updates); start += u.SubChunkSize {
		end := start + u.SubChunkSize
		if end > len(updates) {
			end = len(updates)
		}
		chunk := updates[start:end]

		payloads := make([]wc.ProductPayload, len(chunk))
		for i, up := range chunk {
			payloads[i] = up.payload
		}

		results, err := u.repo.BatchUpdate(ctx, payloads)
		if err != nil {
			u.logf("batch update failed (%d items): %v", len(chunk), err)
			br.errors += len(chunk)
			continue
		}

		if len(results) < len(chunk) {
			u.logf("batch update answered %d entries for %d items", len(results), len(chunk))
			br.errors += len(chunk) - len(results)
		}

		for i, item := range results {
			if i >= len(chunk) {
				break
			}
			if item.Error != nil {
				u.logf("update failed for %s: %s (%s)", chunk[i].sku, item.Error.Message, item.Error.Code)
				br.errors++
				continue
			}
			br.updated++
			updated = append(updated, createdProduct{id: chunk[i].payload.ID, sku: chunk[i].sku})
		}
	}
	return updated
}

// assignImages attaches the published image URLs to the landed products.
// Assignment failures are logged but not counted: the product itself exists.
func (u *Uploader) assignImages(ctx context.Context, products []createdProduct, images map[string]string) {
	if u.assigner == nil || len(products) == 0 {
		return
	}

	type assignment struct {
		p   createdProduct
		url string
	}
	pending := make([]assignment, 0, len(products))
	for _, p := range products {
		if url, ok := images[p.sku]; ok && p.id > 0 {
			pending = append(pending, assignment{p: p, url: url})
		}
	}

	_ = fanOut(ctx, u.ImageWorkers, pending, func(ctx context.Context, a assignment) error {
		if err := u.assigner.AssignImage(ctx, a.p.id, a.url); err != nil {
			u.logf("image assign failed for %s (id %d): %v", a.p.sku, a.p.id, err)
			return err
		}
		return nil
	})
}

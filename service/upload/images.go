package upload

import (
	"context"
	"path/filepath"
	"strings"
)

// imageResult carries one SKU's published image URL out of the fan-out stage.
type imageResult struct {
	sku string
	url string
}

// resolveImages publishes the image of every distinct SKU in the batch and
// returns sku→URL. SKUs without a local image fall back to the placeholder
// URL; a SKU with neither is absent from the map and the product ships
// without an image.
func (u *Uploader) resolveImages(ctx context.Context, rows []ProductRow) map[string]string {
	seen := make(map[string]struct{}, len(rows))
	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			continue
		}
		if _, ok := seen[sku]; ok {
			continue
		}
		seen[sku] = struct{}{}
		skus = append(skus, sku)
	}

	results := fanOut(ctx, u.ImageWorkers, skus, func(ctx context.Context, sku string) imageResult {
		return imageResult{sku: sku, url: u.publishImage(ctx, sku)}
	})

	urls := make(map[string]string, len(results))
	for _, r := range results {
		if r.url != "" {
			urls[r.sku] = r.url
		}
	}
	return urls
}

// publishPlaceholder pushes the configured local placeholder file to the
// public host once per run and makes its URL the fallback for rows without an
// image. A failed transfer keeps whatever PlaceholderURL was configured.
func (u *Uploader) publishPlaceholder(ctx context.Context) {
	if u.PlaceholderFile == "" || u.publisher == nil {
		return
	}
	renameTo := "placeholder" + strings.ToLower(filepath.Ext(u.PlaceholderFile))
	url, err := u.publisher.Publish(ctx, u.PlaceholderFile, "products", renameTo)
	if err != nil {
		u.logf("placeholder publish failed: %v", err)
		return
	}
	u.PlaceholderURL = url
}

// publishImage pushes the SKU's local image to the public host and returns its
// URL, or the placeholder URL when no file exists or the transfer failed.
func (u *Uploader) publishImage(ctx context.Context, sku string) string {
	if u.finder == nil || u.publisher == nil {
		return u.PlaceholderURL
	}

	localPath := u.finder.FindImage(sku)
	if localPath == "" {
		return u.PlaceholderURL
	}

	clean := cleanSKUForImage(sku)
	if clean == "" {
		clean = "image"
	}
	renameTo := clean + strings.ToLower(filepath.Ext(localPath))

	url, err := u.publisher.Publish(ctx, localPath, "products", renameTo)
	if err != nil {
		u.logf("image publish failed for %s: %v", sku, err)
		return u.PlaceholderURL
	}
	return url
}

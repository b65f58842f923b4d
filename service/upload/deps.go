package upload

import (
	"context"

	"woocommerce.GO/wc"
)

// ProductRepository is the slice of the WooCommerce API the uploader needs.
// *wc.Client satisfies it; tests substitute fakes.
type ProductRepository interface {
	SearchBySKU(ctx context.Context, sku string) (*wc.Product, error)
	ListPage(ctx context.Context, page, perPage int) ([]wc.Product, int, error)
	BatchCreate(ctx context.Context, payloads []wc.ProductPayload) ([]wc.BatchItem, error)
	BatchUpdate(ctx context.Context, payloads []wc.ProductPayload) ([]wc.BatchItem, error)
}

// TermStore is the taxonomy slice of the API (categories and brands).
type TermStore interface {
	SearchTerms(ctx context.Context, kind wc.TermKind, name string) ([]wc.Term, error)
	ListTerms(ctx context.Context, kind wc.TermKind) ([]wc.Term, error)
	CreateTerm(ctx context.Context, kind wc.TermKind, name string) (*wc.Term, error)
}

// ImageAssigner attaches an externally hosted image URL to a product after it
// has been created or updated.
type ImageAssigner interface {
	AssignImage(ctx context.Context, productID int64, imageURL string) error
}

// AssetPublisher pushes a local file to the public image host and returns its
// URL. Implementations skip the transfer when an identical remote copy (same
// size) already exists.
type AssetPublisher interface {
	Publish(ctx context.Context, localPath, remoteDir, renameTo string) (string, error)
}

// ImageFinder locates the local image file for a SKU, or returns "".
type ImageFinder interface {
	FindImage(sku string) string
}

// ImageFinderFunc adapts a function to ImageFinder.
type ImageFinderFunc func(sku string) string

func (f ImageFinderFunc) FindImage(sku string) string { return f(sku) }

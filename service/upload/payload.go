package upload

import (
	"context"
	"strconv"
	"strings"

	"woocommerce.GO/html"
	"woocommerce.GO/wc"
)

// buildPayload turns one catalog row into a create payload. Taxonomy
// resolution may hit the network; an unresolvable term degrades to a payload
// without that term rather than failing the row.
func (u *Uploader) buildPayload(ctx context.Context, row ProductRow) wc.ProductPayload {
	brand := capitalizeFirst(row.Brand)
	fullName := strings.TrimSpace(strings.TrimSpace(brand + " " + row.Name))

	p := wc.ProductPayload{
		Name:              fullName,
		Type:              "simple",
		SKU:               strings.TrimSpace(row.SKU),
		Slug:              slugFor(row.SKU, fullName),
		Status:            "publish",
		CatalogVisibility: "visible",
		ManageStock:       false,
		Description: html.Description(html.DescriptionInput{
			FullName:        fullName,
			Brand:           brand,
			SKU:             row.SKU,
			Description:     row.Description,
			Characteristics: row.Specs,
			MarketingText:   u.MarketingText,
		}),
		ShortDescription: html.ShortDescription(row.Description, brand, row.Name),
	}

	if row.Price > 0 {
		p.RegularPrice = strconv.FormatFloat(row.Price, 'f', 2, 64)
	}

	if id := u.taxonomy.Resolve(ctx, wc.KindCategory, row.Category); id > 0 {
		p.Categories = []wc.TermRef{{ID: id}}
	}
	if id := u.taxonomy.Resolve(ctx, wc.KindBrand, row.Brand); id > 0 {
		p.Brands = []wc.TermRef{{ID: id}}
	}

	return p
}

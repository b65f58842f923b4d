package wc

import "strings"

// CreateClass classifies one products/batch create result item.
type CreateClass int

const (
	// ClassCreated: the item carries an ID; the product is genuinely new.
	ClassCreated CreateClass = iota
	// ClassDuplicateSKU: the backend rejected the item because the SKU is
	// already taken; the row belongs on the update path.
	ClassDuplicateSKU
	// ClassOther covers any other item-level failure.
	ClassOther
)

// Default duplicate-SKU markers. The code set is plugin/version specific:
// stock WooCommerce answers woocommerce_rest_product_sku_already_exists, older
// builds and the SKU lookup table answer product_invalid_sku or only a message
// fragment.
var (
	defaultDuplicateCodes = []string{
		"woocommerce_rest_product_sku_already_exists",
		"product_invalid_sku",
	}
	defaultDuplicateFragments = []string{
		"already present in the lookup table",
		"Product SKU already exists",
	}
)

// ErrorClassifier centralizes the fragile vendor-error matching for the
// create path so it stays testable in isolation and extensible from config.
type ErrorClassifier struct {
	codes     map[string]bool
	fragments []string
}

// NewErrorClassifier builds a classifier from the default duplicate-SKU
// markers plus any extra codes/message fragments.
func NewErrorClassifier(extraCodes, extraFragments []string) *ErrorClassifier {
	codes := make(map[string]bool)
	for _, c := range defaultDuplicateCodes {
		codes[c] = true
	}
	for _, c := range extraCodes {
		if c != "" {
			codes[c] = true
		}
	}
	return &ErrorClassifier{
		codes:     codes,
		fragments: append(append([]string{}, defaultDuplicateFragments...), extraFragments...),
	}
}

// Classify maps one batch create result entry to its class.
func (c *ErrorClassifier) Classify(item BatchItem) CreateClass {
	if item.Error == nil && item.ID > 0 {
		return ClassCreated
	}
	if item.Error == nil {
		// Neither an ID nor an error: treat as failed, the backend response
		// is malformed for this entry.
		return ClassOther
	}
	if c.codes[item.Error.Code] {
		return ClassDuplicateSKU
	}
	for _, frag := range c.fragments {
		if frag != "" && strings.Contains(item.Error.Message, frag) {
			return ClassDuplicateSKU
		}
	}
	return ClassOther
}

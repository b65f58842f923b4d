package wc

import (
	"encoding/json"
	"strings"
)

// Product is the trimmed product representation returned by listing and
// search calls (_fields=id,sku,attributes keeps cache warm-up payloads small).
type Product struct {
	ID         int64       `json:"id"`
	SKU        string      `json:"sku"`
	Name       string      `json:"name,omitempty"`
	Slug       string      `json:"slug,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

type Attribute struct {
	ID      int64    `json:"id,omitempty"`
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

// BrandAttribute returns the first option of the product's "brand" attribute,
// lowercased, or "" when absent.
func (p Product) BrandAttribute() string {
	for _, a := range p.Attributes {
		if strings.ToLower(a.Name) == "brand" && len(a.Options) > 0 {
			return strings.ToLower(strings.TrimSpace(a.Options[0]))
		}
	}
	return ""
}

// TermRef links a product payload to a taxonomy term by ID.
type TermRef struct {
	ID int64 `json:"id"`
}

type Meta struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// ProductPayload is the wire format for product create/update. The SKU field
// is cleared before updates: the batch endpoint rejects updates that carry a
// SKU already bound to the same product.
type ProductPayload struct {
	ID                int64     `json:"id,omitempty"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	SKU               string    `json:"sku,omitempty"`
	Slug              string    `json:"slug"`
	Status            string    `json:"status"`
	CatalogVisibility string    `json:"catalog_visibility"`
	ManageStock       bool      `json:"manage_stock"`
	Description       string    `json:"description,omitempty"`
	ShortDescription  string    `json:"short_description,omitempty"`
	RegularPrice      string    `json:"regular_price,omitempty"`
	Categories        []TermRef `json:"categories,omitempty"`
	Brands            []TermRef `json:"brands,omitempty"`
	MetaData          []Meta    `json:"meta_data,omitempty"`
}

// BatchItem is one entry of a products/batch response. The arrays are parallel
// to the request: an entry either carries the created/updated product's ID or
// an item-level error.
type BatchItem struct {
	ID    int64      `json:"id,omitempty"`
	SKU   string     `json:"sku,omitempty"`
	Name  string     `json:"name,omitempty"`
	Slug  string     `json:"slug,omitempty"`
	Error *ItemError `json:"error,omitempty"`
}

type ItemError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type batchRequest struct {
	Create []ProductPayload `json:"create,omitempty"`
	Update []ProductPayload `json:"update,omitempty"`
}

type batchResponse struct {
	Create []BatchItem `json:"create,omitempty"`
	Update []BatchItem `json:"update,omitempty"`
}

// Term is a taxonomy value (category or brand).
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// TermKind selects which taxonomy a term call addresses.
type TermKind int

const (
	KindCategory TermKind = iota
	KindBrand
)

func (k TermKind) String() string {
	if k == KindBrand {
		return "brand"
	}
	return "category"
}

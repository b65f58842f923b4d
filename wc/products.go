package wc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchBySKU looks a product up through the sku filter of the products
// listing. Returns nil when no product carries the SKU.
func (c *Client) SearchBySKU(ctx context.Context, sku string) (*Product, error) {
	params := url.Values{}
	params.Set("sku", sku)
	var products []Product
	if _, err := c.getJSON(ctx, c.wcURL("products", params), authQuery, &products); err != nil {
		return nil, fmt.Errorf("search sku %q: %w", sku, err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// ListPage fetches one page of the product collection, trimmed to the fields
// the existing-product cache needs. The second return value is the total page
// count reported by the X-WP-TotalPages header.
func (c *Client) ListPage(ctx context.Context, page, perPage int) ([]Product, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("status", "any")
	params.Set("_fields", "id,sku,attributes")
	var products []Product
	resp, err := c.getJSON(ctx, c.wcURL("products", params), authQuery, &products)
	if err != nil {
		return nil, 0, fmt.Errorf("list products page %d: %w", page, err)
	}
	totalPages := 1
	if v := resp.Header.Get("X-WP-TotalPages"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			totalPages = n
		}
	}
	return products, totalPages, nil
}

// BatchCreate submits payloads to the products/batch create endpoint. The
// result slice is parallel to payloads; per-item failures are carried in
// BatchItem.Error, transport/HTTP failures fail the whole call.
func (c *Client) BatchCreate(ctx context.Context, payloads []ProductPayload) ([]BatchItem, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	var resp batchResponse
	if err := c.postJSON(ctx, c.wcURL("products/batch", nil), authQuery, batchRequest{Create: payloads}, &resp); err != nil {
		return nil, fmt.Errorf("batch create %d products: %w", len(payloads), err)
	}
	return resp.Create, nil
}

// BatchUpdate submits payloads (each carrying an ID) to the products/batch
// update endpoint. Same result semantics as BatchCreate.
func (c *Client) BatchUpdate(ctx context.Context, payloads []ProductPayload) ([]BatchItem, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	var resp batchResponse
	if err := c.postJSON(ctx, c.wcURL("products/batch", nil), authQuery, batchRequest{Update: payloads}, &resp); err != nil {
		return nil, fmt.Errorf("batch update %d products: %w", len(payloads), err)
	}
	return resp.Update, nil
}

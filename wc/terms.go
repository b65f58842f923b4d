package wc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DuplicateTermError reports a term creation rejected because the term already
// exists. WordPress embeds the existing term IDs in the error payload's
// additional_data field.
type DuplicateTermError struct {
	Name        string
	ExistingIDs []int64
}

func (e *DuplicateTermError) Error() string {
	return fmt.Sprintf("term %q already exists (ids %v)", e.Name, e.ExistingIDs)
}

// termEndpoint maps a kind to (path, auth). Categories always live in wc/v3.
// Brands depend on the installed plugin: a configured endpoint containing a
// slash (e.g. products/brands) is treated as a wc/v3 path, a bare taxonomy
// rest base (e.g. product_brand, pwb-brand) as wp/v2.
func (c *Client) termEndpoint(kind TermKind) (string, authMode, bool) {
	if kind == KindCategory {
		return "products/categories", authQuery, true
	}
	if strings.Contains(c.brandEndpoint, "/") {
		return c.brandEndpoint, authQuery, true
	}
	return c.brandEndpoint, authBasic, false
}

func (c *Client) termURL(kind TermKind, params url.Values) (string, authMode) {
	path, auth, wcV3 := c.termEndpoint(kind)
	if wcV3 {
		return c.wcURL(path, params), auth
	}
	return c.wpURL(path, params), auth
}

// SearchTerms queries a taxonomy by name. The search is a substring match on
// the server side; callers match exact names case-insensitively.
func (c *Client) SearchTerms(ctx context.Context, kind TermKind, name string) ([]Term, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("per_page", "10")
	u, auth := c.termURL(kind, params)
	var terms []Term
	if _, err := c.getJSON(ctx, u, auth, &terms); err != nil {
		return nil, fmt.Errorf("search %s %q: %w", kind, name, err)
	}
	return terms, nil
}

// ListTerms fetches the first listing page of a taxonomy (100 terms), used to
// pre-warm the resolver cache.
func (c *Client) ListTerms(ctx context.Context, kind TermKind) ([]Term, error) {
	params := url.Values{}
	params.Set("per_page", "100")
	u, auth := c.termURL(kind, params)
	var terms []Term
	if _, err := c.getJSON(ctx, u, auth, &terms); err != nil {
		return nil, fmt.Errorf("list %s terms: %w", kind, err)
	}
	return terms, nil
}

// CreateTerm creates a taxonomy term. A term_exists rejection is converted to
// DuplicateTermError carrying the existing IDs, so callers can recover the
// winner of a creation race instead of failing.
func (c *Client) CreateTerm(ctx context.Context, kind TermKind, name string) (*Term, error) {
	u, auth := c.termURL(kind, nil)
	var term Term
	err := c.postJSON(ctx, u, auth, map[string]string{"name": name}, &term)
	if err == nil {
		return &term, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && isTermExists(apiErr) {
		return nil, &DuplicateTermError{Name: name, ExistingIDs: apiErr.AdditionalData}
	}
	return nil, fmt.Errorf("create %s %q: %w", kind, name, err)
}

func isTermExists(e *APIError) bool {
	return e.Code == "term_exists" || strings.Contains(e.Message, "term_exists")
}

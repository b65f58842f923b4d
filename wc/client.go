package wc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"woocommerce.GO/config"
)

// Client talks to a WooCommerce store over its REST API. Product and category
// calls go through wc/v3 with query-string auth; brand taxonomies and the
// external-image endpoint live outside wc/v3 and use a WordPress application
// password (basic auth).
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	wpUsername     string
	wpAppPassword  string
	brandEndpoint  string
	httpClient     *http.Client
}

func New(cfg config.WooConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	brand := cfg.BrandEndpoint
	if brand == "" {
		brand = "product_brand"
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		wpUsername:     cfg.WPUsername,
		wpAppPassword:  cfg.WPAppPassword,
		brandEndpoint:  brand,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// wcURL builds a wc/v3 endpoint URL with consumer-key auth in the query
// string (survives hosts that strip Authorization headers).
func (c *Client) wcURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("consumer_key", c.consumerKey)
	params.Set("consumer_secret", c.consumerSecret)
	return fmt.Sprintf("%s/wp-json/wc/v3/%s?%s", c.baseURL, path, params.Encode())
}

// wpURL builds a wp/v2 endpoint URL. Auth is basic (application password).
func (c *Client) wpURL(path string, params url.Values) string {
	u := fmt.Sprintf("%s/wp-json/wp/v2/%s", c.baseURL, path)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

type authMode int

const (
	authQuery authMode = iota
	authBasic
)

func (c *Client) do(ctx context.Context, method, rawURL string, auth authMode, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth == authBasic {
		if c.wpUsername == "" || c.wpAppPassword == "" {
			return nil, fmt.Errorf("wp/v2 call requires WP_USERNAME and WP_APP_PASSWORD")
		}
		req.SetBasicAuth(c.wpUsername, c.wpAppPassword)
	}
	return c.httpClient.Do(req)
}

// getJSON issues a GET and decodes the body. The response is returned so
// callers can read pagination headers; its body is already closed.
func (c *Client) getJSON(ctx context.Context, rawURL string, auth authMode, out interface{}) (*http.Response, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL, auth, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp, httpError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, rawURL string, auth authMode, body, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, rawURL, auth, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return httpError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx REST response, with the vendor error body when it
// could be parsed.
type APIError struct {
	StatusCode     int
	Code           string
	Message        string
	AdditionalData []int64
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("woocommerce api: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("woocommerce api: HTTP %d: %s", e.StatusCode, e.Message)
}

func httpError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	var body struct {
		Code           string  `json:"code"`
		Message        string  `json:"message"`
		AdditionalData []int64 `json:"additional_data"`
	}
	if json.Unmarshal(data, &body) == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.AdditionalData = body.AdditionalData
	}
	return apiErr
}

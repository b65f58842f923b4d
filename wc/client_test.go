package wc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"woocommerce.GO/config"
)

func newTestClient(srv *httptest.Server) *Client {
	return New(config.WooConfig{
		URL:            srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		WPUsername:     "admin",
		WPAppPassword:  "secret",
	})
}

func TestSearchBySKUFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/wp-json/wc/v3/products") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("sku") != "AB-1" {
			t.Errorf("sku param missing, got %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("consumer_key") != "ck_test" {
			t.Error("query-string auth missing")
		}
		json.NewEncoder(w).Encode([]Product{{ID: 12, SKU: "AB-1"}})
	}))
	defer srv.Close()

	p, err := newTestClient(srv).SearchBySKU(context.Background(), "AB-1")
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.ID != 12 {
		t.Fatalf("expected product 12, got %+v", p)
	}
}

func TestSearchBySKUNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	p, err := newTestClient(srv).SearchBySKU(context.Background(), "NOPE")
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("expected nil, got %+v", p)
	}
}

func TestListPageReadsTotalPagesHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-TotalPages", "7")
		json.NewEncoder(w).Encode([]Product{{ID: 1, SKU: "A"}, {ID: 2, SKU: "B"}})
	}))
	defer srv.Close()

	products, totalPages, err := newTestClient(srv).ListPage(context.Background(), 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 || totalPages != 7 {
		t.Fatalf("expected 2 products / 7 pages, got %d / %d", len(products), totalPages)
	}
}

func TestBatchCreateParsesParallelResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Create) != 2 {
			t.Errorf("expected 2 create payloads, got %d", len(req.Create))
		}
		json.NewEncoder(w).Encode(batchResponse{Create: []BatchItem{
			{ID: 100, SKU: "A"},
			{SKU: "B", Error: &ItemError{Code: "product_invalid_sku", Message: "Invalid or duplicated SKU."}},
		}})
	}))
	defer srv.Close()

	items, err := newTestClient(srv).BatchCreate(context.Background(), []ProductPayload{
		{Name: "A", SKU: "A"}, {Name: "B", SKU: "B"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 100 || items[0].Error != nil {
		t.Fatalf("first item should be created: %+v", items[0])
	}
	if items[1].Error == nil || items[1].Error.Code != "product_invalid_sku" {
		t.Fatalf("second item should carry the error: %+v", items[1])
	}
}

func TestBatchCreateHTTPErrorFailsWholeCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":"internal_server_error","message":"boom"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).BatchCreate(context.Background(), []ProductPayload{{Name: "A"}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateTermRecoversExistingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"term_exists","message":"A term with the name provided already exists.","additional_data":[42]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateTerm(context.Background(), KindCategory, "Widgets")
	var dup *DuplicateTermError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTermError, got %v", err)
	}
	if len(dup.ExistingIDs) != 1 || dup.ExistingIDs[0] != 42 {
		t.Fatalf("expected existing ID 42, got %v", dup.ExistingIDs)
	}
}

func TestBrandTermsUseWPBasicAuth(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).ListTerms(context.Background(), KindBrand); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/wp-json/wp/v2/product_brand" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Basic ") {
		t.Fatalf("expected basic auth, got %q", gotAuth)
	}
}

func TestAssignImagePostsToImageEndpoint(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := newTestClient(srv).AssignImage(context.Background(), 55, "https://img.example.com/products/a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/wp-json/my-images/v1/set-url/55" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotBody["image_url"] != "https://img.example.com/products/a.jpg" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestAssignImageRejectsEmptyURL(t *testing.T) {
	c := New(config.WooConfig{URL: "http://localhost"})
	if err := c.AssignImage(context.Background(), 1, ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadAllFetchesAndSkips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("imagedata"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.jpg"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDownloader(3)
	items := []DownloadItem{
		{URL: srv.URL + "/a.jpg", FileName: "a.jpg"},
		{URL: srv.URL + "/existing.jpg", FileName: "existing.jpg"},
		{URL: srv.URL + "/missing.jpg", FileName: "missing.jpg"},
	}
	stats, err := d.DownloadAll(context.Background(), items, dir)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Downloaded != 1 || stats.Skipped != 1 || stats.Failed != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	if err != nil || string(data) != "imagedata" {
		t.Fatalf("downloaded file wrong: %q, %v", data, err)
	}
	// The existing file must not be overwritten.
	data, _ = os.ReadFile(filepath.Join(dir, "existing.jpg"))
	if string(data) != "old" {
		t.Fatalf("existing file was overwritten: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.jpg")); !os.IsNotExist(err) {
		t.Fatal("failed download must not leave a file behind")
	}
}

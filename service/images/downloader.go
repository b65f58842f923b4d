package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// DownloadItem is one image to fetch: the source URL and the file name it is
// stored under (usually the cleaned SKU plus extension).
type DownloadItem struct {
	URL      string
	FileName string
}

// DownloadStats aggregates one bulk download run.
type DownloadStats struct {
	Downloaded int64
	Skipped    int64
	Failed     int64
}

// Downloader fetches catalog images concurrently into one directory. Files
// that already exist with content are skipped, so re-runs only fill gaps.
type Downloader struct {
	Workers int
	Timeout time.Duration
	Log     func(string)

	client *http.Client
}

func NewDownloader(workers int) *Downloader {
	if workers <= 0 {
		workers = 10
	}
	return &Downloader{
		Workers: workers,
		Timeout: 60 * time.Second,
	}
}

func (d *Downloader) logf(format string, args ...interface{}) {
	if d.Log != nil {
		d.Log(fmt.Sprintf(format, args...))
	}
}

// DownloadAll fetches every item into destDir and returns the stats. Failures
// are logged and counted, never fatal for the run.
func (d *Downloader) DownloadAll(ctx context.Context, items []DownloadItem, destDir string) (DownloadStats, error) {
	var stats DownloadStats
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return stats, fmt.Errorf("create %s: %w", destDir, err)
	}
	if d.client == nil {
		d.client = &http.Client{Timeout: d.Timeout}
	}

	jobs := make(chan DownloadItem)
	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				switch err := d.fetch(ctx, item, destDir); {
				case err == nil:
					atomic.AddInt64(&stats.Downloaded, 1)
				case err == errAlreadyPresent:
					atomic.AddInt64(&stats.Skipped, 1)
				default:
					d.logf("download %s failed: %v", item.FileName, err)
					atomic.AddInt64(&stats.Failed, 1)
				}
			}
		}()
	}

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		jobs <- item
	}
	close(jobs)
	wg.Wait()

	d.logf("downloads: %d new, %d skipped, %d failed", stats.Downloaded, stats.Skipped, stats.Failed)
	return stats, ctx.Err()
}

var errAlreadyPresent = fmt.Errorf("already present")

// fetch writes one image to a temp file first so interrupted transfers never
// leave a truncated image behind.
func (d *Downloader) fetch(ctx context.Context, item DownloadItem, destDir string) error {
	dest := filepath.Join(destDir, item.FileName)
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		return errAlreadyPresent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(destDir, ".download-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

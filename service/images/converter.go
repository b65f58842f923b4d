package images

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Canvas dimensions the storefront expects for product photos.
const (
	canvasWidth  = 2560
	canvasHeight = 1440
)

// ConvertStats aggregates one bulk conversion run.
type ConvertStats struct {
	Converted int64
	Skipped   int64
	Failed    int64
}

// Converter normalizes raw catalog photos: each image is scaled to fit the
// storefront canvas and pasted centered on a white background. Low-resolution
// sources are upscaled only up to a cap so they do not turn into blur.
type Converter struct {
	Workers int
	Quality int
	Log     func(string)
}

func NewConverter(workers int) *Converter {
	if workers <= 0 {
		workers = 4
	}
	return &Converter{Workers: workers, Quality: 90}
}

func (c *Converter) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log(fmt.Sprintf(format, args...))
	}
}

// ConvertDir converts every image in srcDir into dstDir, keeping file names
// and converting extension to .jpg unless the source is .webp. Existing
// outputs are skipped.
func (c *Converter) ConvertDir(ctx context.Context, srcDir, dstDir string) (ConvertStats, error) {
	var stats ConvertStats

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", srcDir, err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return stats, fmt.Errorf("create %s: %w", dstDir, err)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < c.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				dst := filepath.Join(dstDir, outputName(name))
				if info, err := os.Stat(dst); err == nil && info.Size() > 0 {
					atomic.AddInt64(&stats.Skipped, 1)
					continue
				}
				if err := c.Convert(filepath.Join(srcDir, name), dst); err != nil {
					c.logf("convert %s failed: %v", name, err)
					atomic.AddInt64(&stats.Failed, 1)
					continue
				}
				atomic.AddInt64(&stats.Converted, 1)
			}
		}()
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if e.IsDir() || !hasImageExt(e.Name()) {
			continue
		}
		jobs <- e.Name()
	}
	close(jobs)
	wg.Wait()

	c.logf("conversions: %d done, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	return stats, ctx.Err()
}

// Convert renders one source image onto the white canvas and writes dst.
func (c *Converter) Convert(srcPath, dstPath string) error {
	src, err := openImage(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}

	fitted := fitToCanvas(src)
	canvas := imaging.New(canvasWidth, canvasHeight, color.White)
	canvas = imaging.PasteCenter(canvas, fitted)

	return saveImage(canvas, dstPath, c.Quality)
}

// fitToCanvas scales the image to fit the canvas, capping the upscale factor
// by source resolution.
func fitToCanvas(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	scale := minFloat(float64(canvasWidth)/float64(w), float64(canvasHeight)/float64(h))
	if scale > 1 {
		if limit := maxUpscale(w * h); scale > limit {
			scale = limit
		}
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw == w && nh == h {
		return src
	}
	return imaging.Resize(src, nw, nh, imaging.Lanczos)
}

// maxUpscale returns how far a source may be enlarged before artifacts become
// visible, by source pixel count.
func maxUpscale(pixels int) float64 {
	switch {
	case pixels >= 1_000_000:
		return 2.5
	case pixels >= 300_000:
		return 2.0
	default:
		return 1.5
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func openImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}

func saveImage(img image.Image, path string, quality int) error {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	}
	return imaging.Save(img, path, imaging.JPEGQuality(quality))
}

// outputName keeps .webp sources as .webp and renders everything else to .jpg.
func outputName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if ext == ".webp" {
		return base + ".webp"
	}
	return base + ".jpg"
}

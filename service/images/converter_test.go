package images

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
}

func TestConvertProducesCanvasSizedOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	writeTestImage(t, src, 1920, 1080)

	c := NewConverter(1)
	if err := c.Convert(src, dst); err != nil {
		t.Fatal(err)
	}

	out, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != canvasWidth || b.Dy() != canvasHeight {
		t.Fatalf("expected %dx%d, got %dx%d", canvasWidth, canvasHeight, b.Dx(), b.Dy())
	}
}

func TestFitToCanvasCapsUpscale(t *testing.T) {
	src := imaging.New(100, 100, color.White) // tiny source, cap is 1.5x
	fitted := fitToCanvas(src)
	if b := fitted.Bounds(); b.Dx() != 150 || b.Dy() != 150 {
		t.Fatalf("expected 150x150, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFitToCanvasShrinksOversized(t *testing.T) {
	src := imaging.New(5120, 1440, color.White)
	fitted := fitToCanvas(src)
	if b := fitted.Bounds(); b.Dx() != canvasWidth || b.Dy() != 720 {
		t.Fatalf("expected %dx720, got %dx%d", canvasWidth, b.Dx(), b.Dy())
	}
}

func TestConvertDirSkipsExistingOutputs(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeTestImage(t, filepath.Join(srcDir, "one.jpg"), 400, 300)
	writeTestImage(t, filepath.Join(srcDir, "two.png"), 400, 300)
	writeTestImage(t, filepath.Join(dstDir, "one.jpg"), 10, 10)

	c := NewConverter(2)
	stats, err := c.ConvertDir(context.Background(), srcDir, dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Converted != 1 || stats.Skipped != 1 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

package images

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// imageExts lists the extensions the finder probes, in preference order.
var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

var skuInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Finder locates the local image file for a SKU inside one directory. Image
// files are named after the cleaned SKU; when no exact match exists the first
// file whose name starts with the SKU wins. The directory listing is read once
// and cached for the lifetime of the finder.
type Finder struct {
	dir string

	once    sync.Once
	entries []string
}

func NewFinder(dir string) *Finder {
	return &Finder{dir: dir}
}

// FindImage returns the path of the SKU's image file, or "" when none exists.
func (f *Finder) FindImage(sku string) string {
	clean := skuInvalid.ReplaceAllString(strings.TrimSpace(sku), "")
	if clean == "" || f.dir == "" {
		return ""
	}

	for _, ext := range imageExts {
		p := filepath.Join(f.dir, clean+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	lower := strings.ToLower(clean)
	for _, name := range f.listing() {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasPrefix(strings.ToLower(base), lower) && hasImageExt(name) {
			return filepath.Join(f.dir, name)
		}
	}
	return ""
}

func (f *Finder) listing() []string {
	f.once.Do(func() {
		entries, err := os.ReadDir(f.dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !e.IsDir() {
				f.entries = append(f.entries, e.Name())
			}
		}
	})
	return f.entries
}

func hasImageExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

package csvadapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ImageRef links a SKU to the source URL of its photo.
type ImageRef struct {
	SKU string
	URL string
}

var imageURLHeaders = []string{"image", "image_url", "photo", "url", "фото", "изображение", "ссылка"}

// LoadImageRefsFile reads a sku/image-url CSV.
func LoadImageRefsFile(path string) ([]ImageRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	refs, err := LoadImageRefs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return refs, nil
}

// LoadImageRefs parses CSV content with a sku column and an image URL column.
func LoadImageRefs(r io.Reader) ([]ImageRef, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	skuIdx, urlIdx := -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, syn := range headerSynonyms["sku"] {
			if h == syn {
				skuIdx = i
			}
		}
		for _, syn := range imageURLHeaders {
			if h == syn {
				urlIdx = i
			}
		}
	}
	if skuIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("CSV must contain sku and image URL columns (got header: %s)", strings.Join(header, ", "))
	}

	var refs []ImageRef
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		ref := ImageRef{SKU: field(record, skuIdx), URL: field(record, urlIdx)}
		if ref.SKU == "" || !strings.HasPrefix(ref.URL, "http") {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

package csvadapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"woocommerce.GO/config"
	"woocommerce.GO/service/upload"
)

// headerSynonyms drives auto-detection: each canonical field lists the header
// spellings (russian and english) it is recognized under.
var headerSynonyms = map[string][]string{
	"brand":           {"brand", "бренд", "марка", "производитель"},
	"name":            {"name", "наименование", "название", "товар", "product"},
	"sku":             {"sku", "артикул", "код", "код товара"},
	"category":        {"category", "категория", "группа", "раздел"},
	"price":           {"price", "цена", "стоимость", "цена, руб"},
	"description":     {"description", "описание"},
	"characteristics": {"characteristics", "характеристики", "specs"},
}

// columns holds the resolved column index per canonical field; -1 means the
// column is absent.
type columns struct {
	brand, name, sku, category, price, description, characteristics int
}

// LoadFile reads a catalog CSV into product rows. The mapping overrides
// auto-detected headers; name and sku columns are mandatory. Rows without a
// SKU or name are dropped.
func LoadFile(path string, mapping config.CSVMapping) ([]upload.ProductRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	rows, err := Load(f, mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Load parses CSV content from r.
func Load(r io.Reader, mapping config.CSVMapping) ([]upload.ProductRow, error) {
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

	cols, err := resolveColumns(header, mapping)
	if err != nil {
		return nil, err
	}

	var rows []upload.ProductRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := upload.ProductRow{
			Brand:       field(record, cols.brand),
			Name:        field(record, cols.name),
			SKU:         field(record, cols.sku),
			Category:    field(record, cols.category),
			Description: field(record, cols.description),
			Specs:       field(record, cols.characteristics),
		}
		if row.SKU == "" || row.Name == "" {
			continue
		}
		row.Price = parsePrice(field(record, cols.price))
		rows = append(rows, row)
	}
	return rows, nil
}

func resolveColumns(header []string, mapping config.CSVMapping) (columns, error) {
	overrides := map[string]string{
		"brand":           mapping.Brand,
		"name":            mapping.Name,
		"sku":             mapping.SKU,
		"category":        mapping.Category,
		"price":           mapping.Price,
		"description":     mapping.Description,
		"characteristics": mapping.Characteristics,
	}

	find := func(fieldName string) int {
		if override := overrides[fieldName]; override != "" {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), override) {
					return i
				}
			}
			return -1
		}
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(h))
			for _, syn := range headerSynonyms[fieldName] {
				if h == syn {
					return i
				}
			}
		}
		return -1
	}

	cols := columns{
		brand:           find("brand"),
		name:            find("name"),
		sku:             find("sku"),
		category:        find("category"),
		price:           find("price"),
		description:     find("description"),
		characteristics: find("characteristics"),
	}
	if cols.name < 0 || cols.sku < 0 {
		return cols, fmt.Errorf("CSV must contain name and sku columns (got header: %s)", strings.Join(header, ", "))
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parsePrice accepts both dot and comma decimal separators and strips spaces
// used as thousand separators. Unparseable prices become 0 (product published
// without a price).
func parsePrice(s string) float64 {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

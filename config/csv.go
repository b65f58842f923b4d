package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// CSVMapping pins CSV header names to canonical fields, overriding the
// adapter's auto-detection. All fields are optional.
type CSVMapping struct {
	Brand           string `mapstructure:"brand"`
	Name            string `mapstructure:"name"`
	SKU             string `mapstructure:"sku"`
	Category        string `mapstructure:"category"`
	Price           string `mapstructure:"price"`
	Description     string `mapstructure:"description"`
	Characteristics string `mapstructure:"characteristics"`
}

// LoadCSVMapping reads the optional column-mapping file pointed to by
// CSV_MAPPING_FILE. Returns a zero mapping when the variable is unset.
func LoadCSVMapping() (CSVMapping, error) {
	var m CSVMapping
	path := os.Getenv("CSV_MAPPING_FILE")
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read CSV mapping file: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return m, fmt.Errorf("parse CSV mapping file: %w", err)
	}
	if err := mapstructure.Decode(raw, &m); err != nil {
		return m, fmt.Errorf("decode CSV mapping: %w", err)
	}
	return m, nil
}

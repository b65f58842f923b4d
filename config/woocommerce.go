package config

import (
	"os"
	"strings"
	"time"
)

// WooConfig holds WooCommerce / WordPress REST API credentials.
type WooConfig struct {
	URL            string
	ConsumerKey    string
	ConsumerSecret string

	// WordPress application password, used by the external-image assignment
	// endpoint and brand taxonomies served from wp/v2.
	WPUsername    string
	WPAppPassword string

	// REST base of the brand taxonomy (backend/plugin specific).
	BrandEndpoint string

	Timeout time.Duration

	// Extra duplicate-SKU error codes/message fragments, comma separated.
	DuplicateSKUCodes     []string
	DuplicateSKUFragments []string
}

func LoadWooConfig() WooConfig {
	return WooConfig{
		URL:                   strings.TrimRight(os.Getenv("WC_URL"), "/"),
		ConsumerKey:           os.Getenv("WC_CONSUMER_KEY"),
		ConsumerSecret:        os.Getenv("WC_CONSUMER_SECRET"),
		WPUsername:            os.Getenv("WP_USERNAME"),
		WPAppPassword:         os.Getenv("WP_APP_PASSWORD"),
		BrandEndpoint:         getEnvDefault("WC_BRAND_ENDPOINT", "product_brand"),
		Timeout:               time.Duration(getEnvInt("WC_TIMEOUT_SECONDS", 180)) * time.Second,
		DuplicateSKUCodes:     splitCSV(os.Getenv("WC_DUPLICATE_SKU_CODES")),
		DuplicateSKUFragments: splitCSV(os.Getenv("WC_DUPLICATE_SKU_FRAGMENTS")),
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

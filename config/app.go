package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Env     string
	Debug   bool

	// Upload tuning. Batch and sub-chunk sizes are independent knobs: batches
	// bound memory per pass, sub-chunks bound per-request latency on the
	// products/batch endpoint.
	BatchSize       int
	SubChunkSize    int
	ImageWorkers    int
	AssembleWorkers int
	LookupWorkers   int
	PageWorkers     int
	BatchPause      time.Duration

	MarketingText string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:         getEnvDefault("APP_NAME", "woocommerce.GO"),
			Env:             os.Getenv("APP_ENV"),
			Debug:           os.Getenv("DEBUG") == "true",
			BatchSize:       getEnvInt("UPLOAD_BATCH_SIZE", 100),
			SubChunkSize:    getEnvInt("UPLOAD_SUBCHUNK_SIZE", 25),
			ImageWorkers:    getEnvInt("UPLOAD_IMAGE_WORKERS", 10),
			AssembleWorkers: getEnvInt("UPLOAD_ASSEMBLE_WORKERS", 10),
			LookupWorkers:   getEnvInt("UPLOAD_LOOKUP_WORKERS", 5),
			PageWorkers:     getEnvInt("UPLOAD_PAGE_WORKERS", 5),
			BatchPause:      time.Duration(getEnvInt("UPLOAD_BATCH_PAUSE_MS", 2000)) * time.Millisecond,
			MarketingText:   os.Getenv("MARKETING_TEXT"),
		}
	})
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

package config

import (
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewJournalDB opens the local sqlite database holding the import-run journal.
// The journal is a convenience record of past runs; it is not consulted by the
// upload pipeline itself.
func NewJournalDB() (*gorm.DB, error) {
	path := os.Getenv("JOURNAL_DB")
	if path == "" {
		path = "woocommerce-go.db"
	}

	logMode := logger.Silent
	if os.Getenv("GORM_LOG") == "on" {
		logMode = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

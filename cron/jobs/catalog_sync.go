package jobs

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"woocommerce.GO/config"
	"woocommerce.GO/cron"
	"woocommerce.GO/csvadapter"
	runRepo "woocommerce.GO/model/repository/importrun"
	"woocommerce.GO/service/runner"
	"woocommerce.GO/service/upload"
)

func init() {
	cron.Register("catalogsyncjob", "0 3 * * *", CatalogSyncJob)
}

// CatalogSyncJob uploads the newest CSV from the watch directory in
// skip-existing mode. Intended for a nightly schedule: new rows are created,
// everything already in the store is left untouched.
func CatalogSyncJob(args ...string) {
	dir := os.Getenv("CATALOG_WATCH_DIR")
	if dir == "" {
		log.Println("catalog sync: CATALOG_WATCH_DIR not set, skipping")
		return
	}

	file, err := newestCSV(dir)
	if err != nil {
		log.Printf("catalog sync: %v", err)
		return
	}
	if file == "" {
		log.Printf("catalog sync: no CSV files in %s", dir)
		return
	}

	mapping, err := config.LoadCSVMapping()
	if err != nil {
		log.Printf("catalog sync: %v", err)
		return
	}
	rows, err := csvadapter.LoadFile(file, mapping)
	if err != nil {
		log.Printf("catalog sync: %v", err)
		return
	}

	u, closer, err := runner.Build()
	if err != nil {
		log.Printf("catalog sync: %v", err)
		return
	}
	defer closer()

	started := time.Now()
	res := u.Run(context.Background(), rows, upload.SkipExisting)
	log.Printf("catalog sync: %s: %s", filepath.Base(file), res.Message)

	recordRun(file, started, res)
}

func recordRun(file string, started time.Time, res upload.Result) {
	db, err := config.NewJournalDB()
	if err != nil {
		log.Printf("catalog sync: journal unavailable: %v", err)
		return
	}
	repo, err := runRepo.NewImportRunRepository(db)
	if err != nil {
		log.Printf("catalog sync: journal unavailable: %v", err)
		return
	}
	if _, err := repo.Record(file, upload.SkipExisting, started, res); err != nil {
		log.Printf("catalog sync: journal write failed: %v", err)
	}
}

// newestCSV returns the most recently modified .csv in dir, or "".
func newestCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}

package runner

import (
	"fmt"
	"log"
	"os"

	"woocommerce.GO/config"
	"woocommerce.GO/publisher"
	"woocommerce.GO/service/images"
	"woocommerce.GO/service/upload"
	"woocommerce.GO/wc"
)

// Build assembles a ready-to-run Uploader from the environment configuration.
// The returned closer releases the publisher connection; it is safe to call
// even when no publisher is configured.
func Build() (*upload.Uploader, func() error, error) {
	wcCfg := config.LoadWooConfig()
	if wcCfg.URL == "" {
		return nil, nil, fmt.Errorf("WC_URL is not set")
	}
	client := wc.New(wcCfg)

	closer := func() error { return nil }
	var pub upload.AssetPublisher
	if sftpCfg := config.LoadSFTPConfig(); sftpCfg.Host != "" {
		p := publisher.NewSFTP(sftpCfg)
		pub = p
		closer = p.Close
	}

	var finder upload.ImageFinder
	if dir := os.Getenv("IMAGES_DIR"); dir != "" {
		finder = images.NewFinder(dir)
	}

	u := upload.NewUploader(client, client, client, pub, finder)
	u.SetClassifier(wc.NewErrorClassifier(wcCfg.DuplicateSKUCodes, wcCfg.DuplicateSKUFragments))
	u.PlaceholderURL = os.Getenv("PLACEHOLDER_IMAGE_URL")
	u.PlaceholderFile = os.Getenv("PLACEHOLDER_IMAGE_FILE")
	u.Log = func(msg string) { log.Println(msg) }

	if app := config.AppConfig; app != nil {
		u.BatchSize = app.BatchSize
		u.SubChunkSize = app.SubChunkSize
		u.ImageWorkers = app.ImageWorkers
		u.AssembleWorkers = app.AssembleWorkers
		u.LookupWorkers = app.LookupWorkers
		u.BatchPause = app.BatchPause
		u.MarketingText = app.MarketingText
		u.SetPageWorkers(app.PageWorkers)
	}
	return u, closer, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"woocommerce.GO/config"
	"woocommerce.GO/csvadapter"
	runRepo "woocommerce.GO/model/repository/importrun"
	"woocommerce.GO/service/runner"
	"woocommerce.GO/service/upload"
)

var (
	uploadFile    string
	uploadUpdate  bool
	uploadVerbose bool
	uploadLimit   int
)

var uploadCmd = &cobra.Command{
	Use:   "products:upload",
	Short: "Upload a product catalog CSV to the WooCommerce store",
	Run: func(cmd *cobra.Command, args []string) {
		mapping, err := config.LoadCSVMapping()
		if err != nil {
			fmt.Printf("CSV mapping: %v\n", err)
			os.Exit(1)
		}
		rows, err := csvadapter.LoadFile(uploadFile, mapping)
		if err != nil {
			fmt.Printf("Failed to read catalog: %v\n", err)
			os.Exit(1)
		}
		if uploadLimit > 0 && uploadLimit < len(rows) {
			rows = rows[:uploadLimit]
		}
		if len(rows) == 0 {
			fmt.Println("Catalog is empty, nothing to upload.")
			return
		}

		u, closer, err := runner.Build()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			os.Exit(1)
		}
		defer closer()

		mode := upload.SkipExisting
		if uploadUpdate {
			mode = upload.UpdateExisting
		}

		bar := pb.StartNew(len(rows))
		u.Progress = func(processed, total int) {
			bar.SetCurrent(int64(processed))
		}
		if !uploadVerbose {
			u.Log = nil
		}

		// Ctrl+C finishes the current batch and reports what was done.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Println("\nStop requested, finishing current batch...")
			u.RequestStop()
		}()

		started := time.Now()
		res := u.Run(context.Background(), rows, mode)
		bar.Finish()
		signal.Stop(sigCh)

		fmt.Printf(`
=== Upload Report ===
CSV rows:   %d
Processed:  %d
New:        %d
Updated:    %d
Skipped:    %d
Errors:     %d
Mode:       %s
Stopped:    %v
Total time: %s
=====================
`, res.Total, res.Processed, res.New, res.Updated, res.Skipped, res.Errors,
			mode, res.Stopped, time.Since(started).Round(time.Millisecond))

		recordJournal(uploadFile, mode, started, res)

		if !res.Success {
			os.Exit(1)
		}
	},
}

func recordJournal(file string, mode upload.Mode, started time.Time, res upload.Result) {
	db, err := config.NewJournalDB()
	if err != nil {
		fmt.Printf("  [warn] journal unavailable: %v\n", err)
		return
	}
	repo, err := runRepo.NewImportRunRepository(db)
	if err != nil {
		fmt.Printf("  [warn] journal unavailable: %v\n", err)
		return
	}
	if _, err := repo.Record(file, mode, started, res); err != nil {
		fmt.Printf("  [warn] journal write failed: %v\n", err)
	}
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Catalog CSV file path (required)")
	uploadCmd.MarkFlagRequired("file")
	uploadCmd.Flags().BoolVar(&uploadUpdate, "update-existing", false, "Update products whose SKU already exists (default: skip them)")
	uploadCmd.Flags().BoolVarP(&uploadVerbose, "verbose", "v", false, "Log every API interaction")
	uploadCmd.Flags().IntVar(&uploadLimit, "limit", 0, "Upload only the first N rows (0 = all)")
	rootCmd.AddCommand(uploadCmd)
}

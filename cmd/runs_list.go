package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"woocommerce.GO/config"
	runEntity "woocommerce.GO/model/entity/importrun"
	runRepo "woocommerce.GO/model/repository/importrun"
)

var runsLimit int

var runsListCmd = &cobra.Command{
	Use:   "runs:list",
	Short: "Show recent upload runs from the local journal",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewJournalDB()
		if err != nil {
			fmt.Printf("Journal unavailable: %v\n", err)
			os.Exit(1)
		}
		repo, err := runRepo.NewImportRunRepository(db)
		if err != nil {
			fmt.Printf("Journal unavailable: %v\n", err)
			os.Exit(1)
		}
		runs, err := repo.Latest(runsLimit)
		if err != nil {
			fmt.Printf("Failed to read journal: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}

		fmt.Printf("%-5s %-20s %-16s %-8s %s\n", "ID", "Started", "Mode", "OK", "Counters")
		for _, run := range runs {
			var c runEntity.Counters
			json.Unmarshal(run.Counters, &c)
			fmt.Printf("%-5d %-20s %-16s %-8v new=%d upd=%d skip=%d err=%d of %d\n",
				run.RunID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Mode, run.Success,
				c.New, c.Updated, c.Skipped, c.Errors, c.Total)
		}
	},
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(runsListCmd)
}

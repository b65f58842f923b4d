package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"woocommerce.GO/config"
	"woocommerce.GO/csvadapter"
	"woocommerce.GO/service/describe"
)

var (
	describeFile  string
	describeOut   string
	describeBatch int
)

var describeCmd = &cobra.Command{
	Use:   "descriptions:generate",
	Short: "Generate missing product descriptions and write them to a CSV",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Println("OPENAI_API_KEY is not set")
			os.Exit(1)
		}

		mapping, err := config.LoadCSVMapping()
		if err != nil {
			fmt.Printf("CSV mapping: %v\n", err)
			os.Exit(1)
		}
		rows, err := csvadapter.LoadFile(describeFile, mapping)
		if err != nil {
			fmt.Printf("Failed to read catalog: %v\n", err)
			os.Exit(1)
		}

		nameBySKU := make(map[string]string)
		var names []string
		for _, row := range rows {
			if row.Description == "" {
				nameBySKU[row.SKU] = row.Name
				names = append(names, row.Name)
			}
		}
		if len(names) == 0 {
			fmt.Println("Every row already has a description.")
			return
		}
		fmt.Printf("Generating descriptions for %d products...\n", len(names))

		g := describe.NewGenerator(apiKey)
		g.BatchSize = describeBatch
		g.Log = func(msg string) { fmt.Println(msg) }
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			g.Model = model
		}

		descs, stats := g.GenerateAll(context.Background(), names)
		fmt.Printf("Done: %d generated, %d failed in %d batches\n", stats.Generated, stats.Failed, stats.Batches)

		if err := writeDescriptions(describeOut, nameBySKU, descs); err != nil {
			fmt.Printf("Failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Written to %s\n", describeOut)
	},
}

func writeDescriptions(path string, nameBySKU, descs map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"sku", "name", "description"}); err != nil {
		return err
	}
	for sku, name := range nameBySKU {
		if d, ok := descs[name]; ok {
			if err := w.Write([]string{sku, name, d}); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	describeCmd.Flags().StringVarP(&describeFile, "file", "f", "", "Catalog CSV file path (required)")
	describeCmd.MarkFlagRequired("file")
	describeCmd.Flags().StringVarP(&describeOut, "out", "o", "descriptions.csv", "Output CSV path")
	describeCmd.Flags().IntVar(&describeBatch, "batch-size", 10, "Products per completion request")
	rootCmd.AddCommand(describeCmd)
}

package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "woocommerce.GO",
	Short: "Bulk catalog uploader for WooCommerce stores",
	Run: func(cmd *cobra.Command, args []string) {
		banner()
		cmd.Help()
	},
}

// Execute wires the registered extension commands in and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// banner prints the ASCII logo (random font each run).
func banner() {
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	figure.NewFigure("wooGO ->", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()
}

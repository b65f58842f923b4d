package cmd

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"woocommerce.GO/api"
	_ "woocommerce.GO/api/upload"
	"woocommerce.GO/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (upload control and run journal)",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitRedis()

		var db *gorm.DB
		db, err := config.NewJournalDB()
		if err != nil {
			fmt.Printf("  [warn] journal unavailable: %v\n", err)
			db = nil
		}

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Recover())
		e.Use(middleware.Logger())

		apiGroup := e.Group("/api")
		api.ApplyModules(apiGroup, db)
		api.ApplyRoutes(e, db)

		banner()
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		fmt.Printf("API at http://localhost:%s/api/upload/status\n", port)
		e.Logger.Fatal(e.Start(":" + port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	_ "woocommerce.GO/custom"

	"woocommerce.GO/cmd"
	"woocommerce.GO/config"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cmd.Execute()
}

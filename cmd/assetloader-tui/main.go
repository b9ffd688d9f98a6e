package main

import (
	"fmt"
	"os"

	"assetloader/internal/config"
	"assetloader/internal/tui"
)

func main() {
	settings := config.DefaultSettings()
	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

// Main entry point of hcran-charts
// Runs the Cobra command tree; any error exits with status 1

import (
	"errors"
	"fmt"
	"os"

	"hcran-charts/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !errors.Is(err, commands.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

package main

// Standalone delay sweep plotter
// Usage: sweep_delay results/2s/ results/1s/ results/0.5s/ results/0.25s/

import (
	"errors"
	"fmt"
	"os"

	"hcran-charts/cmd/commands"
)

func main() {
	if err := commands.ExecuteStandalone("sweep-delay", os.Args[1:]); err != nil {
		if !errors.Is(err, commands.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

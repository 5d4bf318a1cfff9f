package main

// Standalone static vs dynamic comparison plotter
// Writes the three bar charts under images/

import (
	"fmt"
	"os"

	"hcran-charts/cmd/commands"
)

func main() {
	if err := commands.ExecuteStandalone("compare", os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

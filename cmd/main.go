package main

// Entry point of lifeweeks
// Executes the Cobra command tree and exits 1 on error

import (
	"fmt"
	"os"

	"lifeweeks/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main is the entry point for the trove CLI.
package main

import (
	"os"

	"github.com/runger/trove/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

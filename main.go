// Package main is the entry point for the gabi CLI, a client for a remote
// SQL query execution service.
package main

import (
	"os"

	"github.com/fatih/color"

	"gabi/cli/cmd"
	"gabi/cli/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintln(os.Stderr, logging.PresentError("Error", err))
		os.Exit(1)
	}
}

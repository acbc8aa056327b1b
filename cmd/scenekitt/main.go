// Package main provides the scenekitt CLI tool.
//
// Usage:
//
//	scenekitt [flags] <command> [args]
//
// Commands:
//
//	segment - Split a script into scenes with one rule
//	sweep   - Run every configured rule concurrently
//	stats   - Print corpus statistics
//	runs    - List, show and delete stored runs
//	version - Print the version
//
// Configuration:
//
//	Settings come from --config (YAML) and SCENEKITT_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kittclouds/scenekitt/cmd/scenekitt/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

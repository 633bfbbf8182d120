// Package main provides the entry point for the dupe CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/howmanysmall/dupe/src/internal/cli"
)

// Build information. These are set by the build process.
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, buildTime, commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// Package cli provides the command-line interface for CortexFin
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/dyike/CortexFin/pkg/logger"
)

// Set at build time with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// Run starts the CLI application
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

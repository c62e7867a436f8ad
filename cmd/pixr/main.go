// Command pixr is the CLI entrypoint for the pixr image tool.
//
// It wires the signal-aware context and build information into the cobra
// command tree in internal/cli and exits with the code it returns.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/pixr/internal/cli"
)

// version and commit are injected at build time via -ldflags
// ("-X main.version=... -X main.commit=...").
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// SIGINT/SIGTERM cancel the context; watch mode stops between files.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, cli.BuildInfo{Version: version, Commit: commit}, os.Args[1:], os.Stdout, os.Stderr)
}

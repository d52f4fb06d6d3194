// Command atsfit scores and tailors resumes for applicant tracking systems.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}

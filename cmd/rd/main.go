// Command rd creates, inspects, converts and runs reaction-diffusion
// patterns from the command line.
package main

import (
	"context"
	"os"
	"os/signal"

	_ "rdcore/internal/sims/grayscott"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

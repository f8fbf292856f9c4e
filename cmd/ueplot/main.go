// Command ueplot turns unitary event analyses into plot-ready panels.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/ueplot/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	cli.ReportUnhandled(os.Stderr, err)
	stop()
	os.Exit(cli.GetExitCode(err))
}

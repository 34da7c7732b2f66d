// Command binarytrack assembles binary star evolution tracks from HDF5 files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/askiada/go-binarytrack/internal/cli"
	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/h5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, func(attributes []string) container.Opener {
		return h5.Opener(h5.WithAttributes(attributes...))
	})

	stop()

	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clacklabs/clack/pkg/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args, version); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"slacal/internal/cli"
	appLog "slacal/internal/log"
)

func main() {
	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.NewCmdRoot().ExecuteContext(ctx)
	cancel()
	appLog.Sync()
	if err != nil {
		os.Exit(1)
	}
}

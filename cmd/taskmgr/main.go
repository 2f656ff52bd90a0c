// Package main is the entry point for the taskmgr CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskmgr/internal/backend/rest"
	"taskmgr/internal/cli"
	"taskmgr/internal/commands"
	"taskmgr/internal/config"
	"taskmgr/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return rest.New(ctx, cfg, cfg.Logger(os.Stderr))
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

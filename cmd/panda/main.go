package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/pandaschool/internal/cli"
	"github.com/vytor/pandaschool/internal/config"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/session"
)

func main() {
	cfg := config.LoadClient()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	open := cli.NewOpener(cfg, session.NewFileCredentialStore(cfg.CredentialsPath))
	if err := cli.NewRootCommand(open).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blog-service",
		Usage: "Blog backend: users, drafts, publishing and token login",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Directory holding config.yaml",
				Value:   "config",
				EnvVars: []string{"BLOG_CONFIG_DIR"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("Application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

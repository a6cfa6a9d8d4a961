package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"blog-service/internal/infrastructure/config"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/repository/postgres"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg := config.MustLoad(c.String("config"))
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs the %q driver, got %q", config.DriverPostgres, cfg.Database.Driver)
			}
			return postgres.MigrateUp(cfg.Database.DSN(), logger.New(cfg.Env))
		},
	}
}

// AngelaMos | 2026
// migrate.go

package main

import (
	"context"
	"log/slog"

	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	logger, closer := setupLogger(cfg.Log)
	defer closer.Close() //nolint:errcheck // best-effort flush on exit

	ctx := context.Background()
	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process is exiting

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	logger.Info("schema up to date",
		slog.String("driver", cfg.Database.Driver),
	)
	return nil
}

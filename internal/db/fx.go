package db

import (
	"context"

	"go.uber.org/fx"

	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/logger"
)

// Module migrates the schema on start, before any later module begins serving.
var Module = fx.Module("migrations",
	fx.Invoke(func(lc fx.Lifecycle, log logger.Logger, cfg *config.Config) {
		log = log.WithComponent("Migrations")
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := Migrate(ctx, log, cfg); err != nil {
					return err
				}
				log.Info("Schema up to date")
				return nil
			},
		})
	}),
)

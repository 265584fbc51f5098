package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"event-bookings/internal/handler/middleware"
	"event-bookings/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies the versioned migrations in migrations/ using the atlas CLI.
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Info("Nothing to migrate", "store_driver", cfg.Store.Driver)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrate(ctx, logger, cfg.DB.BuildDSN(), *dir, *dryRun); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, dsn, dir string, dryRun bool) error {
	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dsn,
		DirURL: dir,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	applied := make([]string, 0, len(res.Applied))
	for _, f := range res.Applied {
		applied = append(applied, f.Name)
	}
	logger.Info("Migrations applied",
		"current", res.Current,
		"target", res.Target,
		"pending", len(res.Pending),
		"applied", applied,
		"dry_run", dryRun,
	)
	return nil
}

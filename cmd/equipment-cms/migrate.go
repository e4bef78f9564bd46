package main

import (
	"context"
	"fmt"

	"github.com/forgeline/equipment-cms/config"
	"github.com/forgeline/equipment-cms/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadEnv()
			appLogger := newLogger(cfg)
			defer appLogger.Sync()

			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if len(applied) == 0 {
				appLogger.Info("Schema is up to date")
				return nil
			}
			appLogger.Info("Applied migrations", zap.Strings("versions", applied))
			return nil
		},
	}
}

func migrateDB(ctx context.Context, a *app) ([]string, error) {
	applied, err := database.Migrate(ctx, a.db)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return applied, nil
}

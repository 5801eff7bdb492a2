package main

import (
	"fmt"

	"github.com/aussiebroadwan/university/internal/accounts/app"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			logger := app.NewLogger(cfg)

			db, err := sqlite.NewStore(cfg.DatabaseFile)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.ApplyMigrations(); err != nil {
				return err
			}
			version, dirty, err := db.MigrationVersion()
			if err != nil {
				return err
			}

			logger.Info("migrations applied", "path", cfg.DatabaseFile, "version", version, "dirty", dirty)
			fmt.Fprintf(cmd.OutOrStdout(), "database %s at version %d\n", cfg.DatabaseFile, version)
			return nil
		},
	}
}

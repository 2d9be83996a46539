package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mydocs/internal/database"
	"mydocs/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema when it is missing",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return migration.EnsureMigrated(ctx, db, appLog, cfg.Database.Host)
}

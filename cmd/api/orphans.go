package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mydocs/internal/database"
	"mydocs/internal/filestore"
	"mydocs/internal/repository/postgres"
	"mydocs/internal/service"
)

var (
	orphansDelete bool
	orphansMinAge time.Duration
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List stored files that no document references",
	Long: `List stored files under the document namespace that no active document references.

Such files are left behind when a record insert fails after the upload was stored,
or when a file could not be reclaimed after its document was deleted or updated.
Files younger than --min-age are skipped, since a running server may not have
committed their row yet.

Examples:
  # Show unreferenced files
  mydocs orphans

  # Remove them
  mydocs orphans --delete

  # Only consider files older than a day
  mydocs orphans --delete --min-age 24h`,
	RunE: runOrphans,
}

func init() {
	orphansCmd.Flags().BoolVar(&orphansDelete, "delete", false, "remove the unreferenced files")
	orphansCmd.Flags().DurationVar(&orphansMinAge, "min-age", time.Hour, "skip files modified more recently than this")
}

func runOrphans(cmd *cobra.Command, args []string) error {
	if orphansMinAge < 0 {
		return errors.New("--min-age must not be negative")
	}
	ctx := cmd.Context()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	files := filestore.New(store, cfg.Storage.PublicBaseURL, appLog, nil)
	sweeper := service.NewOrphanSweeper(files, postgres.NewDocumentPostgres(db), appLog)

	orphans, err := sweeper.Find(ctx, orphansMinAge)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range orphans {
		fmt.Fprintln(out, f)
	}
	fmt.Fprintf(out, "%d unreferenced file(s)\n", len(orphans))

	if !orphansDelete || len(orphans) == 0 {
		return nil
	}
	removed, err := sweeper.Reclaim(ctx, orphans)
	fmt.Fprintf(out, "%d file(s) removed\n", removed)
	return err
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"mydocs/internal/config"
	"mydocs/internal/logger"
)

var (
	cfgFile string

	cfg    *config.AppConfig
	appLog *slog.Logger
)

// rootCmd starts the API when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mydocs",
	Short: "MyDocs - per-user document storage API",
	Long: `MyDocs stores user documents, each classified by a type, and serves them over HTTP.

Configuration comes from environment variables (a .env file is loaded when present)
and, optionally, a TOML file passed with --config. Environment variables win.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(orphansCmd)
}

// initializeApp loads configuration and installs the JSON logger.
func initializeApp(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		c, err := config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.Load()
	}

	appLog = logger.New(os.Stdout, cfg.LogLevel, cfg.Location())
	slog.SetDefault(appLog)
	return nil
}

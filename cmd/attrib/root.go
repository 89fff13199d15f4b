package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/attrib/pkg/attrib/config"
	"github.com/cognicore/attrib/pkg/attrib/store"
	"github.com/cognicore/attrib/pkg/attrib/store/sqlite"
)

var rootCmd = &cobra.Command{
	Use:          "attrib",
	Short:        "Translator and author attribution experiments",
	Long:         "attrib segments parallel translations into samples and measures how well stylometric features predict the work and the translator.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "experiment.yaml", "Path to the experiment YAML file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite results database (overrides db in config and ATTRIB_DB)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadExperiment(cmd *cobra.Command) (*config.Experiment, error) {
	path, _ := cmd.Flags().GetString("config")
	exp, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		exp.DB = db
	}
	return exp, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore returns nil when no database is configured.
func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		return nil, nil
	}
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}

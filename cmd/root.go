package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/hbw/internal/config"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	dataPath   string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "hbw",
		Short: "Browse and export the History of Black Writing corpus metadata",
		Long: `hbw loads the History of Black Writing metadata table, derives the
display fields (authors, keywords, earliest date, authority links) and lets
you filter it by date range and free text, inspect single titles, and
export the filtered view as CSV.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if flags.verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "hbw.yaml", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flags.dataPath, "data", "", "Path to metadata table (.csv, .parquet or .jsonl); overrides config")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newInspectCmd(flags))

	return cmd
}

// loadConfig applies the config file, then HBW_* environment variables,
// then command line flags
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	if f.dataPath != "" {
		cfg.DataPath = f.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadRecords(cfg config.Config) (corpus.RecordSet, error) {
	records, err := corpus.NewLoader(cfg.DataPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	slog.Info("Loaded corpus", "path", cfg.DataPath, "records", len(records))
	return records, nil
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/export"
	"github.com/lehigh-university-libraries/hbw/internal/search"
	"github.com/spf13/cobra"
)

type criteriaFlags struct {
	begin  int
	end    int
	search string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.begin, "begin", 0, "Earliest publication year (default: earliest in corpus)")
	cmd.Flags().IntVar(&f.end, "end", 0, "Latest publication year (default: latest in corpus)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Whitespace-separated terms; a title matches if any field contains any term")
}

// criteria starts from the corpus-wide defaults and overrides whatever was
// set on the command line
func (f *criteriaFlags) criteria(cmd *cobra.Command, records corpus.RecordSet) search.Criteria {
	c := search.DefaultCriteria(records)
	if cmd.Flags().Changed("begin") {
		c.Begin = f.begin
	}
	if cmd.Flags().Changed("end") {
		c.End = f.end
	}
	c.Search = f.search

	var ice *search.InvalidCriteriaError
	if err := c.Validate(); errors.As(err, &ice) {
		slog.Warn("Start date is after end date; only undated titles will match", "begin", ice.Begin, "end", ice.End)
	}
	return c
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var cf criteriaFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a filtered view as CSV",
		Long: `Writes the titles matching the date range and search to a CSV file with
the display and authority columns. The file is named after the filter,
e.g. HBW_1900-1925-harlem-poetry.csv, unless --output is given.`,
		Example: `  # Export everything
  hbw export

  # Export Harlem Renaissance poetry to stdout
  hbw export --begin 1918 --end 1937 --search "harlem poetry" --output -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}

			c := cf.criteria(cmd, records)
			view := search.Filter(records, c)

			formatter := export.NewFormatter(cfg.ExportColumns())
			formatter.Prefix = cfg.ExportPrefix
			dl, err := formatter.Export(records, view, c)
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(dl.Data)
				return err
			}
			if output == "" {
				output = dl.Filename
			}
			if err := os.WriteFile(output, dl.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			slog.Info("Exported filtered view", "path", output, "titles", len(view))
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, - for stdout (default: name derived from the filter)")

	return cmd
}

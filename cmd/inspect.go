package cmd

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/spf13/cobra"
)

func newInspectCmd(flags *globalFlags) *cobra.Command {
	var limit int
	var all bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print derived records (useful for checking a new data file)",
		Long: `Loads the first records of the metadata table and prints the derived
fields: combined authors, keywords, earliest date and authority links.`,
		Example: `  # Inspect first 5 records
  hbw inspect --data ./metadata.csv --limit 5

  # Include every non-empty source column
  hbw inspect --limit 1 --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			loader := corpus.NewLoader(cfg.DataPath)
			var records corpus.RecordSet
			if limit > 0 {
				records, err = loader.LoadSample(limit)
			} else {
				records, err = loader.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d records from %s\n", len(records), cfg.DataPath)
			fmt.Fprintln(out, strings.Repeat("=", 80))

			for i := range records {
				select {
				case <-cmd.Context().Done():
					fmt.Fprintln(out, "\nInspection interrupted.")
					return nil
				default:
				}

				rec := &records[i]
				fmt.Fprintf(out, "RECORD %d/%d\n", i+1, len(records))
				fmt.Fprintln(out, strings.Repeat("-", 80))
				fmt.Fprintf(out, "Title:          %s\n", rec.Title)
				fmt.Fprintf(out, "Author(s):      %s\n", rec.Authors)
				fmt.Fprintf(out, "Date:           %s\n", rec.DateString())
				fmt.Fprintf(out, "BBIPID:         %s\n", rec.BBIPID)
				fmt.Fprintf(out, "All keywords:   %s\n", rec.Keywords)
				fmt.Fprintf(out, "LCCN link:      %s\n", rec.LCCNURL)
				fmt.Fprintf(out, "WorldCat link:  %s\n", rec.WorldCatURL)

				if all {
					for _, f := range rec.Fields() {
						if f.Value != "" {
							fmt.Fprintf(out, "  %s: %s\n", f.Name, f.Value)
						}
					}
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().BoolVar(&all, "all", false, "Also print every non-empty source column")

	return cmd
}

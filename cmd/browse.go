package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lehigh-university-libraries/hbw/internal/browse"
	"github.com/lehigh-university-libraries/hbw/internal/export"
	"github.com/lehigh-university-libraries/hbw/internal/session"
	"github.com/spf13/cobra"
)

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	var cf criteriaFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the corpus in the terminal",
		Long: `Opens an interactive table of the corpus. Tab moves between the date,
search and table fields; enter on a row shows its details, s cycles the
sort column and ctrl+e saves the current view as CSV in the working
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}

			s := session.New(records)
			c := cf.criteria(cmd, records)
			// A reversed range is shown on the browser's status line
			_ = s.SetDateRange(c.Begin, c.End)
			s.SetSearchText(c.Search)

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			formatter := export.NewFormatter(cfg.ExportColumns())
			formatter.Prefix = cfg.ExportPrefix

			m := browse.New(records, s, browse.Options{
				Columns:     cfg.DefaultColumns,
				Authorities: cfg.Authorities,
				Formatter:   formatter,
				ExportDir:   dir,
			})

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("failed to run browser: %w", err)
			}
			return nil
		},
	}

	cf.register(cmd)

	return cmd
}

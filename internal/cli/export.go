package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aranyoray/curiousmails/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		flagOutput string
		flagSort   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the winners table from winner_emails.json",
		Long: `Flattens winner records into outreach table rows and writes them to
stdout or --output. The table carries university, year, name, major,
best email, and award notes per winner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			format, err := export.ParseFormat(flagFormat)
			if err != nil {
				return err
			}

			winners, err := store.LoadWinners()
			if err != nil {
				return err
			}
			rows := export.FromWinners(winners)

			if flagSort != "" {
				order := SortOrder(flagSort)
				if order != SortByYear && order != SortByUni && order != SortByName {
					return fmt.Errorf("invalid sort: %s (must be 'year', 'uni', or 'name')", flagSort)
				}
				sortRows(rows, order)
			}

			out := os.Stdout
			if flagOutput != "" {
				f, err := os.Create(flagOutput)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close() // nolint:errcheck
				out = f
			}

			return export.Write(out, rows, format)
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort rows by: year, uni, or name")

	return cmd
}

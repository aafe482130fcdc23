package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aranyoray/curiousmails/internal/crawl"
	"github.com/aranyoray/curiousmails/internal/filter"
	"github.com/aranyoray/curiousmails/internal/progress"
)

func newEmailsCmd() *cobra.Command {
	var (
		flagForce      bool
		flagMinYear    int
		flagQueries    int
		flagNoLinkedIn bool
		flagYears      string
		flagCategories string
		flagCountries  string
		flagAwards     string
	)

	cmd := &cobra.Command{
		Use:   "emails [limit]",
		Short: "Search the public web for winner contact details",
		Long: `Selects awarded projects from projects.json and runs search engine
queries for each winner's email address and profile page. Results are
folded into winner_emails.json; settled projects are skipped on rerun.
The selection defaults to winners from the configured min_year on and
can be narrowed with the filter flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("min-year") {
				cfg.Search.MinYear = flagMinYear
			}
			if cmd.Flags().Changed("queries-per-person") {
				cfg.Search.QueriesPerPerson = flagQueries
			}
			if flagNoLinkedIn {
				cfg.Search.LinkedIn = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			prog, err := progress.OpenFile(store.EmailProgressPath(), flagForce)
			if err != nil {
				return err
			}

			e := crawl.NewEmails(cfg, searchClient(cfg), store, prog)
			e.Force = flagForce
			if len(args) == 1 {
				if e.Limit, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid limit %q", args[0])
				}
			}

			if flagYears != "" || flagCategories != "" || flagCountries != "" || flagAwards != "" {
				sel, err := filter.FromFlags(flagYears, flagCategories, flagCountries, flagAwards, true)
				if err != nil {
					return err
				}
				if flagYears == "" {
					sel.YearFrom = cfg.Search.MinYear
				}
				e.Selection = sel
			}

			ctx, stop := runContext()
			defer stop()

			summary, err := e.Run(ctx)
			if err != nil {
				return err
			}
			return writeSummary(os.Stdout, summary)
		},
	}

	cmd.Flags().BoolVar(&flagForce, "force", false, "Research projects already marked done")
	cmd.Flags().IntVar(&flagMinYear, "min-year", 2019, "Skip winners from before this year")
	cmd.Flags().IntVar(&flagQueries, "queries-per-person", 3, "Search queries to run per winner")
	cmd.Flags().BoolVar(&flagNoLinkedIn, "no-linkedin", false, "Skip profile page discovery")
	cmd.Flags().StringVar(&flagYears, "years", "", "Year range, e.g. '2019-2023', '2021', '2019-', '-2023'")
	cmd.Flags().StringVar(&flagCategories, "categories", "", "Comma-separated category filters")
	cmd.Flags().StringVar(&flagCountries, "countries", "", "Comma-separated country filters")
	cmd.Flags().StringVar(&flagAwards, "award-keywords", "", "Comma-separated award text filters")

	return cmd
}

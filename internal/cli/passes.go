package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/crawl"
)

func newEnrichCmd() *cobra.Command {
	var flagOffline bool

	cmd := &cobra.Command{
		Use:   "enrich [limit]",
		Short: "Fill in universities, guessed addresses, skills, and majors",
		Long: `Works through winner_emails.json filling in fields the contact search
left empty: the university inferred from scholarship awards, guessed
campus addresses, skills mined from the project abstract, and the
winner's major. Unless --offline is set, winners still missing a
university or major get one profile search each.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			e := &crawl.Enrich{
				Store:   store,
				Profile: contact.Google(cfg.Search.GoogleURL),
				Online:  !flagOffline,
			}
			if !flagOffline {
				e.Client = searchClient(cfg)
			}
			if len(args) == 1 {
				if e.Limit, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid limit %q", args[0])
				}
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

	cmd.Flags().BoolVar(&flagOffline, "offline", false, "Skip profile searches, use only stored data")

	return cmd
}

func newCategorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Assign categories and cross-listings to scraped projects",
		Long: `Assigns every project in projects.json a primary category from its
booth id or listed category, plus keyword cross-listings from its
title and abstract. Runs entirely offline and is safe to rerun.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			c := &crawl.Categorize{Store: store}
			summary, err := c.Run()
			if err != nil {
				return err
			}
			return writeSummary(os.Stdout, summary)
		},
	}
}

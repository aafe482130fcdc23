package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aranyoray/curiousmails/internal/crawl"
	"github.com/aranyoray/curiousmails/internal/progress"
)

func newScrapeCmd() *cobra.Command {
	var (
		flagLimit    int
		flagForce    bool
		flagDelay    time.Duration
		flagNoRobots bool
	)

	cmd := &cobra.Command{
		Use:   "scrape [start_id] [end_id]",
		Short: "Crawl abstract pages into projects.json",
		Long: `Walks the given project id range, fetching and parsing each abstract
page. Ids already settled in progress.json are skipped, so an
interrupted crawl resumes where it stopped. The id range defaults to
the configured start_id and end_id.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup()
			if err != nil {
				return err
			}

			start, end := cfg.Crawl.StartID, cfg.Crawl.EndID
			if len(args) > 0 {
				if start, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid start id %q", args[0])
				}
			}
			if len(args) > 1 {
				if end, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid end id %q", args[1])
				}
			}
			if end < start {
				return fmt.Errorf("end id %d is before start id %d", end, start)
			}

			if cmd.Flags().Changed("delay") {
				cfg.Crawl.Delay = flagDelay
			}
			if flagNoRobots {
				cfg.Source.RespectRobots = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			prog, err := progress.OpenFile(store.ProgressPath(), flagForce)
			if err != nil {
				return err
			}

			client := sourceClient(cfg, cfg.Crawl.Delay, cfg.Source.RespectRobots)
			l := crawl.NewListings(cfg, client, store, prog)
			l.Force = flagForce
			l.Limit = flagLimit

			ctx, stop := runContext()
			defer stop()

			summary, err := l.Run(ctx, start, end)
			if err != nil {
				return err
			}
			return writeSummary(os.Stdout, summary)
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Stop after this many ids (0 = no limit)")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Refetch ids already marked done")
	cmd.Flags().DurationVar(&flagDelay, "delay", 3*time.Second, "Minimum gap between fetches")
	cmd.Flags().BoolVar(&flagNoRobots, "no-robots", false, "Skip robots.txt checks")

	return cmd
}

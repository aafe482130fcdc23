package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aranyoray/curiousmails/internal/config"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/fetch"
	"github.com/aranyoray/curiousmails/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDataDir string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curiousmails",
		Short: "Scrape science fair abstracts and discover winner contact details",
		Long: `A resumable pipeline for building an outreach dataset from public
science fair abstracts. The scrape pass walks project ids into
projects.json, the emails pass searches the public web for winner
contact details into winner_emails.json, and the offline passes
categorize and enrich what was found. Progress files make every pass
safe to interrupt and rerun.`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newEmailsCmd())
	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newCategorizeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

// setup loads configuration and applies the global overrides. Commands
// apply their own flag overrides and then call Validate themselves.
func setup() (*config.Config, *dataset.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	return cfg, dataset.NewStore(cfg.DataDir), nil
}

// runContext returns a context canceled on SIGINT or SIGTERM, so an
// interrupted crawl still flushes its progress and exits cleanly
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// sourceClient builds the paced client for the abstract site
func sourceClient(cfg *config.Config, delay time.Duration, respectRobots bool) *fetch.Client {
	return fetch.New(fetch.Options{
		Timeout:       cfg.Source.Timeout,
		Delay:         delay,
		UserAgent:     cfg.Source.UserAgent,
		RespectRobots: respectRobots,
	})
}

// searchClient builds the paced client for search engine requests
func searchClient(cfg *config.Config) *fetch.Client {
	return fetch.New(fetch.Options{
		Timeout:   cfg.Search.Timeout,
		Delay:     cfg.Search.Delay,
		UserAgent: cfg.Source.UserAgent,
	})
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

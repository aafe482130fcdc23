package crawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aranyoray/curiousmails/internal/config"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/fetch"
	"github.com/aranyoray/curiousmails/internal/listing"
	"github.com/aranyoray/curiousmails/internal/logger"
	"github.com/aranyoray/curiousmails/internal/progress"
)

// Listings walks a range of project ids, scrapes each abstract page,
// and folds the results into the projects file. Settled ids are skipped
// so an interrupted run picks up where it stopped.
type Listings struct {
	Client         *fetch.Client
	Parser         listing.PageParser
	Progress       progress.Store
	Store          *dataset.Store
	BaseURL        string
	BatchSize      int
	MaxRetries     int
	BlockThreshold int
	Force          bool

	// Limit stops the run after this many ids are worked, zero means all
	Limit int
}

// NewListings wires a listing crawl from configuration
func NewListings(cfg *config.Config, client *fetch.Client, store *dataset.Store, prog progress.Store) *Listings {
	return &Listings{
		Client:         client,
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          store,
		BaseURL:        cfg.Source.BaseURL,
		BatchSize:      cfg.Crawl.BatchSize,
		MaxRetries:     cfg.Crawl.MaxRetries,
		BlockThreshold: cfg.Crawl.BlockThreshold,
	}
}

// Run walks ids from start to end inclusive and returns a summary of
// what happened. The dataset and progress files are persisted every
// batch and once more before returning, so even a stopped run leaves
// consistent files behind.
func (l *Listings) Run(ctx context.Context, start, end int) (*Summary, error) {
	summary := &Summary{RunID: newRunID(), Pass: "scrape"}
	began := time.Now()
	defer func() {
		summary.Seconds = time.Since(began).Seconds()
	}()

	logger.Info("starting listing crawl", logger.Fields{
		"run_id": summary.RunID,
		"start":  start,
		"end":    end,
	})

	projects, err := l.Store.LoadProjects()
	if err != nil {
		return nil, err
	}
	var fresh []listing.Project

	persist := func() error {
		save := func() error {
			merged := dataset.MergeProjects(projects, fresh)
			if err := l.Store.SaveProjects(merged); err != nil {
				return err
			}
			projects = merged
			fresh = nil
			return l.Progress.Flush()
		}
		if err := save(); err != nil {
			logger.Warn("persist failed, retrying once", logger.Fields{"error": err.Error()})
			if err := save(); err != nil {
				return fmt.Errorf("persisting crawl state: %w", err)
			}
		}
		return nil
	}

	blocked := 0
	sinceFlush := 0
	worked := 0

loop:
	for id := start; id <= end; id++ {
		select {
		case <-ctx.Done():
			summary.Stopped = StopCanceled
			break loop
		default:
		}

		if !l.Force && l.Progress.Done(id) {
			summary.Skipped++
			continue
		}
		if l.Limit > 0 && worked >= l.Limit {
			break
		}
		worked++

		body, err := fetchWithRetry(ctx, l.Client, listing.AbstractURL(l.BaseURL, id), l.MaxRetries)
		if err != nil {
			if ctx.Err() != nil {
				summary.Stopped = StopCanceled
				break loop
			}
			summary.Failed++
			l.Progress.Mark(id, progress.StatusFailed)
			if fetch.IsBlocked(err) {
				blocked++
				logger.Warn("blocked response", logger.Fields{
					"id":          id,
					"status":      fetch.StatusOf(err),
					"consecutive": blocked,
				})
				if blocked >= l.BlockThreshold {
					summary.Stopped = StopBlocked
					logger.Error("source is refusing requests, stopping early", logger.Fields{
						"id": id,
					}, err)
					break loop
				}
			} else {
				blocked = 0
				logger.Warn("fetch failed", logger.Fields{"id": id, "error": err.Error()})
			}
		} else {
			summary.Fetched++
			blocked = 0
			logger.IncrCounter("listing.pages_fetched")

			project, perr := l.Parser.Parse(body, id)
			switch {
			case perr == nil:
				project.AbstractURL = listing.AbstractURL(l.BaseURL, id)
				fresh = append(fresh, *project)
				l.Progress.Mark(id, progress.StatusDone)
				summary.Parsed++
			case errors.Is(perr, listing.ErrNotFound):
				l.Progress.Mark(id, progress.StatusDone)
				summary.NotFound++
				logger.Debug("project absent", logger.Fields{"id": id})
			default:
				l.Progress.Mark(id, progress.StatusFailed)
				summary.Failed++
				logger.Warn("parse failed", logger.Fields{"id": id, "error": perr.Error()})
			}
		}

		sinceFlush++
		if l.BatchSize > 0 && sinceFlush >= l.BatchSize {
			if err := persist(); err != nil {
				return summary, err
			}
			sinceFlush = 0
			logger.Debug("batch persisted", logger.Fields{"id": id, "parsed": summary.Parsed})
		}
	}

	if err := persist(); err != nil {
		return summary, err
	}

	logger.RecordTiming("listing.run", time.Since(began))
	logger.Info("listing crawl finished", logger.Fields{
		"run_id":    summary.RunID,
		"fetched":   summary.Fetched,
		"parsed":    summary.Parsed,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
		"not_found": summary.NotFound,
		"stopped":   summary.Stopped,
	})
	return summary, nil
}

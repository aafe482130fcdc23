package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/aranyoray/curiousmails/internal/config"
	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/fetch"
	"github.com/aranyoray/curiousmails/internal/filter"
	"github.com/aranyoray/curiousmails/internal/listing"
	"github.com/aranyoray/curiousmails/internal/logger"
	"github.com/aranyoray/curiousmails/internal/progress"
)

// Emails searches the public web for contact details of the selected
// winners and folds what it finds into the winners file. Each project
// id is settled once; reruns only touch ids that failed or are new.
type Emails struct {
	Client         *fetch.Client
	Parser         contact.ResultParser
	Progress       progress.Store
	Store          *dataset.Store
	Primary        contact.Provider
	Profile        contact.Provider
	Selection      *filter.Filter
	Queries        int
	LinkedIn       bool
	BatchSize      int
	BlockThreshold int
	Force          bool

	// Limit stops the run after this many winners, zero means all
	Limit int
}

// NewEmails wires an email search run from configuration. The default
// selection keeps awarded projects from MinYear on.
func NewEmails(cfg *config.Config, client *fetch.Client, store *dataset.Store, prog progress.Store) *Emails {
	sel := filter.NewFilter()
	sel.WinnersOnly = true
	sel.YearFrom = cfg.Search.MinYear

	return &Emails{
		Client:         client,
		Parser:         contact.NewHTMLResultParser(),
		Progress:       prog,
		Store:          store,
		Primary:        contact.DuckDuckGo(cfg.Search.DuckDuckGoURL),
		Profile:        contact.Google(cfg.Search.GoogleURL),
		Selection:      sel,
		Queries:        cfg.Search.QueriesPerPerson,
		LinkedIn:       cfg.Search.LinkedIn,
		BatchSize:      cfg.Crawl.BatchSize,
		BlockThreshold: cfg.Crawl.BlockThreshold,
	}
}

type searchStep struct {
	provider contact.Provider
	query    string
}

// Run works through the selected winners and returns a summary. The
// winners and progress files are persisted every batch and once more
// before returning.
func (e *Emails) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: newRunID(), Pass: "emails"}
	began := time.Now()
	defer func() {
		summary.Seconds = time.Since(began).Seconds()
	}()

	projects, err := e.Store.LoadProjects()
	if err != nil {
		return nil, err
	}
	targets := e.Selection.Apply(projects)

	logger.Info("starting email search", logger.Fields{
		"run_id":    summary.RunID,
		"selection": e.Selection.String(),
		"targets":   len(targets),
	})

	existing, err := e.Store.LoadWinners()
	if err != nil {
		return nil, err
	}
	var fresh []dataset.Winner

	persist := func() error {
		save := func() error {
			merged := dataset.MergeWinners(existing, fresh)
			if err := e.Store.SaveWinners(merged); err != nil {
				return err
			}
			existing = merged
			fresh = nil
			return e.Progress.Flush()
		}
		if err := save(); err != nil {
			logger.Warn("persist failed, retrying once", logger.Fields{"error": err.Error()})
			if err := save(); err != nil {
				return fmt.Errorf("persisting search state: %w", err)
			}
		}
		return nil
	}

	blocked := 0
	sinceFlush := 0
	processed := 0

loop:
	for i := range targets {
		p := &targets[i]

		if e.Limit > 0 && processed >= e.Limit {
			break
		}
		select {
		case <-ctx.Done():
			summary.Stopped = StopCanceled
			break loop
		default:
		}

		if !e.Force && e.Progress.Done(p.ID) {
			summary.Skipped++
			continue
		}
		if p.Finalists == "" {
			e.Progress.Mark(p.ID, progress.StatusDone)
			summary.Skipped++
			logger.Debug("no finalist name on project", logger.Fields{"id": p.ID})
			continue
		}
		processed++

		name := contact.DisplayName(p.Finalists)
		plan := e.plan(name, p)

		var candidates []contact.Candidate
		var ran []string
		queryFailed := false
		for _, step := range plan {
			body, err := e.Client.Get(ctx, step.provider.SearchURL(step.query))
			if err != nil {
				if ctx.Err() != nil {
					summary.Stopped = StopCanceled
					break loop
				}
				queryFailed = true
				if fetch.IsBlocked(err) {
					blocked++
					logger.Warn("search blocked", logger.Fields{
						"provider":    step.provider.Name,
						"status":      fetch.StatusOf(err),
						"consecutive": blocked,
					})
					if blocked >= e.BlockThreshold {
						summary.Stopped = StopBlocked
						logger.Error("search engine is refusing requests, stopping early", logger.Fields{
							"id": p.ID,
						}, err)
						break loop
					}
					continue
				}
				blocked = 0
				logger.Warn("search failed", logger.Fields{
					"provider": step.provider.Name,
					"query":    step.query,
					"error":    err.Error(),
				})
				continue
			}
			blocked = 0
			summary.Fetched++
			logger.IncrCounter("search.pages_fetched")
			candidates = append(candidates, e.Parser.Parse(body, p.ID, name, step.query)...)
			ran = append(ran, step.query)
		}

		w := e.buildWinner(p, name, dataset.DedupeCandidates(candidates), ran)
		fresh = append(fresh, w)
		summary.Winners++
		summary.Emails += len(w.Emails)

		if len(w.Emails) > 0 || !queryFailed {
			e.Progress.Mark(p.ID, progress.StatusDone)
			summary.Parsed++
		} else {
			e.Progress.Mark(p.ID, progress.StatusFailed)
			summary.Failed++
		}

		logger.Info("winner searched", logger.Fields{
			"id":       p.ID,
			"name":     name,
			"emails":   len(w.Emails),
			"profiles": len(w.LinkedIn),
		})

		sinceFlush++
		if e.BatchSize > 0 && sinceFlush >= e.BatchSize {
			if err := persist(); err != nil {
				return summary, err
			}
			sinceFlush = 0
			logger.Debug("batch persisted", logger.Fields{"id": p.ID, "winners": summary.Winners})
		}
	}

	if err := persist(); err != nil {
		return summary, err
	}

	logger.RecordTiming("search.run", time.Since(began))
	logger.Info("email search finished", logger.Fields{
		"run_id":  summary.RunID,
		"winners": summary.Winners,
		"emails":  summary.Emails,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
		"stopped": summary.Stopped,
	})
	return summary, nil
}

// plan lays out the queries for one winner: the capped per-person
// queries against the primary engine, plus one profile lookup when
// LinkedIn discovery is on
func (e *Emails) plan(name string, p *listing.Project) []searchStep {
	queries := contact.BuildQueries(name, p.Title, p.Year)
	if e.Queries > 0 && len(queries) > e.Queries {
		queries = queries[:e.Queries]
	}

	plan := make([]searchStep, 0, len(queries)+1)
	for _, q := range queries {
		plan = append(plan, searchStep{e.Primary, q})
	}
	if e.LinkedIn {
		plan = append(plan, searchStep{e.Profile, contact.LinkedInQuery(name)})
	}
	return plan
}

func (e *Emails) buildWinner(p *listing.Project, name string, candidates []contact.Candidate, ran []string) dataset.Winner {
	cat := p.PrimaryCategory
	if cat == "" {
		cat = p.Category
	}

	w := dataset.Winner{
		ProjectID: p.ID,
		Name:      name,
		Title:     p.Title,
		Year:      p.Year,
		Category:  cat,
		Country:   p.Country,
		Awards:    p.Awards,
		Emails:    []string{},
		Queries:   ran,
	}
	for _, c := range candidates {
		if c.Email != "" {
			w.Emails = append(w.Emails, c.Email)
		}
		if c.LinkedInURL != "" {
			w.LinkedIn = append(w.LinkedIn, c.LinkedInURL)
		}
	}
	return w
}

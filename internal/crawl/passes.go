package crawl

import (
	"context"
	"time"

	"github.com/aranyoray/curiousmails/internal/category"
	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/enrich"
	"github.com/aranyoray/curiousmails/internal/fetch"
	"github.com/aranyoray/curiousmails/internal/listing"
	"github.com/aranyoray/curiousmails/internal/logger"
)

// Categorize assigns a primary category and keyword cross-listings to
// every stored project. The pass is idempotent and needs no network.
type Categorize struct {
	Store *dataset.Store
}

// Run rewrites projects.json with category assignments.
func (c *Categorize) Run() (*Summary, error) {
	summary := &Summary{RunID: newRunID(), Pass: "categorize"}
	began := time.Now()
	defer func() {
		summary.Seconds = time.Since(began).Seconds()
	}()

	projects, err := c.Store.LoadProjects()
	if err != nil {
		return nil, err
	}

	for i := range projects {
		category.Assign(&projects[i])
		summary.Parsed++
	}

	if err := c.Store.SaveProjects(projects); err != nil {
		return summary, err
	}

	logger.Info("categorize finished", logger.Fields{
		"run_id":   summary.RunID,
		"projects": summary.Parsed,
	})
	return summary, nil
}

// Enrich fills in university, guessed addresses, skills and major for
// stored winners. With Online set it also runs one profile search per
// winner that is still missing a university or major.
type Enrich struct {
	Client  *fetch.Client
	Store   *dataset.Store
	Profile contact.Provider
	Online  bool

	// Limit stops the run after this many winners, zero means all
	Limit int
}

// Run rewrites winner_emails.json with the enriched records.
func (e *Enrich) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: newRunID(), Pass: "enrich"}
	began := time.Now()
	defer func() {
		summary.Seconds = time.Since(began).Seconds()
	}()

	winners, err := e.Store.LoadWinners()
	if err != nil {
		return nil, err
	}
	projects, err := e.Store.LoadProjects()
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*listing.Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}

	logger.Info("starting enrichment", logger.Fields{
		"run_id":  summary.RunID,
		"winners": len(winners),
		"online":  e.Online,
	})

loop:
	for i := range winners {
		w := &winners[i]

		if e.Limit > 0 && summary.Parsed >= e.Limit {
			break
		}
		select {
		case <-ctx.Done():
			summary.Stopped = StopCanceled
			break loop
		default:
		}

		enrich.Apply(w, byID[w.ProjectID])

		if e.Online && e.Client != nil && w.Name != "" && (w.Major == "" || w.University == "") {
			query := enrich.ProfileQuery(contact.DisplayName(w.Name))
			body, err := e.Client.Get(ctx, e.Profile.SearchURL(query))
			if err != nil {
				if ctx.Err() != nil {
					summary.Stopped = StopCanceled
					break loop
				}
				summary.Failed++
				logger.Warn("profile search failed", logger.Fields{
					"id":    w.ProjectID,
					"error": err.Error(),
				})
			} else {
				summary.Fetched++
				profile := enrich.ParseProfile(body)
				enrich.ApplyProfile(w, profile)
				if profile.GraduationYear != "" {
					logger.Debug("profile matched", logger.Fields{
						"id":         w.ProjectID,
						"university": profile.University,
						"class_of":   profile.GraduationYear,
					})
				}
			}
		}

		if w.Major == "" {
			w.Major = w.Category
		}
		summary.Parsed++
	}

	if err := e.Store.SaveWinners(winners); err != nil {
		return summary, err
	}

	logger.Info("enrichment finished", logger.Fields{
		"run_id":  summary.RunID,
		"winners": summary.Parsed,
		"fetched": summary.Fetched,
		"failed":  summary.Failed,
	})
	return summary, nil
}

package dataset

import (
	"sort"

	"github.com/aranyoray/curiousmails/internal/listing"
)

// MergeProjects folds fresh into existing, keyed by project id. New ids
// are added, existing ids are updated field by field, and a populated
// field is never replaced by an empty one, so a rescan that hits a thin
// or broken page cannot erase data from an earlier good scrape. The
// result is sorted by id.
func MergeProjects(existing, fresh []listing.Project) []listing.Project {
	byID := make(map[int]listing.Project, len(existing)+len(fresh))
	for _, p := range existing {
		byID[p.ID] = p
	}
	for _, p := range fresh {
		current, ok := byID[p.ID]
		if !ok {
			byID[p.ID] = p
			continue
		}
		byID[p.ID] = mergeProject(current, p)
	}

	merged := make([]listing.Project, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}

// mergeProject takes the fresh scrape and backfills any field it left
// empty from the version already on disk
func mergeProject(current, fresh listing.Project) listing.Project {
	out := fresh
	if out.Title == "" {
		out.Title = current.Title
	}
	if out.Category == "" {
		out.Category = current.Category
	}
	if out.Year == "" {
		out.Year = current.Year
	}
	if out.Booth == "" {
		out.Booth = current.Booth
	}
	if out.Country == "" {
		out.Country = current.Country
	}
	if out.Abstract == "" {
		out.Abstract = current.Abstract
	}
	if out.Finalists == "" {
		out.Finalists = current.Finalists
	}
	if out.AbstractURL == "" {
		out.AbstractURL = current.AbstractURL
	}
	if out.PrimaryCategory == "" {
		out.PrimaryCategory = current.PrimaryCategory
	}
	if len(out.Awards) == 0 {
		out.Awards = current.Awards
	}
	if len(out.Categories) == 0 {
		out.Categories = current.Categories
	}
	return out
}

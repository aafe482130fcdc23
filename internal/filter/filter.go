// Package filter narrows which projects the later passes work on.
//
// The email search pass only pays off for recent winners, so the usual
// run selects projects by year and award presence. Filters can also be
// given on the command line:
//   - Year ranges ("2019-2023", "2021", "2019-")
//   - Categories (substring matching, case-insensitive)
//   - Countries (substring matching, case-insensitive)
//   - Award keywords (substring over the award list)
//   - Winners only (at least one award)
//
// Example usage:
//
//	// Select US grand award winners from 2021 on
//	f := filter.NewFilter()
//	f.YearFrom = 2021
//	f.Countries = []string{"United States"}
//	f.AwardKeywords = []string{"first award"}
//
//	// Apply filter to projects
//	selected := f.Apply(projects)
package filter

import (
	"fmt"
	"strings"

	"github.com/aranyoray/curiousmails/internal/listing"
)

// Filter represents project selection criteria
type Filter struct {
	// Year range, inclusive on both ends. Zero means unbounded.
	// Projects without a parseable year fail any year bound.
	YearFrom int `json:"year_from,omitempty"`
	YearTo   int `json:"year_to,omitempty"`

	// Category filtering (case-insensitive substring match against the
	// scraped category and the assigned ones)
	Categories []string `json:"categories,omitempty"`

	// Country filtering (case-insensitive substring match)
	Countries []string `json:"countries,omitempty"`

	// Award keyword filtering (case-insensitive substring match over
	// all awards joined together)
	AwardKeywords []string `json:"award_keywords,omitempty"`

	// WinnersOnly keeps only projects with at least one award
	WinnersOnly bool `json:"winners_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all projects until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Categories:    []string{},
		Countries:     []string{},
		AwardKeywords: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all projects.
func (f *Filter) IsEmpty() bool {
	return f.YearFrom == 0 &&
		f.YearTo == 0 &&
		len(f.Categories) == 0 &&
		len(f.Countries) == 0 &&
		len(f.AwardKeywords) == 0 &&
		!f.WinnersOnly
}

// Matches checks if a project passes all active filter criteria.
// An empty filter matches all projects.
func (f *Filter) Matches(p *listing.Project) bool {
	if f.IsEmpty() {
		return true
	}

	if f.YearFrom > 0 || f.YearTo > 0 {
		year := p.YearInt()
		if year == 0 {
			return false
		}
		if f.YearFrom > 0 && year < f.YearFrom {
			return false
		}
		if f.YearTo > 0 && year > f.YearTo {
			return false
		}
	}

	if f.WinnersOnly && !p.HasAwards() {
		return false
	}

	if len(f.Categories) > 0 {
		haystack := strings.ToLower(p.Category + " " + p.PrimaryCategory + " " + strings.Join(p.Categories, " "))
		matched := false
		for _, cat := range f.Categories {
			if strings.Contains(haystack, strings.ToLower(cat)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Countries) > 0 {
		countryLower := strings.ToLower(p.Country)
		matched := false
		for _, country := range f.Countries {
			if strings.Contains(countryLower, strings.ToLower(country)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.AwardKeywords) > 0 {
		awardsLower := strings.ToLower(strings.Join(p.Awards, " "))
		matched := false
		for _, kw := range f.AwardKeywords {
			if strings.Contains(awardsLower, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply applies the filter to a list of projects and returns only the
// matching ones. If the filter is empty, returns the original list
// unchanged.
func (f *Filter) Apply(projects []listing.Project) []listing.Project {
	if f.IsEmpty() {
		return projects
	}

	var selected []listing.Project
	for i := range projects {
		if f.Matches(&projects[i]) {
			selected = append(selected, projects[i])
		}
	}

	return selected
}

// String returns a human-readable description of the active criteria.
// Returns "No active filters" if the filter is empty.
// Format: "Years: 2019-2023 | Categories: Robotics | Winners only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	switch {
	case f.YearFrom > 0 && f.YearTo > 0:
		parts = append(parts, fmt.Sprintf("Years: %d-%d", f.YearFrom, f.YearTo))
	case f.YearFrom > 0:
		parts = append(parts, fmt.Sprintf("Years: %d and later", f.YearFrom))
	case f.YearTo > 0:
		parts = append(parts, fmt.Sprintf("Years: up to %d", f.YearTo))
	}

	if len(f.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("Categories: %s", strings.Join(f.Categories, ", ")))
	}

	if len(f.Countries) > 0 {
		parts = append(parts, fmt.Sprintf("Countries: %s", strings.Join(f.Countries, ", ")))
	}

	if len(f.AwardKeywords) > 0 {
		parts = append(parts, fmt.Sprintf("Awards: %s", strings.Join(f.AwardKeywords, ", ")))
	}

	if f.WinnersOnly {
		parts = append(parts, "Winners only")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter so modifications to the
// clone don't affect the original
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		YearFrom:    f.YearFrom,
		YearTo:      f.YearTo,
		WinnersOnly: f.WinnersOnly,
	}

	if len(f.Categories) > 0 {
		clone.Categories = make([]string, len(f.Categories))
		copy(clone.Categories, f.Categories)
	} else {
		clone.Categories = []string{}
	}

	if len(f.Countries) > 0 {
		clone.Countries = make([]string, len(f.Countries))
		copy(clone.Countries, f.Countries)
	} else {
		clone.Countries = []string{}
	}

	if len(f.AwardKeywords) > 0 {
		clone.AwardKeywords = make([]string, len(f.AwardKeywords))
		copy(clone.AwardKeywords, f.AwardKeywords)
	} else {
		clone.AwardKeywords = []string{}
	}

	return clone
}

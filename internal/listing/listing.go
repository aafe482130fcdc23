// Package listing provides the project record type and the parser that
// extracts records from competition abstract pages.
package listing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotFound marks a page the source served without a project behind it.
// Absence is stable across runs, so callers record it as settled rather
// than failed.
var ErrNotFound = errors.New("project not found")

// ParseError reports a page that could not be turned into a valid record
type ParseError struct {
	ID    int
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("project %d: missing required field %q", e.ID, e.Field)
}

// Project represents one scraped competition project
type Project struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Category        string   `json:"category,omitempty"`
	Year            string   `json:"year,omitempty"`
	Booth           string   `json:"booth,omitempty"`
	Country         string   `json:"country,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
	Awards          []string `json:"awards"`
	Finalists       string   `json:"finalists,omitempty"`
	AbstractURL     string   `json:"abstract_url,omitempty"`
	PrimaryCategory string   `json:"primary_category,omitempty"`
	Categories      []string `json:"categories,omitempty"`
}

// HasAwards reports whether the project won anything
func (p *Project) HasAwards() bool {
	return len(p.Awards) > 0
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// YearInt returns the project year as an integer, or 0 when the year text
// carries no recognizable four-digit year.
func (p *Project) YearInt() int {
	match := yearPattern.FindString(p.Year)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}

// AbstractURL returns the listing page URL for a project id
func AbstractURL(baseURL string, id int) string {
	return fmt.Sprintf("%s/Home/FullAbstract?projectId=%d", strings.TrimSuffix(baseURL, "/"), id)
}

// Package export flattens winner records into the rows of the outreach
// table and renders them as text, TSV, or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/dataset"
)

// Format specifies the output format
type Format string

const (
	FormatText Format = "text"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format flag value
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format: %s (use text, tsv, or json)", s)
}

// Row is one line of the winners table
type Row struct {
	University   string   `json:"uni"`
	Year         string   `json:"year"`
	First        string   `json:"first"`
	Last         string   `json:"last"`
	Major        string   `json:"major"`
	Email        string   `json:"email"`
	Notes        string   `json:"notes"`
	ProjectTitle string   `json:"project_title"`
	LinkedIn     []string `json:"linkedin"`
}

// institutionPatterns pick a school name out of award text, most
// specific first
var institutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\w\s]+University(?: of [\w\s]+)?)`),
	regexp.MustCompile(`(?i)([\w\s]+Institute(?: of [\w\s]+)?)`),
	regexp.MustCompile(`(?i)([\w\s]+College)`),
	regexp.MustCompile(`(?i)(MIT|Stanford|Harvard|Yale|Princeton|Cornell|Columbia|Penn State|UC Berkeley|UCLA|USC|Caltech|Carnegie Mellon)`),
}

var leadingArticle = regexp.MustCompile(`^(The |A )`)

// universityFromAwards scans award text for an institution name. Used
// only when enrichment left no university on the record.
func universityFromAwards(awards []string) string {
	for _, award := range awards {
		for _, pattern := range institutionPatterns {
			if m := pattern.FindStringSubmatch(award); m != nil {
				uni := strings.TrimSpace(m[1])
				return leadingArticle.ReplaceAllString(uni, "")
			}
		}
	}
	return ""
}

// FromWinner flattens one winner into a table row
func FromWinner(w *dataset.Winner) Row {
	first, last := contact.SplitName(w.Name)

	uni := w.University
	if uni == "" {
		uni = universityFromAwards(w.Awards)
	}

	major := w.Major
	if major == "" {
		major = w.Category
	}

	email := ""
	if len(w.Emails) > 0 {
		email = w.Emails[0]
	}

	return Row{
		University:   uni,
		Year:         w.Year,
		First:        first,
		Last:         last,
		Major:        major,
		Email:        email,
		Notes:        strings.Join(w.Awards, "; "),
		ProjectTitle: w.Title,
		LinkedIn:     w.LinkedIn,
	}
}

// FromWinners flattens winners into table rows, preserving order
func FromWinners(winners []dataset.Winner) []Row {
	rows := make([]Row, 0, len(winners))
	for i := range winners {
		rows = append(rows, FromWinner(&winners[i]))
	}
	return rows
}

// Write renders rows in the specified format
func Write(w io.Writer, rows []Row, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatTSV:
		return writeTSV(w, rows)
	case FormatText:
		return writeText(w, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs rows as indented JSON
func writeJSON(w io.Writer, rows []Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

const tableHeader = "Uni\tYear\tFirst\tLast\tMajor\tEmail\tNotes"

// writeTSV outputs a machine-readable header plus one tabbed line per row
func writeTSV(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w, tableHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.University, r.Year, r.First, r.Last, r.Major, r.Email, r.Notes); err != nil {
			return err
		}
	}
	return nil
}

// writeText outputs the human-readable table with a trailing tally
func writeText(w io.Writer, rows []Row) error {
	rule := strings.Repeat("-", 120)

	fmt.Fprintln(w, tableHeader) // nolint:errcheck
	fmt.Fprintln(w, rule)        // nolint:errcheck

	withEmails := 0
	for _, r := range rows {
		notes := r.Notes
		if len(notes) > 100 {
			notes = notes[:100] + "..."
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.University, r.Year, r.First, r.Last, r.Major, r.Email, notes); err != nil {
			return err
		}
		if r.Email != "" {
			withEmails++
		}
	}

	fmt.Fprintln(w, rule)                              // nolint:errcheck
	fmt.Fprintf(w, "\nTotal winners: %d\n", len(rows)) // nolint:errcheck
	_, err := fmt.Fprintf(w, "With emails: %d\n", withEmails)
	return err
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aranyoray/curiousmails/internal/crawl"
	"github.com/aranyoray/curiousmails/internal/logger"
)

// OutputFormat specifies the run summary output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// writeSummary writes the run summary in the globally selected format
func writeSummary(w io.Writer, summary *crawl.Summary) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	switch format {
	case FormatJSON:
		return writeSummaryJSON(w, summary)
	case FormatText:
		return writeSummaryText(w, summary)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
}

// writeSummaryJSON outputs the summary as JSON
func writeSummaryJSON(w io.Writer, summary *crawl.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeSummaryText outputs the summary as human-readable text
func writeSummaryText(w io.Writer, s *crawl.Summary) error {
	fmt.Fprintf(w, "Run %s (%s) finished in %.1fs\n", s.RunID, s.Pass, s.Seconds) // nolint:errcheck

	switch s.Stopped {
	case crawl.StopBlocked:
		fmt.Fprintln(w, "Stopped early: the source is refusing requests. Progress is saved; retry later.") // nolint:errcheck
	case crawl.StopCanceled:
		fmt.Fprintln(w, "Interrupted. Progress is saved; rerun to resume.") // nolint:errcheck
	}

	fmt.Fprintf(w, "  Fetched: %d\n", s.Fetched) // nolint:errcheck
	fmt.Fprintf(w, "  Parsed:  %d\n", s.Parsed)  // nolint:errcheck
	fmt.Fprintf(w, "  Failed:  %d\n", s.Failed)  // nolint:errcheck
	fmt.Fprintf(w, "  Skipped: %d\n", s.Skipped) // nolint:errcheck
	if s.NotFound > 0 {
		fmt.Fprintf(w, "  Absent:  %d\n", s.NotFound) // nolint:errcheck
	}
	if s.Winners > 0 {
		fmt.Fprintf(w, "  Winners: %d\n", s.Winners) // nolint:errcheck
	}
	if s.Emails > 0 {
		fmt.Fprintf(w, "  Emails:  %d\n", s.Emails) // nolint:errcheck
	}

	if flagVerbose {
		snapshot, err := json.Marshal(logger.GetMetricsSnapshot())
		if err == nil {
			fmt.Fprintf(w, "  Metrics: %s\n", snapshot) // nolint:errcheck
		}
	}

	return nil
}

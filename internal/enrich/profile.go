package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aranyoray/curiousmails/internal/dataset"
)

// Profile holds study details mined from a search result page
type Profile struct {
	University     string
	Major          string
	GraduationYear string
}

var majorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)studying ([\w\s]+) at`),
	regexp.MustCompile(`(?i)(Computer Science|Engineering|Biology|Chemistry|Physics|Mathematics|Biomedical Engineering|Mechanical Engineering|Electrical Engineering|Chemical Engineering) student`),
	regexp.MustCompile(`(?i)majoring in ([\w\s&]+)`),
	regexp.MustCompile(`(?i)(\w+ Engineering) major`),
}

var uniPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)at (MIT|Stanford|Harvard|Yale|Princeton|Caltech|Cornell|Columbia|Duke)`),
	regexp.MustCompile(`(?i)at ([\w\s]+ University)`),
	regexp.MustCompile(`(?i)University of ([\w\s]+)`),
}

// Class years surface in snippet markup as quoted strings like '2026
var gradYearPattern = regexp.MustCompile(`'(202[5-9])`)

// ProfileQuery builds the search query for a winner's study details
func ProfileQuery(name string) string {
	return fmt.Sprintf(`"%s" linkedin student`, name)
}

// ParseProfile mines a search result page the way a person skims result
// snippets: degree phrases, university mentions, and class years. Empty
// fields mean the page gave nothing away.
func ParseProfile(body []byte) Profile {
	text := string(body)

	var p Profile
	if m := gradYearPattern.FindStringSubmatch(text); m != nil {
		p.GraduationYear = m[1]
	}
	for _, re := range majorPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			p.Major = strings.TrimSpace(m[1])
			break
		}
	}
	for _, re := range uniPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			p.University = strings.TrimSpace(strings.ReplaceAll(m[0], "at ", ""))
			break
		}
	}
	return p
}

// ApplyProfile folds mined study details into a winner record without
// overwriting anything already known
func ApplyProfile(w *dataset.Winner, p Profile) {
	if w.University == "" && p.University != "" {
		w.University = p.University
	}
	if w.Major == "" && p.Major != "" {
		w.Major = p.Major
	}
}

package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aranyoray/curiousmails/internal/contact"
)

// Winner is one finalist together with whatever contact details the
// search pass found, plus the enrichment fields filled in afterwards.
type Winner struct {
	ProjectID int      `json:"project_id"`
	Name      string   `json:"name"`
	Title     string   `json:"title,omitempty"`
	Year      string   `json:"year,omitempty"`
	Category  string   `json:"category,omitempty"`
	Country   string   `json:"country,omitempty"`
	Awards    []string `json:"awards,omitempty"`
	Emails    []string `json:"emails"`
	LinkedIn  []string `json:"linkedin,omitempty"`
	Queries   []string `json:"queries,omitempty"`

	University    string   `json:"university,omitempty"`
	Major         string   `json:"major,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	GuessedEmails []string `json:"guessed_emails,omitempty"`
}

// winnerKey identifies one finalist across runs
func winnerKey(projectID int, name string) string {
	return strconv.Itoa(projectID) + "|" + strings.ToLower(strings.TrimSpace(name))
}

// DedupeCandidates drops candidates whose Key has already been seen,
// keeping the first occurrence
func DedupeCandidates(candidates []contact.Candidate) []contact.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]contact.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// MergeWinners folds fresh into existing, keyed by project id and name.
// Email, profile, query and skill lists are unioned so a rerun can only
// grow them, and scalar fields are backfilled the same way projects are.
// The result is sorted by project id, then name.
func MergeWinners(existing, fresh []Winner) []Winner {
	byKey := make(map[string]Winner, len(existing)+len(fresh))
	for _, w := range existing {
		byKey[winnerKey(w.ProjectID, w.Name)] = w
	}
	for _, w := range fresh {
		key := winnerKey(w.ProjectID, w.Name)
		current, ok := byKey[key]
		if !ok {
			if w.Emails == nil {
				w.Emails = []string{}
			}
			byKey[key] = w
			continue
		}
		byKey[key] = mergeWinner(current, w)
	}

	merged := make([]Winner, 0, len(byKey))
	for _, w := range byKey {
		merged = append(merged, w)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].ProjectID != merged[j].ProjectID {
			return merged[i].ProjectID < merged[j].ProjectID
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}

func mergeWinner(current, fresh Winner) Winner {
	out := fresh
	if out.Title == "" {
		out.Title = current.Title
	}
	if out.Year == "" {
		out.Year = current.Year
	}
	if out.Category == "" {
		out.Category = current.Category
	}
	if out.Country == "" {
		out.Country = current.Country
	}
	if out.University == "" {
		out.University = current.University
	}
	if out.Major == "" {
		out.Major = current.Major
	}
	if len(out.Awards) == 0 {
		out.Awards = current.Awards
	}
	out.Emails = unionStrings(current.Emails, fresh.Emails)
	out.LinkedIn = unionStrings(current.LinkedIn, fresh.LinkedIn)
	out.Queries = unionStrings(current.Queries, fresh.Queries)
	out.Skills = unionStrings(current.Skills, fresh.Skills)
	out.GuessedEmails = unionStrings(current.GuessedEmails, fresh.GuessedEmails)
	return out
}

// unionStrings appends values from add that base does not already hold,
// comparing case-insensitively and keeping the first casing seen
func unionStrings(base, add []string) []string {
	seen := make(map[string]bool, len(base)+len(add))
	out := make([]string, 0, len(base)+len(add))
	for _, v := range base {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	for _, v := range add {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// Package enrich fills winner records with details derived offline or
// from one extra search: the likely university, guessed campus
// addresses, project skills, and the field of study.
package enrich

import (
	"regexp"
	"strings"

	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/listing"
)

// universityFormats lists known campus address patterns. Order matters:
// the first university whose name appears in a scholarship award wins.
var universityFormats = []struct {
	Name    string
	Formats []string
}{
	{"Arizona State University", []string{"{first}.{last}@asu.edu", "{first}{last}@asu.edu"}},
	{"University of Arizona", []string{"{first}{last}@arizona.edu", "{first}.{last}@email.arizona.edu", "{first}.{last}@arizona.edu"}},
	{"Drexel University", []string{"{first}.{last}@drexel.edu", "{first}{last}@drexel.edu"}},
	{"MIT", []string{"{first}{last}@mit.edu", "{first}@mit.edu"}},
	{"Stanford", []string{"{first}{last}@stanford.edu", "{first}@stanford.edu"}},
	{"Harvard", []string{"{first}{last}@college.harvard.edu", "{first}_{last}@college.harvard.edu"}},
	{"Yale", []string{"{first}.{last}@yale.edu", "{first}{last}@yale.edu"}},
	{"Princeton", []string{"{first}{last}@princeton.edu", "{first}@princeton.edu"}},
	{"Caltech", []string{"{first}{last}@caltech.edu", "{first}@caltech.edu"}},
	{"UC Berkeley", []string{"{first}{last}@berkeley.edu", "{first}_{last}@berkeley.edu", "{first}.{last}@berkeley.edu"}},
	{"UCLA", []string{"{first}{last}@ucla.edu", "{first}@ucla.edu"}},
	{"USC", []string{"{first}{last}@usc.edu", "{first}@usc.edu"}},
	{"Cornell", []string{"{first}{last}@cornell.edu", "{first}@cornell.edu"}},
	{"Carnegie Mellon", []string{"{first}{last}@cmu.edu", "{first}@andrew.cmu.edu"}},
	{"University of Michigan", []string{"{first}{last}@umich.edu", "{first}@umich.edu"}},
	{"Georgia Tech", []string{"{first}{last}@gatech.edu", "{first}@gatech.edu"}},
	{"Northwestern", []string{"{first}{last}@northwestern.edu", "{first}.{last}@northwestern.edu"}},
	{"Duke", []string{"{first}{last}@duke.edu", "{first}.{last}@duke.edu"}},
	{"Columbia", []string{"{first}{last}@columbia.edu", "{first}@columbia.edu"}},
	{"Penn State", []string{"{first}{last}@psu.edu", "{first}@psu.edu"}},
	{"University of Texas", []string{"{first}{last}@utexas.edu", "{first}.{last}@utexas.edu"}},
	{"University of Washington", []string{"{first}{last}@uw.edu", "{first}@uw.edu"}},
}

var universityPattern = regexp.MustCompile(`(?i)([A-Z][a-z]+ )*University( of [A-Z][a-z]+)?`)

// UniversityFromAwards guesses the university a winner attends from
// scholarship and tuition awards. Known schools are matched by name;
// otherwise a "... University" phrase is lifted from the award text.
func UniversityFromAwards(awards []string) string {
	for _, award := range awards {
		lower := strings.ToLower(award)
		if !strings.Contains(lower, "scholarship") && !strings.Contains(lower, "tuition") {
			continue
		}

		for _, uni := range universityFormats {
			if strings.Contains(lower, strings.ToLower(uni.Name)) {
				return uni.Name
			}
		}

		if strings.Contains(lower, "university") {
			if match := universityPattern.FindString(award); match != "" {
				return match
			}
		}
	}
	return ""
}

// EmailGuesses expands the address formats of a known university with
// the winner's name. Unknown universities yield nothing.
func EmailGuesses(first, last, university string) []string {
	var formats []string
	for _, uni := range universityFormats {
		if uni.Name == university {
			formats = uni.Formats
			break
		}
	}
	if len(formats) == 0 {
		return nil
	}

	first = cleanNamePart(first)
	last = cleanNamePart(last)
	if first == "" || last == "" {
		return nil
	}

	guesses := make([]string, 0, len(formats))
	for _, format := range formats {
		r := strings.NewReplacer("{first}", first, "{last}", last)
		guesses = append(guesses, r.Replace(format))
	}
	return guesses
}

func cleanNamePart(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// Apply fills the offline enrichment fields of w from its project:
// category and country backfill, skills, the university inferred from
// awards, and guessed campus addresses. Populated fields are left
// alone, so rerunning enrichment never loses earlier findings.
func Apply(w *dataset.Winner, p *listing.Project) {
	var title, abstract, cat, country string
	var awards []string
	if p != nil {
		title, abstract, cat, country = p.Title, p.Abstract, p.Category, p.Country
		awards = p.Awards
	}
	if w.Title != "" {
		title = w.Title
	}
	if len(w.Awards) > 0 {
		awards = w.Awards
	}

	if w.Category == "" {
		w.Category = cat
	}
	if w.Country == "" {
		w.Country = country
	}
	if len(w.Skills) == 0 {
		w.Skills = SkillsFromProject(title, abstract, w.Category)
	}
	if w.University == "" {
		w.University = UniversityFromAwards(awards)
	}
	if len(w.GuessedEmails) == 0 && w.University != "" {
		first, last := contact.SplitName(w.Name)
		w.GuessedEmails = EmailGuesses(first, last, w.University)
	}
}

package enrich

import (
	"sort"
	"strings"
)

const maxSkills = 5

// skillKeywords maps a skill label to the phrases that imply it.
// Matching is substring containment over the lowercased title and
// abstract, so short tokens that collide with ordinary words (ml, ai)
// are left out.
var skillKeywords = map[string][]string{
	"Machine Learning":      {"machine learning", "neural network", "deep learning"},
	"Data Analysis":         {"data analysis", "statistics", "data science", "analytics"},
	"Programming":           {"programming", "coding", "python", "java", "c++"},
	"AI":                    {"artificial intelligence", "computer vision", "nlp"},
	"Robotics":              {"robotics", "robot", "autonomous"},
	"Biochemistry":          {"biochemistry", "molecular", "protein", "enzyme"},
	"Chemistry":             {"chemistry", "chemical", "synthesis", "compound"},
	"Biology":               {"biology", "biological", "cell", "dna", "genetic"},
	"Physics":               {"physics", "quantum", "optics", "mechanics"},
	"Engineering":           {"engineering", "design", "prototype", "system"},
	"Environmental Science": {"environmental", "climate", "sustainability", "ecosystem"},
	"Biomedical":            {"biomedical", "medical", "health", "disease"},
	"Research":              {"research", "experiment", "study", "investigation"},
	"Algorithm Design":      {"algorithm", "optimization", "computational"},
	"Web Development":       {"web", "app", "software development"},
}

// SkillsFromProject extracts up to five skills from a project's title
// and abstract, with the category itself always counted as one
func SkillsFromProject(title, abstract, category string) []string {
	text := strings.ToLower(title + " " + abstract)

	seen := make(map[string]bool)
	var skills []string
	add := func(skill string) {
		if skill == "" || seen[skill] {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	for skill, keywords := range skillKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				add(skill)
				break
			}
		}
	}
	add(category)

	sort.Strings(skills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}

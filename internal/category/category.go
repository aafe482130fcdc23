// Package category assigns each project a primary category from its
// booth id and cross-lists it into further categories by keyword matching
// over the title and abstract.
package category

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aranyoray/curiousmails/internal/listing"
)

// BoothPrefix extracts the leading letters of a booth id, so
// "EBED001T" yields "EBED"
func BoothPrefix(booth string) string {
	for i, r := range booth {
		if !unicode.IsLetter(r) {
			return booth[:i]
		}
	}
	return booth
}

// Primary returns the category for a project. The booth id prefix wins,
// then known aliases of the scraped category name, then the scraped name
// itself, then "Other".
func Primary(p *listing.Project) string {
	if prefix := BoothPrefix(p.Booth); prefix != "" {
		if cat, ok := boothToCategory[prefix]; ok {
			return cat
		}
	}
	if cat, ok := categoryAliases[p.Category]; ok {
		return cat
	}
	if p.Category != "" {
		return p.Category
	}
	return "Other"
}

// CrossListings returns the additional categories whose keywords show up
// in the title and abstract. Two matches qualify a category outright; a
// single match qualifies only when it is one of that category's
// distinctive keywords.
func CrossListings(p *listing.Project, primary string) []string {
	text := strings.ToLower(p.Title + " " + p.Abstract)

	var cross []string
	for cat, keywords := range categoryKeywords {
		if cat == primary {
			continue
		}

		matches := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matches++
			}
		}

		if matches >= 2 {
			cross = append(cross, cat)
			continue
		}
		if matches == 1 {
			for _, kw := range strongKeywords[cat] {
				if strings.Contains(text, kw) {
					cross = append(cross, cat)
					break
				}
			}
		}
	}

	sort.Strings(cross)
	return cross
}

// Assign fills in PrimaryCategory and Categories, primary first followed
// by the cross-listings in alphabetical order
func Assign(p *listing.Project) {
	primary := Primary(p)
	p.PrimaryCategory = primary
	p.Categories = append([]string{primary}, CrossListings(p, primary)...)
}

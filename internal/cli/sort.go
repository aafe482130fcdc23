package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aranyoray/curiousmails/internal/export"
)

// SortOrder represents the available sorting options for the winners table
type SortOrder string

const (
	SortByYear SortOrder = "year"
	SortByUni  SortOrder = "uni"
	SortByName SortOrder = "name"
)

// sortRows sorts table rows based on the specified sort order
func sortRows(rows []export.Row, sortOrder SortOrder) {
	switch sortOrder {
	case SortByYear:
		sort.SliceStable(rows, func(i, j int) bool {
			return compareByYear(&rows[i], &rows[j])
		})
	case SortByUni:
		sort.SliceStable(rows, func(i, j int) bool {
			ui := strings.ToLower(rows[i].University)
			uj := strings.ToLower(rows[j].University)
			if ui != uj {
				// Rows without a university sort last
				if ui == "" {
					return false
				}
				if uj == "" {
					return true
				}
				return ui < uj
			}
			return compareByYear(&rows[i], &rows[j])
		})
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			li := strings.ToLower(rows[i].Last)
			lj := strings.ToLower(rows[j].Last)
			if li != lj {
				return li < lj
			}
			return strings.ToLower(rows[i].First) < strings.ToLower(rows[j].First)
		})
	}
}

// compareByYear compares two rows by their fair year, most recent first.
// Returns true if row i should come before row j.
func compareByYear(i, j *export.Row) bool {
	yi, erri := strconv.Atoi(i.Year)
	yj, errj := strconv.Atoi(j.Year)

	// If both years are valid, compare them
	if erri == nil && errj == nil {
		if yi != yj {
			return yi > yj
		}
		return strings.ToLower(i.Last) < strings.ToLower(j.Last)
	}

	// If only one year is valid, put the valid one first
	if erri == nil {
		return true
	}
	if errj == nil {
		return false
	}

	// If neither has a valid year, sort by name
	return strings.ToLower(i.Last) < strings.ToLower(j.Last)
}

package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseYearRange parses a year range expression into from and to years.
//
// Supported formats:
//   - "2019-2023" - Closed range, inclusive on both ends
//   - "2021"      - Single year
//   - "2019-"     - Open end (that year and later)
//   - "-2023"     - Open start (up to that year)
//
// A zero value means the bound is not set.
func ParseYearRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("year range cannot be empty")
	}

	// Format 1: "2019-2023"
	re1 := regexp.MustCompile(`^(\d{4})\s*-\s*(\d{4})$`)
	if matches := re1.FindStringSubmatch(input); matches != nil {
		from, err := parseYear(matches[1])
		if err != nil {
			return 0, 0, err
		}
		to, err := parseYear(matches[2])
		if err != nil {
			return 0, 0, err
		}
		if from > to {
			return 0, 0, fmt.Errorf("start year must not be after end year")
		}
		return from, to, nil
	}

	// Format 2: "2021"
	re2 := regexp.MustCompile(`^(\d{4})$`)
	if matches := re2.FindStringSubmatch(input); matches != nil {
		year, err := parseYear(matches[1])
		if err != nil {
			return 0, 0, err
		}
		return year, year, nil
	}

	// Format 3: "2019-"
	re3 := regexp.MustCompile(`^(\d{4})\s*-$`)
	if matches := re3.FindStringSubmatch(input); matches != nil {
		from, err := parseYear(matches[1])
		if err != nil {
			return 0, 0, err
		}
		return from, 0, nil
	}

	// Format 4: "-2023"
	re4 := regexp.MustCompile(`^-\s*(\d{4})$`)
	if matches := re4.FindStringSubmatch(input); matches != nil {
		to, err := parseYear(matches[1])
		if err != nil {
			return 0, 0, err
		}
		return 0, to, nil
	}

	return 0, 0, fmt.Errorf("invalid year range format. Use '2019-2023', '2021', '2019-', or '-2023'")
}

// parseYear validates that a matched year is plausible for fair data
func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %s", s)
	}
	if year < 1900 || year > 2099 {
		return 0, fmt.Errorf("year out of range: %d", year)
	}
	return year, nil
}

// ParseList splits a comma-separated flag value into trimmed non-empty
// items
func ParseList(input string) []string {
	var items []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// FromFlags assembles a filter from command line values. Empty strings
// leave the matching criterion inactive.
func FromFlags(years, categories, countries, awards string, winnersOnly bool) (*Filter, error) {
	f := NewFilter()

	if years != "" {
		from, to, err := ParseYearRange(years)
		if err != nil {
			return nil, fmt.Errorf("parsing years: %w", err)
		}
		f.YearFrom = from
		f.YearTo = to
	}

	if categories != "" {
		f.Categories = ParseList(categories)
	}
	if countries != "" {
		f.Countries = ParseList(countries)
	}
	if awards != "" {
		f.AwardKeywords = ParseList(awards)
	}
	f.WinnersOnly = winnersOnly

	return f, nil
}

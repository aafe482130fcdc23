package contact

import (
	"fmt"
	"net/url"
)

// Provider identifies one search engine and how to build its result-page URLs
type Provider struct {
	Name      string
	SearchURL func(query string) string
}

// DuckDuckGo returns the HTML-endpoint provider used for email queries
func DuckDuckGo(baseURL string) Provider {
	return Provider{
		Name: "duckduckgo",
		SearchURL: func(query string) string {
			return baseURL + "?q=" + url.QueryEscape(query)
		},
	}
}

// Google returns the provider used for profile discovery
func Google(baseURL string) Provider {
	return Provider{
		Name: "google",
		SearchURL: func(query string) string {
			return baseURL + "?q=" + url.QueryEscape(query) + "&num=10"
		},
	}
}

// BuildQueries returns the search plan for one winner, most promising
// first. Callers cap the plan at their configured per-person limit.
func BuildQueries(name, title, year string) []string {
	queries := []string{
		fmt.Sprintf(`"%s" email`, name),
		fmt.Sprintf(`"%s" contact`, name),
		fmt.Sprintf(`"%s" ISEF email`, name),
	}
	if title != "" {
		queries = append(queries, fmt.Sprintf(`"%s" "%s" email`, name, title))
	}
	if year != "" {
		queries = append(queries, fmt.Sprintf(`"%s" ISEF %s email`, name, year))
	}
	return queries
}

// LinkedInQuery returns the query used to locate profile pages for a person
func LinkedInQuery(name string) string {
	return fmt.Sprintf("%s site:linkedin.com", name)
}

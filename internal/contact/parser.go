package contact

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxProfileURLs bounds how many profile links one result page contributes
const maxProfileURLs = 3

// ResultParser extracts contact candidates from a search result page.
// Implementations are swappable so the crawl driver never depends on one
// engine's markup.
type ResultParser interface {
	Parse(body []byte, ownerID int, name, query string) []Candidate
}

// HTMLResultParser handles the HTML result pages of the configured search
// providers.
type HTMLResultParser struct{}

// NewHTMLResultParser creates a parser for search result pages
func NewHTMLResultParser() *HTMLResultParser {
	return &HTMLResultParser{}
}

// profileCleanup lifts a canonical profile URL out of engine redirect links
var profileCleanup = regexp.MustCompile(`https://[a-z]+\.linkedin\.com/in/[^&?#]+`)

// Parse scans a result page for addresses and profile links. Addresses are
// collected from both the rendered text and the raw markup (mailto links,
// data attributes), validated, and deduplicated; profile links are cleaned
// of engine redirect wrappers and capped at three per page.
func (p *HTMLResultParser) Parse(body []byte, ownerID int, name, query string) []Candidate {
	candidates := []Candidate{}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		// Too broken to parse as HTML; a raw scan still finds addresses
		for _, email := range FilterValid(ExtractEmails(string(body))) {
			candidates = append(candidates, Candidate{
				OwnerID:     ownerID,
				Name:        name,
				Email:       email,
				SourceQuery: query,
			})
		}
		return candidates
	}

	emails := ExtractEmails(doc.Text())
	emails = append(emails, ExtractEmails(string(body))...)

	seen := make(map[string]bool)
	for _, email := range emails {
		if !Valid(email) {
			continue
		}
		key := strings.ToLower(email)
		if seen[key] {
			continue
		}
		seen[key] = true

		candidates = append(candidates, Candidate{
			OwnerID:     ownerID,
			Name:        name,
			Email:       email,
			SourceQuery: query,
		})
	}

	for _, profileURL := range profileURLs(doc) {
		candidates = append(candidates, Candidate{
			OwnerID:     ownerID,
			Name:        name,
			LinkedInURL: profileURL,
			SourceQuery: query,
		})
	}

	return candidates
}

// profileURLs collects distinct profile links from anchors, cleaned and in
// document order.
func profileURLs(doc *goquery.Document) []string {
	urls := []string{}
	seen := make(map[string]bool)

	doc.Find("a").Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "linkedin.com/in/") {
			return
		}

		if match := profileCleanup.FindString(href); match != "" {
			href = match
		}

		if seen[href] || len(urls) >= maxProfileURLs {
			return
		}
		seen[href] = true
		urls = append(urls, href)
	})

	return urls
}

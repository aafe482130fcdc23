package listing

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageParser turns a fetched listing page into a Project. Implementations
// are swappable so the crawl driver never depends on one source's markup.
type PageParser interface {
	Parse(body []byte, id int) (*Project, error)
}

// AbstractPageParser parses the abstract site's project pages
type AbstractPageParser struct{}

// NewAbstractPageParser creates a parser for abstract pages
func NewAbstractPageParser() *AbstractPageParser {
	return &AbstractPageParser{}
}

var finalistPattern = regexp.MustCompile(`(?i)Finalist Names?:\s*(.+)`)

// Parse extracts a Project from an abstract page. Pages the source serves
// without a project behind them return ErrNotFound; structurally present
// pages missing the title return a *ParseError.
func (p *AbstractPageParser) Parse(body []byte, id int) (*Project, error) {
	if id <= 0 {
		return nil, &ParseError{ID: id, Field: "id"}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML for project %d: %w", id, err)
	}

	content := doc.Find("div.container").First()
	if content.Length() == 0 {
		return nil, ErrNotFound
	}

	fullText := content.Text()
	if strings.Contains(fullText, "Project not found") || strings.Contains(fullText, "An error occurred") {
		return nil, ErrNotFound
	}

	project := &Project{
		ID:     id,
		Awards: []string{},
	}

	project.Title = extractTitle(content)
	if project.Title == "" {
		return nil, &ParseError{ID: id, Field: "title"}
	}

	// Labeled metadata fields: value is the parent's text after the colon
	content.Find("strong").Each(func(i int, label *goquery.Selection) {
		labelText := strings.ToLower(strings.TrimSpace(label.Text()))

		value := ""
		if parent := label.Parent(); parent.Length() > 0 {
			parentText := parent.Text()
			if idx := strings.Index(parentText, ":"); idx >= 0 {
				value = strings.TrimSpace(parentText[idx+1:])
				value = strings.TrimSpace(firstLine(value))
			}
		}
		if value == "" {
			return
		}

		switch {
		case strings.Contains(labelText, "category"):
			project.Category = value
		case strings.Contains(labelText, "year"):
			project.Year = value
		case strings.Contains(labelText, "booth"):
			project.Booth = value
		case strings.Contains(labelText, "country"), strings.Contains(labelText, "location"):
			project.Country = value
		}
	})

	project.Abstract = extractAbstract(content)
	project.Awards = extractAwards(fullText)

	if matches := finalistPattern.FindStringSubmatch(fullText); matches != nil {
		project.Finalists = strings.TrimSpace(firstLine(matches[1]))
	}

	return project, nil
}

// extractTitle prefers the first h2, then falls back to any heading that
// looks like a project title rather than site chrome.
func extractTitle(content *goquery.Selection) string {
	if title := strings.TrimSpace(content.Find("h2").First().Text()); title != "" {
		return title
	}

	title := ""
	content.Find("h1, h2, h3").EachWithBreak(func(i int, h *goquery.Selection) bool {
		t := strings.TrimSpace(h.Text())
		if len(t) > 10 && !strings.Contains(t, "ISEF") {
			title = t
			return false
		}
		return true
	})
	return title
}

// extractAbstract prefers text following an "Abstract" label, then falls
// back to the first long paragraph.
func extractAbstract(content *goquery.Selection) string {
	abstract := ""
	content.Find("strong, b").EachWithBreak(func(i int, label *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(label.Text()), "abstract") {
			return true
		}

		parent := label.Parent()
		for _, candidate := range []*goquery.Selection{parent, parent.Next()} {
			text := strings.TrimSpace(candidate.Text())
			text = strings.TrimSpace(strings.TrimPrefix(text, strings.TrimSpace(label.Text())))
			if len(text) > 100 {
				abstract = text
				return false
			}
		}
		return true
	})

	if abstract == "" {
		content.Find("p").EachWithBreak(func(i int, para *goquery.Selection) bool {
			text := strings.TrimSpace(para.Text())
			if len(text) > 200 {
				abstract = text
				return false
			}
			return true
		})
	}

	return abstract
}

// extractAwards reads the "Awards Won:" section, one award per semicolon
func extractAwards(fullText string) []string {
	awards := []string{}

	_, after, found := strings.Cut(fullText, "Awards Won:")
	if !found {
		return awards
	}

	line := strings.TrimSpace(firstLine(strings.TrimSpace(after)))
	if line == "" || len(line) >= 500 {
		return awards
	}

	for _, award := range strings.Split(line, ";") {
		if award = strings.TrimSpace(award); award != "" {
			awards = append(awards, award)
		}
	}
	return awards
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Package contact discovers best-effort contact information for award
// winners from public search engine result pages.
package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidate is one piece of discovered contact information tied to the
// project it was searched for.
type Candidate struct {
	OwnerID     int    `json:"owner_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	SourceQuery string `json:"source_query"`
}

// Key returns the identity used for deduplication: the owner plus the
// lowercased address when there is one, the owner plus the profile URL for
// profile-only candidates, and the owner plus name plus query otherwise.
func (c *Candidate) Key() string {
	if c.Email != "" {
		return fmt.Sprintf("%d|%s", c.OwnerID, strings.ToLower(c.Email))
	}
	if c.LinkedInURL != "" {
		return fmt.Sprintf("%d|%s", c.OwnerID, c.LinkedInURL)
	}
	return fmt.Sprintf("%d|%s|%s", c.OwnerID, c.Name, c.SourceQuery)
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	emailExact   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// junkMarkers disqualify a captured address anywhere they appear in it:
// placeholder and platform domains plus role-account local parts.
var junkMarkers = []string{
	"example.com", "test.com", "domain.com", "email.com",
	"google.com", "facebook.com", "twitter.com", "instagram.com", "youtube.com",
	"noreply", "no-reply", "support", "info", "contact",
}

// ExtractEmails returns the unique addresses found in text, in order of
// first appearance. No validity filtering is applied.
func ExtractEmails(text string) []string {
	seen := make(map[string]bool)
	emails := []string{}
	for _, match := range emailPattern.FindAllString(text, -1) {
		key := strings.ToLower(match)
		if seen[key] {
			continue
		}
		seen[key] = true
		emails = append(emails, match)
	}
	return emails
}

// Valid reports whether email looks like a usable personal address
func Valid(email string) bool {
	if !emailExact.MatchString(email) {
		return false
	}
	lower := strings.ToLower(email)
	for _, junk := range junkMarkers {
		if strings.Contains(lower, junk) {
			return false
		}
	}
	return true
}

// FilterValid returns only the addresses that pass Valid, preserving order
func FilterValid(emails []string) []string {
	valid := []string{}
	for _, email := range emails {
		if Valid(email) {
			valid = append(valid, email)
		}
	}
	return valid
}

// SplitName splits a "Last, First" style name into its parts. Names without
// a comma fall back to first-token and last-token. Trailing annotations like
// a parenthesized school are dropped with the rest of the name.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)

	if beforeComma, afterComma, found := strings.Cut(name, ","); found {
		last = strings.TrimSpace(beforeComma)
		if fields := strings.Fields(afterComma); len(fields) > 0 {
			first = fields[0]
		}
		return first, last
	}

	fields := strings.Fields(name)
	if len(fields) > 0 {
		first = fields[0]
	}
	if len(fields) > 1 {
		last = fields[len(fields)-1]
	}
	return first, last
}

// DisplayName returns "First Last" for a "Last, First" style name
func DisplayName(name string) string {
	first, last := SplitName(name)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	return strings.TrimSpace(name)
}

package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aranyoray/curiousmails/internal/contact"
	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/listing"
)

func TestCategorize_Run(t *testing.T) {
	dir, err := os.MkdirTemp("", "categorize-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	store := dataset.NewStore(dir)
	projects := []listing.Project{
		{ID: 101, Booth: "EBED001T", Title: "Untitled"},
		{ID: 102, Category: "Physics and Astronomy", Title: "Untitled"},
	}
	if err := store.SaveProjects(projects); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}

	c := &Categorize{Store: store}
	summary, err := c.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Parsed != 2 {
		t.Errorf("Expected 2 projects categorized, got %d", summary.Parsed)
	}

	got, err := store.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}
	if got[0].PrimaryCategory != "Embedded Systems" {
		t.Errorf("Expected booth prefix category 'Embedded Systems', got %q", got[0].PrimaryCategory)
	}
	if len(got[0].Categories) == 0 || got[0].Categories[0] != "Embedded Systems" {
		t.Errorf("Expected primary first in categories, got %v", got[0].Categories)
	}
	if got[1].PrimaryCategory != "Physics" {
		t.Errorf("Expected alias resolved to 'Physics', got %q", got[1].PrimaryCategory)
	}
}

func TestCategorize_Run_Idempotent(t *testing.T) {
	dir, err := os.MkdirTemp("", "categorize-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	store := dataset.NewStore(dir)
	projects := []listing.Project{{ID: 7, Booth: "CHEM003", Title: "Untitled"}}
	if err := store.SaveProjects(projects); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}

	c := &Categorize{Store: store}
	if _, err := c.Run(); err != nil {
		t.Fatalf("First Run() error = %v", err)
	}
	first, err := store.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}

	if _, err := c.Run(); err != nil {
		t.Fatalf("Second Run() error = %v", err)
	}
	second, err := store.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}

	if first[0].PrimaryCategory != second[0].PrimaryCategory {
		t.Errorf("Expected stable primary, got %q then %q", first[0].PrimaryCategory, second[0].PrimaryCategory)
	}
	if len(first[0].Categories) != len(second[0].Categories) {
		t.Errorf("Expected stable categories, got %v then %v", first[0].Categories, second[0].Categories)
	}
}

func TestEnrich_Run_Offline(t *testing.T) {
	dir, err := os.MkdirTemp("", "enrich-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	store := dataset.NewStore(dir)
	projects := []listing.Project{
		{ID: 101, Title: "Synthesis of Novel Palladium Catalysts", Abstract: "We synthesized and characterized palladium catalysts.", Country: "United States of America"},
	}
	if err := store.SaveProjects(projects); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}
	winners := []dataset.Winner{
		{
			ProjectID: 101,
			Name:      "Chen, Amelia (Lincoln High School)",
			Category:  "Chemistry",
			Awards:    []string{"Arizona State University ISEF Scholarship Award"},
			Emails:    []string{},
		},
	}
	if err := store.SaveWinners(winners); err != nil {
		t.Fatalf("SaveWinners() error = %v", err)
	}

	e := &Enrich{Store: store}
	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Parsed != 1 {
		t.Errorf("Expected 1 winner enriched, got %d", summary.Parsed)
	}
	if summary.Fetched != 0 {
		t.Errorf("Expected no fetches offline, got %d", summary.Fetched)
	}

	got, err := store.LoadWinners()
	if err != nil {
		t.Fatalf("LoadWinners() error = %v", err)
	}
	w := got[0]
	if w.University != "Arizona State University" {
		t.Errorf("Expected university from award, got %q", w.University)
	}
	wantGuesses := []string{"amelia.chen@asu.edu", "ameliachen@asu.edu"}
	if len(w.GuessedEmails) != len(wantGuesses) {
		t.Fatalf("Expected %d guesses, got %v", len(wantGuesses), w.GuessedEmails)
	}
	for i, guess := range wantGuesses {
		if w.GuessedEmails[i] != guess {
			t.Errorf("Expected guess %q, got %q", guess, w.GuessedEmails[i])
		}
	}
	if w.Major != "Chemistry" {
		t.Errorf("Expected major to fall back to category, got %q", w.Major)
	}
	if w.Country != "United States of America" {
		t.Errorf("Expected country backfilled from project, got %q", w.Country)
	}
	if len(w.Skills) == 0 {
		t.Error("Expected skills mined from the project")
	}
}

func TestEnrich_Run_Online(t *testing.T) {
	dir, err := os.MkdirTemp("", "enrich-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		fmt.Fprint(w, `<html><body><p>Ben Ortiz '2027 studying Mechanical Engineering at Stanford</p></body></html>`) // nolint:errcheck
	}))
	defer server.Close()

	store := dataset.NewStore(dir)
	if err := store.SaveProjects([]listing.Project{}); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}
	winners := []dataset.Winner{
		{ProjectID: 7, Name: "Ortiz, Ben", Category: "Physics", Emails: []string{}},
	}
	if err := store.SaveWinners(winners); err != nil {
		t.Fatalf("SaveWinners() error = %v", err)
	}

	e := &Enrich{
		Client:  testClient(),
		Store:   store,
		Profile: contact.Google(server.URL + "/search"),
		Online:  true,
	}
	summary, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Fetched != 1 {
		t.Errorf("Expected 1 profile fetch, got %d", summary.Fetched)
	}
	if len(queries) != 1 || queries[0] != `"Ben Ortiz" linkedin student` {
		t.Errorf("Unexpected profile queries %v", queries)
	}

	got, err := store.LoadWinners()
	if err != nil {
		t.Fatalf("LoadWinners() error = %v", err)
	}
	w := got[0]
	if w.University != "Stanford" {
		t.Errorf("Expected university 'Stanford', got %q", w.University)
	}
	if w.Major != "Mechanical Engineering" {
		t.Errorf("Expected major 'Mechanical Engineering', got %q", w.Major)
	}
}

func TestEnrich_Run_OnlineSkipsCompleteRecords(t *testing.T) {
	dir, err := os.MkdirTemp("", "enrich-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "<html><body></body></html>") // nolint:errcheck
	}))
	defer server.Close()

	store := dataset.NewStore(dir)
	if err := store.SaveProjects([]listing.Project{}); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}
	winners := []dataset.Winner{
		{ProjectID: 8, Name: "Lee, Dana", Category: "Chemistry", Major: "Chemistry", University: "MIT", Emails: []string{}},
	}
	if err := store.SaveWinners(winners); err != nil {
		t.Fatalf("SaveWinners() error = %v", err)
	}

	e := &Enrich{
		Client:  testClient(),
		Store:   store,
		Profile: contact.Google(server.URL + "/search"),
		Online:  true,
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if requests != 0 {
		t.Errorf("Expected no profile fetches for a complete record, got %d", requests)
	}
}

package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/fetch"
	"github.com/aranyoray/curiousmails/internal/listing"
	"github.com/aranyoray/curiousmails/internal/progress"
)

const longAbstract = "We developed a convolutional model that screens retinal scans for early " +
	"signs of disease and validated it against a public dataset of several thousand images, " +
	"reaching clinically useful sensitivity on held-out cases."

func abstractPage(title string) string {
	return fmt.Sprintf(`<html><body><div class="container">
<h2>%s</h2>
<p><strong>Booth Id:</strong> ENBM052T</p>
<p><strong>Category:</strong> Biomedical Engineering</p>
<p><strong>Year:</strong> 2023</p>
<p><strong>Country:</strong> United States of America</p>
<p><strong>Abstract:</strong> %s</p>
<p>Finalist Names: Chen, Amelia (Lincoln High School)</p>
<p>Awards Won: First Award of $5,000</p>
</div></body></html>`, title, longAbstract)
}

func testClient() *fetch.Client {
	return fetch.New(fetch.Options{Timeout: 5 * time.Second, UserAgent: "curiousmails-test"})
}

func TestListings_Run(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("projectId") {
		case "101":
			fmt.Fprint(w, abstractPage("Machine Learning Based Early Detection of Diabetic Retinopathy")) // nolint:errcheck
		case "102":
			fmt.Fprint(w, `<html><body><div class="container"><p>page temporarily unavailable</p></div></body></html>`) // nolint:errcheck
		case "103":
			fmt.Fprint(w, abstractPage("Low Cost Perovskite Solar Cells From Recycled Precursors")) // nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	store := dataset.NewStore(dir)
	prog, err := progress.OpenFile(store.ProgressPath(), false)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          store,
		BaseURL:        server.URL,
		BatchSize:      2,
		BlockThreshold: 3,
	}

	summary, err := l.Run(context.Background(), 101, 103)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Fetched != 3 {
		t.Errorf("Expected 3 fetched, got %d", summary.Fetched)
	}
	if summary.Parsed != 2 {
		t.Errorf("Expected 2 parsed, got %d", summary.Parsed)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", summary.Failed)
	}
	if summary.Stopped != "" {
		t.Errorf("Expected run to complete, got stopped=%q", summary.Stopped)
	}
	if summary.RunID == "" {
		t.Error("Expected a run id")
	}

	projects, err := store.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects on disk, got %d", len(projects))
	}
	if projects[0].ID != 101 || projects[1].ID != 103 {
		t.Errorf("Expected projects 101 and 103, got %d and %d", projects[0].ID, projects[1].ID)
	}

	p := projects[0]
	if p.Title != "Machine Learning Based Early Detection of Diabetic Retinopathy" {
		t.Errorf("Unexpected title %q", p.Title)
	}
	if p.Category != "Biomedical Engineering" {
		t.Errorf("Expected category 'Biomedical Engineering', got %q", p.Category)
	}
	if p.Year != "2023" {
		t.Errorf("Expected year '2023', got %q", p.Year)
	}
	if p.Booth != "ENBM052T" {
		t.Errorf("Expected booth 'ENBM052T', got %q", p.Booth)
	}
	if p.Finalists != "Chen, Amelia (Lincoln High School)" {
		t.Errorf("Unexpected finalists %q", p.Finalists)
	}
	if len(p.Awards) != 1 || p.Awards[0] != "First Award of $5,000" {
		t.Errorf("Unexpected awards %v", p.Awards)
	}
	if p.AbstractURL != listing.AbstractURL(server.URL, 101) {
		t.Errorf("Unexpected abstract URL %q", p.AbstractURL)
	}

	// Progress survives a reopen
	reopened, err := progress.OpenFile(store.ProgressPath(), false)
	if err != nil {
		t.Fatalf("Reopening progress: %v", err)
	}
	if !reopened.Done(101) || !reopened.Done(103) {
		t.Error("Expected 101 and 103 marked done after reopen")
	}
	if reopened.Get(102) != progress.StatusFailed {
		t.Errorf("Expected 102 failed, got %q", reopened.Get(102))
	}
}

func TestListings_Run_SkipsSettledIDs(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	var served []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served = append(served, r.URL.Query().Get("projectId"))
		fmt.Fprint(w, abstractPage("A Study of Soil Microbes Under Drought Stress")) // nolint:errcheck
	}))
	defer server.Close()

	prog := progress.NewMemStore()
	for id := 1; id <= 5; id++ {
		prog.Mark(id, progress.StatusDone)
	}

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	summary, err := l.Run(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Skipped != 5 {
		t.Errorf("Expected 5 skipped, got %d", summary.Skipped)
	}
	if summary.Fetched != 5 {
		t.Errorf("Expected 5 fetched, got %d", summary.Fetched)
	}
	if len(served) != 5 {
		t.Fatalf("Expected 5 requests, got %d: %v", len(served), served)
	}
	want := []string{"6", "7", "8", "9", "10"}
	for i, id := range want {
		if served[i] != id {
			t.Errorf("Expected request %d for id %s, got %s", i, id, served[i])
		}
	}
}

func TestListings_Run_Idempotent(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, abstractPage("Gut Microbiome Shifts in Hibernating Ground Squirrels")) // nolint:errcheck
	}))
	defer server.Close()

	store := dataset.NewStore(dir)
	prog, err := progress.OpenFile(store.ProgressPath(), false)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          store,
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	if _, err := l.Run(context.Background(), 201, 202); err != nil {
		t.Fatalf("First Run() error = %v", err)
	}
	first, err := os.ReadFile(store.ProjectsPath())
	if err != nil {
		t.Fatalf("Reading projects after first run: %v", err)
	}
	afterFirst := requests

	summary, err := l.Run(context.Background(), 201, 202)
	if err != nil {
		t.Fatalf("Second Run() error = %v", err)
	}

	if summary.Fetched != 0 {
		t.Errorf("Expected second run to fetch nothing, got %d", summary.Fetched)
	}
	if summary.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", summary.Skipped)
	}
	if requests != afterFirst {
		t.Errorf("Expected no new requests, got %d extra", requests-afterFirst)
	}

	second, err := os.ReadFile(store.ProjectsPath())
	if err != nil {
		t.Fatalf("Reading projects after second run: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Expected projects file unchanged after a second run")
	}
}

func TestListings_Run_StopsWhenBlocked(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       progress.NewMemStore(),
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	summary, err := l.Run(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Stopped != StopBlocked {
		t.Errorf("Expected stopped=%q, got %q", StopBlocked, summary.Stopped)
	}
	if summary.Failed != 3 {
		t.Errorf("Expected 3 failed, got %d", summary.Failed)
	}
	if summary.Fetched != 0 {
		t.Errorf("Expected 0 fetched, got %d", summary.Fetched)
	}
	if requests != 3 {
		t.Errorf("Expected 3 requests before stopping, got %d", requests)
	}
}

func TestListings_Run_AbsentProject(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="container">Project not found</div></body></html>`) // nolint:errcheck
	}))
	defer server.Close()

	prog := progress.NewMemStore()
	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	summary, err := l.Run(context.Background(), 7, 7)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.NotFound != 1 {
		t.Errorf("Expected 1 not found, got %d", summary.NotFound)
	}
	if summary.Parsed != 0 || summary.Failed != 0 {
		t.Errorf("Expected no parses or failures, got parsed=%d failed=%d", summary.Parsed, summary.Failed)
	}
	if !prog.Done(7) {
		t.Error("Expected absent id settled as done so reruns skip it")
	}
}

func TestListings_Run_Canceled(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, abstractPage("Never Served")) // nolint:errcheck
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       progress.NewMemStore(),
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	summary, err := l.Run(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Stopped != StopCanceled {
		t.Errorf("Expected stopped=%q, got %q", StopCanceled, summary.Stopped)
	}
	if summary.Fetched != 0 {
		t.Errorf("Expected 0 fetched, got %d", summary.Fetched)
	}
}

func TestListings_Run_RetriesTransientFailure(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Errorf("Hijack() error = %v", err)
				return
			}
			conn.Close() // nolint:errcheck
			return
		}
		fmt.Fprint(w, abstractPage("Acoustic Levitation of Millimeter Scale Droplets")) // nolint:errcheck
	}))
	defer server.Close()

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       progress.NewMemStore(),
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		MaxRetries:     2,
		BlockThreshold: 3,
	}

	summary, err := l.Run(context.Background(), 42, 42)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
	if summary.Fetched != 1 || summary.Parsed != 1 {
		t.Errorf("Expected 1 fetched and parsed, got fetched=%d parsed=%d", summary.Fetched, summary.Parsed)
	}
	if summary.Failed != 0 {
		t.Errorf("Expected 0 failed, got %d", summary.Failed)
	}
}

func TestListings_Run_ForceRevisits(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, abstractPage("Revisited Project Title For A Forced Crawl")) // nolint:errcheck
	}))
	defer server.Close()

	prog := progress.NewMemStore()
	prog.Mark(5, progress.StatusDone)

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       prog,
		Store:          dataset.NewStore(dir),
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
		Force:          true,
	}

	summary, err := l.Run(context.Background(), 5, 5)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if requests != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
	if summary.Skipped != 0 || summary.Fetched != 1 {
		t.Errorf("Expected forced refetch, got skipped=%d fetched=%d", summary.Skipped, summary.Fetched)
	}
}

func TestListings_Run_MergePreservesExisting(t *testing.T) {
	dir, err := os.MkdirTemp("", "listings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir) // nolint:errcheck

	store := dataset.NewStore(dir)
	seeded := []listing.Project{
		{ID: 50, Title: "Seeded Title", Abstract: "Hand curated abstract that must survive."},
	}
	if err := store.SaveProjects(seeded); err != nil {
		t.Fatalf("SaveProjects() error = %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := strings.Replace(abstractPage("Fresh Crawled Title For Project Fifty"), longAbstract, "short", 1)
		fmt.Fprint(w, page) // nolint:errcheck
	}))
	defer server.Close()

	l := &Listings{
		Client:         testClient(),
		Parser:         listing.NewAbstractPageParser(),
		Progress:       progress.NewMemStore(),
		Store:          store,
		BaseURL:        server.URL,
		BatchSize:      10,
		BlockThreshold: 3,
	}

	if _, err := l.Run(context.Background(), 50, 50); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	projects, err := store.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(projects))
	}
	if projects[0].Title != "Fresh Crawled Title For Project Fifty" {
		t.Errorf("Expected fresh title to win, got %q", projects[0].Title)
	}
	if projects[0].Abstract != "Hand curated abstract that must survive." {
		t.Errorf("Expected seeded abstract to survive, got %q", projects[0].Abstract)
	}
}

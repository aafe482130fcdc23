// Package config provides configuration loading and validation for the
// curiousmails pipeline.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pipeline configuration
type Config struct {
	// DataDir is the directory holding all output JSON files
	DataDir string `yaml:"data_dir"`

	Source SourceConfig `yaml:"source"`
	Search SearchConfig `yaml:"search"`
	Crawl  CrawlConfig  `yaml:"crawl"`
}

// SourceConfig configures the abstract listing source
type SourceConfig struct {
	// BaseURL is the root of the abstract site
	BaseURL string `yaml:"base_url"`
	// UserAgent is sent on every request
	UserAgent string `yaml:"user_agent"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`
	// RespectRobots gates listing fetches on the site's robots.txt
	RespectRobots bool `yaml:"respect_robots"`
}

// SearchConfig configures contact discovery via public search engines
type SearchConfig struct {
	// DuckDuckGoURL is the HTML results endpoint
	DuckDuckGoURL string `yaml:"duckduckgo_url"`
	// GoogleURL is the search endpoint (used for LinkedIn discovery)
	GoogleURL string `yaml:"google_url"`
	// QueriesPerPerson caps how many search queries run per winner
	QueriesPerPerson int `yaml:"queries_per_person"`
	// LinkedIn enables profile URL discovery
	LinkedIn bool `yaml:"linkedin"`
	// MinYear excludes winners from before this year
	MinYear int `yaml:"min_year"`
	// Timeout is the per-search-request timeout
	Timeout time.Duration `yaml:"timeout"`
	// Delay is the minimum gap between search requests
	Delay time.Duration `yaml:"delay"`
}

// CrawlConfig configures the listing crawl
type CrawlConfig struct {
	// Delay is the minimum gap between listing fetches
	Delay time.Duration `yaml:"delay"`
	// BatchSize is how many processed items trigger a persist + flush
	BatchSize int `yaml:"batch_size"`
	// MaxRetries bounds retries of transient fetch errors per item
	MaxRetries int `yaml:"max_retries"`
	// BlockThreshold is how many consecutive blocked responses stop a run
	BlockThreshold int `yaml:"block_threshold"`
	// StartID and EndID bound the default id range
	StartID int `yaml:"start_id"`
	EndID   int `yaml:"end_id"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		DataDir: "data",
		Source: SourceConfig{
			BaseURL:       "https://abstracts.societyforscience.org",
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:       30 * time.Second,
			RespectRobots: true,
		},
		Search: SearchConfig{
			DuckDuckGoURL:    "https://html.duckduckgo.com/html/",
			GoogleURL:        "https://www.google.com/search",
			QueriesPerPerson: 3,
			LinkedIn:         true,
			MinYear:          2019,
			Timeout:          10 * time.Second,
			Delay:            2 * time.Second,
		},
		Crawl: CrawlConfig{
			Delay:          3 * time.Second,
			BatchSize:      10,
			MaxRetries:     2,
			BlockThreshold: 5,
			StartID:        1,
			EndID:          30000,
		},
	}
}

// Load returns the defaults overlaid with the file at path, when path is
// non-empty. A missing file at an explicitly given path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if _, err := url.Parse(c.Source.BaseURL); err != nil {
		return fmt.Errorf("source.base_url is not a valid URL: %w", err)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if c.Search.QueriesPerPerson < 1 {
		return fmt.Errorf("search.queries_per_person must be at least 1")
	}
	if c.Search.MinYear < 0 {
		return fmt.Errorf("search.min_year must not be negative")
	}
	if c.Crawl.Delay < 0 || c.Search.Delay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.Crawl.BatchSize < 1 {
		return fmt.Errorf("crawl.batch_size must be at least 1")
	}
	if c.Crawl.MaxRetries < 0 {
		return fmt.Errorf("crawl.max_retries must not be negative")
	}
	if c.Crawl.BlockThreshold < 1 {
		return fmt.Errorf("crawl.block_threshold must be at least 1")
	}
	if c.Crawl.EndID < c.Crawl.StartID {
		return fmt.Errorf("crawl.end_id (%d) must not be below crawl.start_id (%d)", c.Crawl.EndID, c.Crawl.StartID)
	}
	return nil
}

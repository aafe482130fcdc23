// Package dataset reads and writes the JSON files the pipeline produces.
// The files are the whole serving contract, so every write lands atomically
// and readers of the data directory never see a partial file.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aranyoray/curiousmails/internal/listing"
)

// Store reads and writes the dataset files under one directory
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ProjectsPath returns the path of the projects file
func (s *Store) ProjectsPath() string {
	return filepath.Join(s.dir, "projects.json")
}

// WinnersPath returns the path of the winner contacts file
func (s *Store) WinnersPath() string {
	return filepath.Join(s.dir, "winner_emails.json")
}

// ProgressPath returns the path of the listing crawl status file
func (s *Store) ProgressPath() string {
	return filepath.Join(s.dir, "progress.json")
}

// EmailProgressPath returns the path of the email crawl status file
func (s *Store) EmailProgressPath() string {
	return filepath.Join(s.dir, "email_progress.json")
}

// LoadProjects reads the projects file. A missing file yields an empty
// slice so first runs and resumed runs share one code path.
func (s *Store) LoadProjects() ([]listing.Project, error) {
	data, err := os.ReadFile(s.ProjectsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []listing.Project{}, nil
		}
		return nil, fmt.Errorf("reading projects file: %w", err)
	}

	var projects []listing.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parsing projects file: %w", err)
	}
	return projects, nil
}

// SaveProjects writes the projects file atomically
func (s *Store) SaveProjects(projects []listing.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling projects: %w", err)
	}
	if err := WriteFileAtomic(s.ProjectsPath(), data); err != nil {
		return fmt.Errorf("writing projects file: %w", err)
	}
	return nil
}

// LoadWinners reads the winner contacts file, empty when missing
func (s *Store) LoadWinners() ([]Winner, error) {
	data, err := os.ReadFile(s.WinnersPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []Winner{}, nil
		}
		return nil, fmt.Errorf("reading winners file: %w", err)
	}

	var winners []Winner
	if err := json.Unmarshal(data, &winners); err != nil {
		return nil, fmt.Errorf("parsing winners file: %w", err)
	}
	return winners, nil
}

// SaveWinners writes the winner contacts file atomically
func (s *Store) SaveWinners(winners []Winner) error {
	data, err := json.MarshalIndent(winners, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling winners: %w", err)
	}
	if err := WriteFileAtomic(s.WinnersPath(), data); err != nil {
		return fmt.Errorf("writing winners file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename. A crash mid-write leaves the old file
// intact rather than a truncated one.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           // nolint:errcheck
		os.Remove(tmp.Name()) // nolint:errcheck
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) // nolint:errcheck
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name()) // nolint:errcheck
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Package progress tracks which project ids a crawl has settled, so an
// interrupted run resumes where it stopped instead of refetching.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/aranyoray/curiousmails/internal/dataset"
	"github.com/aranyoray/curiousmails/internal/logger"
)

// Status is the state recorded for one id
type Status string

const (
	// StatusPending marks ids not yet attempted (the default for unknown ids)
	StatusPending Status = "pending"
	// StatusDone marks ids settled for good: scraped, or known absent
	StatusDone Status = "done"
	// StatusFailed marks ids that errored; they are retried on the next run
	StatusFailed Status = "failed"
)

// Store records per-id crawl status. Get returns StatusPending for ids it
// has never seen. Mark never downgrades StatusDone unless the store was
// opened for a forced rescan. Flush persists the current state.
type Store interface {
	Get(id int) Status
	Done(id int) bool
	Mark(id int, status Status)
	Flush() error
	Len() int
}

// FileStore persists statuses to a JSON file mapping decimal ids to status
// strings.
type FileStore struct {
	path  string
	force bool

	mu      sync.Mutex
	entries map[int]Status
}

// OpenFile loads the status file at path. A missing file yields an empty
// store. A corrupt file is logged and yields an empty store, so one bad
// write never wedges the pipeline; the next Flush replaces it.
func OpenFile(path string, force bool) (*FileStore, error) {
	entries := make(map[int]Status)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading progress file: %w", err)
		}
	} else {
		var raw map[string]Status
		if err := json.Unmarshal(data, &raw); err != nil {
			logger.Warn("progress file is corrupt, starting over", logger.Fields{
				"path": path,
			})
		} else {
			for key, status := range raw {
				id, err := strconv.Atoi(key)
				if err != nil {
					continue
				}
				entries[id] = status
			}
		}
	}

	return &FileStore{path: path, force: force, entries: entries}, nil
}

// Get returns the recorded status for id, StatusPending when unknown
func (s *FileStore) Get(id int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.entries[id]; ok {
		return status
	}
	return StatusPending
}

// Done reports whether id is settled
func (s *FileStore) Done(id int) bool {
	return s.Get(id) == StatusDone
}

// Mark records a status for id. Without force, StatusDone is sticky:
// a settled id never regresses to failed or pending.
func (s *FileStore) Mark(id int, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.force && s.entries[id] == StatusDone && status != StatusDone {
		return
	}

	if status == StatusPending {
		delete(s.entries, id)
		return
	}
	s.entries[id] = status
}

// Flush writes the current state to the status file atomically
func (s *FileStore) Flush() error {
	s.mu.Lock()
	raw := make(map[string]Status, len(s.entries))
	for id, status := range s.entries {
		raw[strconv.Itoa(id)] = status
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}

	if err := dataset.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing progress file: %w", err)
	}
	return nil
}

// Len returns how many ids have a recorded status
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// MemStore keeps statuses in memory only. Flush is a no-op. It backs tests
// and runs that should leave the progress file untouched.
type MemStore struct {
	mu      sync.Mutex
	entries map[int]Status
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[int]Status)}
}

// Get returns the recorded status for id, StatusPending when unknown
func (s *MemStore) Get(id int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.entries[id]; ok {
		return status
	}
	return StatusPending
}

// Done reports whether id is settled
func (s *MemStore) Done(id int) bool {
	return s.Get(id) == StatusDone
}

// Mark records a status for id, keeping StatusDone sticky
func (s *MemStore) Mark(id int, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[id] == StatusDone && status != StatusDone {
		return
	}
	if status == StatusPending {
		delete(s.entries, id)
		return
	}
	s.entries[id] = status
}

// Flush is a no-op for in-memory stores
func (s *MemStore) Flush() error { return nil }

// Len returns how many ids have a recorded status
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Package crawl runs the pipeline passes end to end: paced fetching,
// parsing, progress bookkeeping, and periodic persists of the dataset
// files.
package crawl

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/aranyoray/curiousmails/internal/fetch"
)

// Reasons a pass stopped before reaching the end of its work
const (
	StopBlocked  = "blocked"
	StopCanceled = "canceled"
)

// Summary reports what one pass did. Stopped is empty when the pass ran
// to completion.
type Summary struct {
	RunID    string  `json:"run_id"`
	Pass     string  `json:"pass"`
	Fetched  int     `json:"fetched"`
	Parsed   int     `json:"parsed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	NotFound int     `json:"not_found,omitempty"`
	Winners  int     `json:"winners,omitempty"`
	Emails   int     `json:"emails,omitempty"`
	Stopped  string  `json:"stopped,omitempty"`
	Seconds  float64 `json:"seconds"`
}

func newRunID() string {
	return uuid.NewString()
}

// fetchWithRetry fetches url, retrying transient failures up to retries
// times with exponential backoff. Anything else fails immediately.
func fetchWithRetry(ctx context.Context, client *fetch.Client, url string, retries int) ([]byte, error) {
	var body []byte
	operation := func() error {
		var err error
		body, err = client.Get(ctx, url)
		if err == nil {
			return nil
		}
		if fetch.IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

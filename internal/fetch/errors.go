package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a fetch failure
type Kind int

const (
	// KindNetwork covers transport failures (refused, reset, DNS)
	KindNetwork Kind = iota
	// KindTimeout covers request and dial timeouts
	KindTimeout
	// KindStatus covers responses outside the 2xx range
	KindStatus
	// KindRobots marks URLs disallowed by the host's robots.txt
	KindRobots
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindRobots:
		return "robots"
	}
	return "unknown"
}

// Error describes a failed fetch. A non-2xx response is an ordinary error
// return with KindStatus, never a panic.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Status)
	case KindTimeout:
		return fmt.Sprintf("fetching %s: timed out: %v", e.URL, e.Err)
	case KindRobots:
		return fmt.Sprintf("fetching %s: disallowed by robots.txt", e.URL)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsBlocked reports whether err looks like the source refusing the client
// (HTTP 403 or 429).
func IsBlocked(err error) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == KindStatus &&
		(fe.Status == http.StatusForbidden || fe.Status == http.StatusTooManyRequests)
}

// IsTransient reports whether a retry of the same request might succeed.
func IsTransient(err error) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == KindTimeout || fe.Kind == KindNetwork
}

// IsRobotsDenied reports whether err is a robots.txt denial.
func IsRobotsDenied(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindRobots
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// status error.
func StatusOf(err error) int {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == KindStatus {
		return fe.Status
	}
	return 0
}

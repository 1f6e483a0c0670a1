package calendar

import (
	"context"
	"fmt"
	"time"
)

// Event is a single calendar event extracted from a feed.
// A zero End means the feed supplied no end time.
type Event struct {
	UID         string
	Title       string
	Start       time.Time
	End         time.Time
	Description string
}

// Source is a generic interface for calendar feeds.
// The syncer reads events through this interface so tests can substitute
// an in-memory source.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Event, error)
}

// FetchError indicates that a calendar feed could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch calendar %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch calendar %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

package dashboard

import (
	"sync"
	"time"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/stats"
)

// EmptyCollection is the collection a view falls back to when the fetch fails
var EmptyCollection = []models.UserAggregateRecord{}

// Snapshot is the stored collection together with the stats derived from it.
// Records is shared with the State and must be treated as read-only.
type Snapshot struct {
	Records []models.UserAggregateRecord
	Stats   models.SummaryStats
}

// State is a single-writer cell holding the current Snapshot.
// Replace swaps the whole value; readers never observe a partial update.
type State struct {
	mu      sync.RWMutex
	current Snapshot
	clock   stats.Clock
}

// NewState creates a State holding the empty collection
func NewState(clock stats.Clock) *State {
	if clock == nil {
		clock = time.Now
	}
	return &State{
		current: Snapshot{Records: EmptyCollection},
		clock:   clock,
	}
}

// Replace stores records and recomputes the stats for them
func (s *State) Replace(records []models.UserAggregateRecord) Snapshot {
	if records == nil {
		records = EmptyCollection
	}
	next := Snapshot{
		Records: records,
		Stats:   stats.Summarize(records, s.clock()),
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return next
}

// Snapshot returns the current value
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

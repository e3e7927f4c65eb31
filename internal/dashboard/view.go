// Package dashboard implements the admin users view: a one-shot fetch of the
// user aggregates, the derived summary cards and the paginated table.
package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/source"
	"github.com/user-dashboard/internal/stats"
)

// Outcome describes how an activation settled the view's state
type Outcome string

const (
	// OutcomePending means the view has not finished activating
	OutcomePending Outcome = "pending"

	// OutcomeLoaded means the fetched collection was stored
	OutcomeLoaded Outcome = "loaded"

	// OutcomeFallback means the fetch failed and EmptyCollection was stored
	OutcomeFallback Outcome = "fallback"
)

// View is one activation of the dashboard. It fetches at most once.
type View struct {
	fetcher source.Fetcher
	state   *State
	log     zerolog.Logger

	once    sync.Once
	mu      sync.Mutex
	outcome Outcome
}

// NewView creates a View that will fetch through fetcher on activation
func NewView(fetcher source.Fetcher, clock stats.Clock, log zerolog.Logger) *View {
	return &View{
		fetcher: fetcher,
		state:   NewState(clock),
		log:     log.With().Str("component", "dashboard").Logger(),
		outcome: OutcomePending,
	}
}

// Activate fetches the collection and stores it. Only the first call
// fetches; later calls return the stored result. A failed fetch is never
// returned to the caller: the view falls back to EmptyCollection.
func (v *View) Activate(ctx context.Context) (Outcome, Snapshot) {
	v.once.Do(func() {
		resp, err := v.fetcher.FetchUsers(ctx)
		if err != nil {
			v.fallbackEmpty(err)
			return
		}

		snap := v.state.Replace(resp.Records())
		v.setOutcome(OutcomeLoaded)

		v.log.Debug().
			Int("records", len(snap.Records)).
			Int("new_users", snap.Stats.NewUsers).
			Msg("Dashboard activated")
	})

	return v.Outcome(), v.state.Snapshot()
}

// fallbackEmpty is the recovery strategy for fetch failures: log the error
// and replace the collection with EmptyCollection.
func (v *View) fallbackEmpty(err error) {
	v.log.Error().Err(err).Msg("Error fetching users")
	v.state.Replace(EmptyCollection)
	v.setOutcome(OutcomeFallback)
}

// Snapshot returns the current state without activating the view
func (v *View) Snapshot() Snapshot {
	return v.state.Snapshot()
}

// Outcome returns how activation settled, or OutcomePending
func (v *View) Outcome() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.outcome
}

func (v *View) setOutcome(o Outcome) {
	v.mu.Lock()
	v.outcome = o
	v.mu.Unlock()
}

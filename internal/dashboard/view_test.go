package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/source"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestView_ActivateLoaded(t *testing.T) {
	body := `[
		{"user": {"_id": "a", "createdAt": "2026-10-14T00:00:00Z"}, "totalPost": 3, "totalSpent": 100000},
		{"user": {"_id": "b", "createdAt": "2026-08-20T00:00:00Z"}, "totalPost": 0, "totalSpent": "0"}
	]`
	fetcher := source.FetcherFunc(func(ctx context.Context) (*source.Response, error) {
		return &source.Response{Metadata: json.RawMessage(body)}, nil
	})

	view := NewView(fetcher, fixedClock, zerolog.Nop())
	outcome, snap := view.Activate(context.Background())

	if outcome != OutcomeLoaded {
		t.Errorf("Expected outcome loaded, got %s", outcome)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(snap.Records))
	}
	want := models.SummaryStats{TotalUsers: 2, NewUsers: 1, ActiveUsers: 1, InactiveUsers: 1, TotalRevenue: models.AmountFromFloat(100000)}
	if !snap.Stats.Equal(want) {
		t.Errorf("Expected %+v, got %+v", want, snap.Stats)
	}
}

func TestView_ActivateFallback(t *testing.T) {
	fetcher := source.FetcherFunc(func(ctx context.Context) (*source.Response, error) {
		return nil, errors.New("connection refused")
	})

	view := NewView(fetcher, fixedClock, zerolog.Nop())
	outcome, snap := view.Activate(context.Background())

	if outcome != OutcomeFallback {
		t.Errorf("Expected outcome fallback, got %s", outcome)
	}
	if snap.Records == nil || len(snap.Records) != 0 {
		t.Errorf("Expected EmptyCollection, got %v", snap.Records)
	}
	if !snap.Stats.Equal(models.SummaryStats{}) {
		t.Errorf("Expected zero stats, got %+v", snap.Stats)
	}
}

func TestView_MetadataNotCollection(t *testing.T) {
	fetcher := source.FetcherFunc(func(ctx context.Context) (*source.Response, error) {
		return &source.Response{Metadata: json.RawMessage(`"not a list"`)}, nil
	})

	view := NewView(fetcher, fixedClock, zerolog.Nop())
	outcome, snap := view.Activate(context.Background())

	if outcome != OutcomeLoaded {
		t.Errorf("Expected outcome loaded, got %s", outcome)
	}
	if len(snap.Records) != 0 || !snap.Stats.Equal(models.SummaryStats{}) {
		t.Errorf("Expected empty state, got %+v", snap)
	}
}

func TestView_FetchesOnce(t *testing.T) {
	var calls int32
	fetcher := source.FetcherFunc(func(ctx context.Context) (*source.Response, error) {
		atomic.AddInt32(&calls, 1)
		return &source.Response{Metadata: json.RawMessage(`[{"user":{"_id":"a"}}]`)}, nil
	})

	view := NewView(fetcher, fixedClock, zerolog.Nop())
	view.Activate(context.Background())
	_, snap := view.Activate(context.Background())

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected exactly one fetch, got %d", n)
	}
	if len(snap.Records) != 1 {
		t.Errorf("Expected stored collection on second activation, got %d records", len(snap.Records))
	}
}

func TestView_PriorStateWhileFetching(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := source.FetcherFunc(func(ctx context.Context) (*source.Response, error) {
		close(started)
		<-release
		return &source.Response{Metadata: json.RawMessage(`[{"user":{"_id":"a"}, "totalPost": 1}]`)}, nil
	})

	view := NewView(fetcher, fixedClock, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		view.Activate(context.Background())
		close(done)
	}()

	<-started
	if view.Outcome() != OutcomePending {
		t.Errorf("Expected pending outcome while fetching, got %s", view.Outcome())
	}
	if snap := view.Snapshot(); len(snap.Records) != 0 {
		t.Errorf("Expected empty prior state while fetching, got %d records", len(snap.Records))
	}

	close(release)
	<-done

	if snap := view.Snapshot(); snap.Stats.ActiveUsers != 1 {
		t.Errorf("Expected 1 active user after fetch, got %d", snap.Stats.ActiveUsers)
	}
}

func TestState_ReplaceIsWholeValue(t *testing.T) {
	state := NewState(fixedClock)

	first := state.Replace([]models.UserAggregateRecord{{TotalPost: 1}, {TotalPost: 0}})
	if first.Stats.TotalUsers != 2 {
		t.Fatalf("Expected 2 users, got %d", first.Stats.TotalUsers)
	}

	second := state.Replace(nil)
	if second.Records == nil {
		t.Error("nil input should be stored as EmptyCollection")
	}
	if got := state.Snapshot(); got.Stats.TotalUsers != 0 || len(got.Records) != 0 {
		t.Errorf("Expected empty state after replace, got %+v", got)
	}
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/dashboard"
	"github.com/user-dashboard/internal/source"
	"github.com/user-dashboard/internal/stats"
)

// dashboardService activates a fresh dashboard view for every render
type dashboardService struct {
	fetcher source.Fetcher
	clock   stats.Clock
	loc     *time.Location
	log     zerolog.Logger
}

// NewDashboardService creates a DashboardService fetching through fetcher
func NewDashboardService(fetcher source.Fetcher, clock stats.Clock, loc *time.Location, log zerolog.Logger) DashboardService {
	return &dashboardService{
		fetcher: fetcher,
		clock:   clock,
		loc:     loc,
		log:     log,
	}
}

// Render activates a view and builds the requested page
func (s *dashboardService) Render(ctx context.Context, page int) dashboard.Model {
	view := dashboard.NewView(s.fetcher, s.clock, s.log)
	outcome, snap := view.Activate(ctx)
	return dashboard.BuildModel(snap, outcome, page, s.loc)
}

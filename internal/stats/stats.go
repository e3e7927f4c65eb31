// Package stats derives the dashboard summary figures from a collection
// of user aggregate records.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/user-dashboard/internal/models"
)

const (
	// NewUserWindowDays is how many calendar days back a sign-up still counts as new
	NewUserWindowDays = 30

	// ActivePostThreshold is the post count a user must exceed to count as active
	ActivePostThreshold = 0
)

// Clock returns the current time
type Clock func() time.Time

// Cutoff returns the instant NewUserWindowDays calendar days before now.
// The day-of-month is decremented, so the wall-clock time is kept across
// month boundaries and DST changes.
func Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -NewUserWindowDays)
}

// Summarize computes SummaryStats for records as of now.
// It never modifies records and returns the zero value for an empty collection.
func Summarize(records []models.UserAggregateRecord, now time.Time) models.SummaryStats {
	if len(records) == 0 {
		return models.SummaryStats{}
	}

	cutoff := Cutoff(now)
	summary := models.SummaryStats{TotalUsers: len(records)}
	revenue := decimal.Zero

	for i := range records {
		rec := &records[i]
		if rec.User.CreatedAt.After(cutoff) {
			summary.NewUsers++
		}
		if int(rec.TotalPost) > ActivePostThreshold {
			summary.ActiveUsers++
		}
		revenue = revenue.Add(rec.TotalSpent.Decimal)
	}

	summary.TotalRevenue = models.NewAmount(revenue)
	summary.InactiveUsers = summary.TotalUsers - summary.ActiveUsers
	return summary
}

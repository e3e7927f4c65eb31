package dashboard

import (
	"time"

	"github.com/user-dashboard/internal/models"
)

// Column titles of the users table, in display order
var Columns = []string{
	"Full name",
	"Email",
	"Phone",
	"Address",
	"Join date",
	"Posts",
	"Total spent",
}

// Card is one of the summary figures shown above the table
type Card struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
	Tone  string `json:"tone,omitempty"` // "positive" or "negative" colouring
}

// Row is one rendered table row, keyed by the user's ID
type Row struct {
	Key        string `json:"key"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	JoinDate   string `json:"joinDate"`
	TotalPost  int    `json:"totalPost"`
	TotalSpent string `json:"totalSpent"`
}

// Model is everything needed to render one page of the dashboard
type Model struct {
	Outcome    Outcome             `json:"outcome"`
	Stats      models.SummaryStats `json:"stats"`
	Cards      []Card              `json:"cards"`
	Columns    []string            `json:"columns"`
	Rows       []Row               `json:"rows"`
	Pagination Pagination          `json:"pagination"`
}

// BuildCards returns the total users, new users and total revenue cards
func BuildCards(s models.SummaryStats) []Card {
	return []Card{
		{Key: "totalUsers", Title: "Total users", Value: FormatNumber(float64(s.TotalUsers))},
		{Key: "newUsers", Title: "New users", Value: FormatNumber(float64(s.NewUsers)), Tone: "positive"},
		{Key: "totalRevenue", Title: "Total revenue", Value: FormatMoney(s.TotalRevenue.InexactFloat64()), Tone: "negative"},
	}
}

// BuildRows renders records as table rows
func BuildRows(records []models.UserAggregateRecord, loc *time.Location) []Row {
	rows := make([]Row, 0, len(records))
	for i := range records {
		rec := &records[i]
		rows = append(rows, Row{
			Key:        rec.User.ID,
			FullName:   rec.User.FullName,
			Email:      rec.User.Email,
			Phone:      rec.User.Phone,
			Address:    rec.User.Address,
			JoinDate:   FormatJoinDate(rec.User.CreatedAt, loc),
			TotalPost:  int(rec.TotalPost),
			TotalSpent: FormatMoney(rec.TotalSpent.InexactFloat64()),
		})
	}
	return rows
}

// BuildModel assembles the requested page of a snapshot
func BuildModel(snap Snapshot, outcome Outcome, page int, loc *time.Location) Model {
	records, pagination := Paginate(snap.Records, page, PageSize)
	return Model{
		Outcome:    outcome,
		Stats:      snap.Stats,
		Cards:      BuildCards(snap.Stats),
		Columns:    Columns,
		Rows:       BuildRows(records, loc),
		Pagination: pagination,
	}
}

package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UserAggregateRecord is one row of the user aggregates collection:
// the user's profile plus post and spend counters.
type UserAggregateRecord struct {
	User       UserProfile `json:"user"`
	TotalPost  Count       `json:"totalPost"`
	TotalSpent Amount      `json:"totalSpent"`
}

// UserProfile is the profile part of an aggregate record.
// ID is used as the table row key.
type UserProfile struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt Timestamp `json:"createdAt"`
}

// SummaryStats holds the figures derived from a collection of aggregate records
type SummaryStats struct {
	TotalUsers    int     `json:"totalUsers"`
	NewUsers      int     `json:"newUsers"`
	ActiveUsers   int     `json:"activeUsers"`
	InactiveUsers int     `json:"inactiveUsers"`
	TotalRevenue  Amount `json:"totalRevenue"`
}

// Equal reports whether s and o hold the same figures
func (s SummaryStats) Equal(o SummaryStats) bool {
	return s.TotalUsers == o.TotalUsers &&
		s.NewUsers == o.NewUsers &&
		s.ActiveUsers == o.ActiveUsers &&
		s.InactiveUsers == o.InactiveUsers &&
		s.TotalRevenue.Equal(o.TotalRevenue.Decimal)
}

// UsersEnvelope is the response body of GET /v1/users
type UsersEnvelope struct {
	Message    string                `json:"message"`
	StatusCode int                   `json:"statusCode"`
	Metadata   []UserAggregateRecord `json:"metadata"`
}

// NewAggregateRecord builds a record from stored user data and its counters
func NewAggregateRecord(u *User, totalPost int, totalSpent decimal.Decimal) UserAggregateRecord {
	return UserAggregateRecord{
		User: UserProfile{
			ID:        u.ID,
			FullName:  u.FullName,
			Email:     u.Email,
			Phone:     u.Phone,
			Address:   u.Address,
			CreatedAt: NewTimestamp(u.CreatedAt),
		},
		TotalPost:  Count(totalPost),
		TotalSpent: NewAmount(totalSpent),
	}
}

// DecodeCollection decodes the metadata field of a users response.
// Anything other than a JSON array yields an empty collection. An element
// that is not an object becomes a zero-valued record.
func DecodeCollection(raw json.RawMessage) []UserAggregateRecord {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return []UserAggregateRecord{}
	}

	records := make([]UserAggregateRecord, len(elems))
	for i, elem := range elems {
		var rec UserAggregateRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			// Type mismatches leave the fields that did decode in place
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				rec = UserAggregateRecord{}
			}
		}
		records[i] = rec
	}
	return records
}

// Amount is a non-negative money value kept as an exact decimal. It decodes
// from a JSON number or a numeric string; anything else decodes to zero.
// It encodes as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns d as an Amount, clamping negative values to zero
func NewAmount(d decimal.Decimal) Amount {
	if d.IsNegative() {
		return Amount{}
	}
	return Amount{Decimal: d}
}

// AmountFromFloat converts f to an Amount. NaN, infinities and negative
// values become zero.
func AmountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return NewAmount(decimal.NewFromFloat(f))
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	text, ok := lenientNumberText(data)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	*a = NewAmount(d)
	return nil
}

// MarshalJSON implements json.Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Count is a non-negative integer counter with the same lenient decoding
// as Amount. Fractions are truncated toward zero.
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	v := math.Trunc(parseLenientNumber(data))
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	*c = Count(v)
	return nil
}

// parseLenientNumber returns the numeric value of a JSON number or numeric
// string. Null, booleans, objects, non-numeric strings, NaN, infinities and
// negative values all yield 0.
func parseLenientNumber(data []byte) float64 {
	text, ok := lenientNumberText(data)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// lenientNumberText returns the text of a JSON number, or the trimmed
// contents of a JSON string. ok is false for null and empty input.
func lenientNumberText(data []byte) (string, bool) {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return "", false
	}

	if text[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return "", false
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return "", false
		}
	}
	return text, true
}

// Timestamp is a point in time that may be invalid. An invalid timestamp
// never compares after any other time.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// NewTimestamp returns a valid Timestamp for t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// maxTimestampMillis bounds valid timestamps to ±100,000,000 days around
// the Unix epoch, the range a browser Date can represent
const maxTimestampMillis = 8.64e15

var (
	minTimestamp = time.UnixMilli(-maxTimestampMillis).UTC()
	maxTimestamp = time.UnixMilli(maxTimestampMillis).UTC()
)

// timestampLayouts are tried in order when decoding string timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// After reports whether ts is valid and strictly after t
func (ts Timestamp) After(t time.Time) bool {
	return ts.Valid && ts.Time.After(t)
}

// UnmarshalJSON accepts an ISO-8601 string or a number of milliseconds
// since the Unix epoch. Other values produce an invalid Timestamp.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}

	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return nil
	}

	if text[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if t.Before(minTimestamp) || t.After(maxTimestamp) {
					return nil
				}
				*ts = NewTimestamp(t)
				return nil
			}
		}
		return nil
	}

	ms, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxTimestampMillis {
		return nil
	}
	*ts = NewTimestamp(time.UnixMilli(int64(ms)).UTC())
	return nil
}

// MarshalJSON renders a valid Timestamp as RFC3339 and an invalid one as null
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}

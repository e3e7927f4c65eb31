package dashboard

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/user-dashboard/internal/models"
)

// CurrencySuffix follows every formatted money amount
const CurrencySuffix = "VNĐ"

// InvalidDate is shown in place of a join date that could not be parsed
const InvalidDate = "Invalid Date"

// joinDateLayout renders day/month/year without zero padding, as vi-VN does
const joinDateLayout = "2/1/2006"

// displayLocale is used for all number formatting
var displayLocale = language.Vietnamese

// FormatNumber renders v with vi-VN digit grouping, e.g. 1234567 -> "1.234.567"
func FormatNumber(v float64) string {
	// message.Printer is not safe for concurrent use
	p := message.NewPrinter(displayLocale)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatMoney renders an amount with grouping and the currency suffix
func FormatMoney(amount float64) string {
	return FormatNumber(amount) + " " + CurrencySuffix
}

// FormatJoinDate renders ts as a vi-VN short date in loc
func FormatJoinDate(ts models.Timestamp, loc *time.Location) string {
	if !ts.Valid {
		return InvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.Time.In(loc).Format(joinDateLayout)
}

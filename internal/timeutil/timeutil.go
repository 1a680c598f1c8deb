package timeutil

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Date returns the UTC midnight instant for the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Date(y, m, d)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

// EndOfDay returns 23:59:59 UTC of the same calendar date.
func EndOfDay(t time.Time) time.Time {
	d := DateOf(t)
	return d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WeekdaysBetween returns every weekday date in [from, to] inclusive.
func WeekdaysBetween(from, to time.Time) []time.Time {
	var days []time.Time
	for d := DateOf(from); !d.After(DateOf(to)); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

// SecondsToHoursMinutes splits a second count into whole hours and
// remaining minutes. Minutes are always non-negative so negative balances
// render as "-2 hours, 30 minutes" rather than "-2 hours, -30 minutes".
func SecondsToHoursMinutes(seconds int64) (hours, minutes int64) {
	hours = seconds / 3600
	minutes = (seconds % 3600) / 60
	if minutes < 0 {
		minutes = -minutes
	}
	return hours, minutes
}

// HoursToHoursMinutes splits a fractional hour count into whole hours and
// rounded minutes.
func HoursToHoursMinutes(hours decimal.Decimal) (int64, int64) {
	whole := hours.Truncate(0)
	minutes := hours.Sub(whole).Mul(decimal.NewFromInt(60)).Round(0).Abs()
	return whole.IntPart(), minutes.IntPart()
}

// FormatHoursMinutes renders a second count as "N hours, M minutes",
// omitting the minute part when it is zero.
func FormatHoursMinutes(seconds int64) string {
	hours, minutes := SecondsToHoursMinutes(seconds)
	if minutes == 0 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
}

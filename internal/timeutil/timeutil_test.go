package timeutil_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

func TestDateOf(t *testing.T) {
	// 23:30 UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*3600)
	instant := time.Date(2024, 1, 30, 23, 30, 0, 0, loc)

	got := timeutil.DateOf(instant)
	assert.Equal(t, timeutil.Date(2024, time.January, 31), got)
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{timeutil.Date(2024, time.February, 5), true},  // Monday
		{timeutil.Date(2024, time.February, 9), true},  // Friday
		{timeutil.Date(2024, time.February, 10), false}, // Saturday
		{timeutil.Date(2024, time.February, 11), false}, // Sunday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeutil.IsWeekday(tt.date), "date %s", tt.date.Format(time.DateOnly))
	}
}

func TestWeekdaysBetween(t *testing.T) {
	// Thu 2024-02-01 .. Wed 2024-02-07 spans one weekend.
	from := timeutil.Date(2024, time.February, 1)
	to := timeutil.Date(2024, time.February, 7)

	days := timeutil.WeekdaysBetween(from, to)

	want := []time.Time{
		timeutil.Date(2024, time.February, 1),
		timeutil.Date(2024, time.February, 2),
		timeutil.Date(2024, time.February, 5),
		timeutil.Date(2024, time.February, 6),
		timeutil.Date(2024, time.February, 7),
	}
	assert.Equal(t, want, days)
}

func TestWeekdaysBetween_SingleDay(t *testing.T) {
	mon := timeutil.Date(2024, time.February, 5)
	assert.Equal(t, []time.Time{mon}, timeutil.WeekdaysBetween(mon, mon))

	sat := timeutil.Date(2024, time.February, 10)
	assert.Empty(t, timeutil.WeekdaysBetween(sat, sat))
}

func TestSecondsToHoursMinutes(t *testing.T) {
	tests := []struct {
		seconds     int64
		wantHours   int64
		wantMinutes int64
	}{
		{0, 0, 0},
		{3600, 1, 0},
		{5430, 1, 30},
		{27000, 7, 30},
		{-9000, -2, 30}, // minutes are reported unsigned
	}
	for _, tt := range tests {
		h, m := timeutil.SecondsToHoursMinutes(tt.seconds)
		assert.Equal(t, tt.wantHours, h, "hours of %d", tt.seconds)
		assert.Equal(t, tt.wantMinutes, m, "minutes of %d", tt.seconds)
	}
}

func TestHoursToHoursMinutes(t *testing.T) {
	h, m := timeutil.HoursToHoursMinutes(decimal.NewFromFloat(7.5))
	assert.Equal(t, int64(7), h)
	assert.Equal(t, int64(30), m)

	h, m = timeutil.HoursToHoursMinutes(decimal.NewFromFloat(15.0))
	assert.Equal(t, int64(15), h)
	assert.Equal(t, int64(0), m)
}

func TestFormatHoursMinutes(t *testing.T) {
	assert.Equal(t, "7 hours, 30 minutes", timeutil.FormatHoursMinutes(27000))
	assert.Equal(t, "2 hours", timeutil.FormatHoursMinutes(7200))
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, 2, 5, 9, 15, 0, 0, time.UTC)
	want := time.Date(2024, 2, 5, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, want, timeutil.EndOfDay(in))
}

// Package classify normalizes raw Clockify records and the local holiday
// calendar into the uniform calendar-day representation.
package classify

import (
	"sort"
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

// GroupWorkDays groups time entries by the UTC calendar date of their
// start instant, one WorkDay per distinct date, sorted ascending. Input
// order is irrelevant since only durations are summed downstream.
func GroupWorkDays(entries []model.TimeEntry) []model.WorkDay {
	byDate := make(map[time.Time][]model.TimeEntry)
	for _, e := range entries {
		date := timeutil.DateOf(e.Start)
		byDate[date] = append(byDate[date], e)
	}

	days := make([]model.WorkDay, 0, len(byDate))
	for date, items := range byDate {
		days = append(days, model.WorkDay{Day: date, Entries: items})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days
}

// ExpandTimeOff expands each approved time-off request into individual
// days. The provider encodes a request as midnight-to-midnight instants
// where the start-side day is a half-open artifact, so the effective
// range is (start.date + 1 day) .. end.date inclusive. Days before the
// since cutoff are dropped; the request note is copied onto every
// expanded day.
func ExpandTimeOff(items []model.TimeOffItem, since time.Time) []model.Day {
	cutoff := timeutil.DateOf(since)

	var days []model.Day
	for _, item := range items {
		first := timeutil.DateOf(item.Start).AddDate(0, 0, 1)
		last := timeutil.DateOf(item.End)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if d.Before(cutoff) {
				continue
			}
			days = append(days, timeOffDay(item, d))
		}
	}
	return days
}

func timeOffDay(item model.TimeOffItem, date time.Time) model.Day {
	switch item.Type {
	case model.TimeOffSickLeave:
		return model.SickDay{Day: date, Title: item.Note}
	case model.TimeOffVacation:
		return model.HolidayDay{Day: date, Title: item.Note, Subtype: model.HolidayVacation}
	case model.TimeOffParentalLeave:
		return model.HolidayDay{Day: date, Title: item.Note, Subtype: model.HolidayParentalLeave}
	case model.TimeOffDayOff:
		return model.HolidayDay{Day: date, Title: item.Note, Subtype: model.HolidayFlex}
	}
	return model.HolidayDay{Day: date, Title: item.Note, Subtype: model.HolidayUnknown}
}

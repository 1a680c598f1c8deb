// Package reconcile computes the work time balance: it builds the
// expected weekday calendar from the first working day, subtracts
// classified non-working days after override filtering, and compares the
// expected total against the tracked total.
//
// Two inherited quirks are kept on purpose because changing either
// changes the meaning of the balance:
//
//   - BalanceDays always divides by the default 7.5-hour day, even when
//     per-day overrides were used to compute the expected time.
//   - Future vacation and flex days still count as expected working days
//     until actually taken; only held ones are subtracted.
package reconcile

import (
	"errors"
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/settings"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

// ErrNoWorkingDays is returned when the fetched interval holds no tracked
// work: without at least one worked day the balance has no anchor date.
var ErrNoWorkingDays = errors.New("no working days found")

// Engine computes Results for one run.
type Engine struct {
	// Today anchors all future/past comparisons (UTC calendar date).
	Today time.Time
	// IncludeToday controls whether today's data takes part.
	IncludeToday bool
	// StartBalanceMinutes is an optional opening balance.
	StartBalanceMinutes int64
	// Overrides is the per-user override rule set (zero value = none).
	Overrides settings.UserSettings
}

// Calculate reconciles the classified inputs into Results.
func (e Engine) Calculate(publicHolidays []model.Day, workDays []model.WorkDay, daysOff []model.Day) (Results, error) {
	firstWorkingDay, err := earliestWorkDay(workDays)
	if err != nil {
		return Results{}, err
	}

	today := timeutil.DateOf(e.Today)
	allWeekdays := timeutil.WeekdaysBetween(firstWorkingDay, today)

	if !e.IncludeToday {
		workDays = filterWorkDays(workDays, func(wd model.WorkDay) bool {
			return wd.Day.Before(today)
		})
		publicHolidays = filterDays(publicHolidays, func(d model.Day) bool {
			return d.Date().Before(today)
		})
		// Holiday-typed days off are kept as-is; only today's sick
		// leave is dropped, since a sick day can still be recorded for
		// today while the day is in progress.
		daysOff = filterDays(daysOff, func(d model.Day) bool {
			if _, ok := d.(model.SickDay); ok {
				return d.Date().Before(today)
			}
			return true
		})
		allWeekdays = filterDates(allWeekdays, func(d time.Time) bool {
			return d.Before(today)
		})
	}

	longest, err := longestWorkDay(workDays)
	if err != nil {
		return Results{}, err
	}

	publicHolidayDates := e.retainedPublicHolidays(publicHolidays, firstWorkingDay, today)

	sickDays, rest := partitionDays(daysOff, func(d model.Day) bool {
		_, ok := d.(model.SickDay)
		return ok
	})
	sickDates := daysToDates(filterDays(sickDays, func(d model.Day) bool {
		return !e.Overrides.IsIgnored(d)
	}))

	parentalDays, rest := partitionDays(rest, holidayOfType(model.HolidayParentalLeave))
	parentalDates := daysToDates(e.retainWeekdaysNotIgnored(parentalDays))

	vacationDays, rest := partitionDays(rest, holidayOfType(model.HolidayVacation))
	heldVacation, futureVacation := partitionDates(
		daysToDates(e.retainWeekdaysNotIgnored(vacationDays)),
		func(d time.Time) bool {
			return d.Before(today) || (e.IncludeToday && d.Equal(today))
		})

	// Whatever remains is flex time-off.
	heldFlex, futureFlex := partitionDates(
		daysToDates(e.retainWeekdaysNotIgnored(rest)),
		func(d time.Time) bool { return !d.After(today) })

	expectedDates := filterDates(allWeekdays, func(d time.Time) bool {
		return !containsDate(publicHolidayDates, d) &&
			!containsDate(sickDates, d) &&
			!containsDate(heldVacation, d) &&
			!containsDate(parentalDates, d)
	})

	var expectedSeconds int64
	for _, d := range expectedDates {
		if secs, ok := e.Overrides.ExpectedSeconds(d); ok {
			expectedSeconds += secs
		} else {
			expectedSeconds += DefaultDaySeconds
		}
	}

	var workedSeconds int64
	for _, wd := range workDays {
		workedSeconds += wd.Duration()
	}

	balance := 60*e.StartBalanceMinutes + workedSeconds - expectedSeconds

	return Results{
		FirstWorkingDay:                 firstWorkingDay,
		WorkingDayCount:                 len(workDays),
		PublicHolidayCount:              len(publicHolidayDates),
		SickLeaveDayCount:               len(sickDates),
		ParentalLeaveDayCount:           len(parentalDates),
		HeldVacationDayCount:            len(heldVacation),
		FutureVacationDayCount:          len(futureVacation),
		HeldFlexTimeOffDayCount:         len(heldFlex),
		FutureFlexTimeOffDayCount:       len(futureFlex),
		FilteredExpectedWorkingDayCount: len(expectedDates),
		ExpectedWorkingTimeSeconds:      expectedSeconds,
		WorkedTimeSeconds:               workedSeconds,
		LongestWorkingDay:               longest,
		BalanceSeconds:                  balance,
	}, nil
}

// retainedPublicHolidays keeps holidays that are not in the future, fall
// on a weekday, lie strictly after the first working day and are not
// suppressed by an override.
func (e Engine) retainedPublicHolidays(holidays []model.Day, firstWorkingDay, today time.Time) []time.Time {
	var dates []time.Time
	for _, day := range holidays {
		date := day.Date()
		if date.After(today) || !timeutil.IsWeekday(date) {
			continue
		}
		if !firstWorkingDay.Before(date) || e.Overrides.IsIgnored(day) {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// retainWeekdaysNotIgnored drops weekend days and override-suppressed days.
func (e Engine) retainWeekdaysNotIgnored(days []model.Day) []model.Day {
	return filterDays(days, func(d model.Day) bool {
		return timeutil.IsWeekday(d.Date()) && !e.Overrides.IsIgnored(d)
	})
}

func earliestWorkDay(workDays []model.WorkDay) (time.Time, error) {
	if len(workDays) == 0 {
		return time.Time{}, ErrNoWorkingDays
	}
	earliest := workDays[0].Day
	for _, wd := range workDays[1:] {
		if wd.Day.Before(earliest) {
			earliest = wd.Day
		}
	}
	return earliest, nil
}

func longestWorkDay(workDays []model.WorkDay) (model.WorkDay, error) {
	if len(workDays) == 0 {
		return model.WorkDay{}, ErrNoWorkingDays
	}
	longest := workDays[0]
	for _, wd := range workDays[1:] {
		if wd.Duration() > longest.Duration() {
			longest = wd
		}
	}
	return longest, nil
}

func holidayOfType(subtype model.HolidayType) func(model.Day) bool {
	return func(d model.Day) bool {
		hd, ok := d.(model.HolidayDay)
		return ok && hd.Subtype == subtype
	}
}

func filterWorkDays(days []model.WorkDay, keep func(model.WorkDay) bool) []model.WorkDay {
	var out []model.WorkDay
	for _, d := range days {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func filterDays(days []model.Day, keep func(model.Day) bool) []model.Day {
	var out []model.Day
	for _, d := range days {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func filterDates(dates []time.Time, keep func(time.Time) bool) []time.Time {
	var out []time.Time
	for _, d := range dates {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func partitionDays(days []model.Day, match func(model.Day) bool) (matched, rest []model.Day) {
	for _, d := range days {
		if match(d) {
			matched = append(matched, d)
		} else {
			rest = append(rest, d)
		}
	}
	return matched, rest
}

func partitionDates(dates []time.Time, match func(time.Time) bool) (matched, rest []time.Time) {
	for _, d := range dates {
		if match(d) {
			matched = append(matched, d)
		} else {
			rest = append(rest, d)
		}
	}
	return matched, rest
}

func daysToDates(days []model.Day) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date())
	}
	return dates
}

func containsDate(dates []time.Time, date time.Time) bool {
	for _, d := range dates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

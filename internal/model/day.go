package model

import "time"

// DayType tags a classified day for override matching. The values mirror
// the strings accepted in .settings.json ignore rules.
type DayType string

const (
	TypeWorkingDay      DayType = "WorkingDay"
	TypeSickLeave       DayType = "SickLeave"
	TypeParentalLeave   DayType = "ParentalLeave"
	TypePublicHoliday   DayType = "PublicHoliday"
	TypeVacation        DayType = "Vacation"
	TypeFlex            DayType = "Flex"
	TypeSelfImprovement DayType = "SelfImprovement"
	TypeUnknown         DayType = "Unknown"
)

// HolidayType is the subtype of a HolidayDay.
type HolidayType string

const (
	HolidayVacation      HolidayType = "Vacation"
	HolidayPublicHoliday HolidayType = "PublicHoliday"
	HolidayFlex          HolidayType = "Flex"
	HolidayParentalLeave HolidayType = "ParentalLeave"
	HolidayUnknown       HolidayType = "Unknown"
)

// Day is the uniform calendar-day representation produced by
// classification. It is a closed set: WorkDay, HolidayDay and SickDay
// are the only implementations, so consumers can type-switch
// exhaustively.
type Day interface {
	// Date returns the calendar date (UTC midnight) of the day.
	Date() time.Time
	// Type maps the day to its override-policy tag.
	Type() DayType

	day()
}

// WorkDay is a date with the time entries tracked on it.
type WorkDay struct {
	Day     time.Time
	Entries []TimeEntry
}

func (d WorkDay) Date() time.Time { return d.Day }
func (d WorkDay) Type() DayType   { return TypeWorkingDay }
func (d WorkDay) day()            {}

// Duration returns the summed entry durations in whole seconds.
func (d WorkDay) Duration() int64 {
	var total int64
	for _, e := range d.Entries {
		total += e.DurationSeconds()
	}
	return total
}

// ItemCount returns the number of entries tracked on the day.
func (d WorkDay) ItemCount() int { return len(d.Entries) }

// HolidayDay is a non-working day: public holiday, vacation, parental
// leave or flex time-off.
type HolidayDay struct {
	Day     time.Time
	Title   string
	Subtype HolidayType
}

func (d HolidayDay) Date() time.Time { return d.Day }
func (d HolidayDay) day()            {}

func (d HolidayDay) Type() DayType {
	switch d.Subtype {
	case HolidayVacation:
		return TypeVacation
	case HolidayPublicHoliday:
		return TypePublicHoliday
	case HolidayFlex:
		return TypeFlex
	case HolidayParentalLeave:
		return TypeParentalLeave
	case HolidayUnknown:
		return TypeUnknown
	}
	return TypeUnknown
}

// SickDay is a day of approved sick leave.
type SickDay struct {
	Day   time.Time
	Title string
}

func (d SickDay) Date() time.Time { return d.Day }
func (d SickDay) Type() DayType   { return TypeSickLeave }
func (d SickDay) day()            {}

package reconcile

import (
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
)

// DefaultDaySeconds is the expected working duration of one day when no
// override applies (7.5 hours).
const DefaultDaySeconds int64 = 27000

// Results is the immutable outcome of one reconciliation run.
type Results struct {
	FirstWorkingDay time.Time

	WorkingDayCount                 int
	PublicHolidayCount              int
	SickLeaveDayCount               int
	ParentalLeaveDayCount           int
	HeldVacationDayCount            int
	FutureVacationDayCount          int
	HeldFlexTimeOffDayCount         int
	FutureFlexTimeOffDayCount       int
	FilteredExpectedWorkingDayCount int

	ExpectedWorkingTimeSeconds int64
	WorkedTimeSeconds          int64
	LongestWorkingDay          model.WorkDay
	BalanceSeconds             int64
}

// TotalFlexTimeOffDayCount sums held and future flex time-off days.
func (r Results) TotalFlexTimeOffDayCount() int {
	return r.HeldFlexTimeOffDayCount + r.FutureFlexTimeOffDayCount
}

// UnfilteredExpectedWorkingDayCount is the expected working day count
// before public holidays and sick leaves were deducted.
func (r Results) UnfilteredExpectedWorkingDayCount() int {
	return r.FilteredExpectedWorkingDayCount + r.PublicHolidayCount + r.SickLeaveDayCount
}

// TotalWeekdaysSinceStart counts all accounted weekdays since the first
// working day.
func (r Results) TotalWeekdaysSinceStart() int {
	return r.PublicHolidayCount + r.SickLeaveDayCount + r.WorkingDayCount
}

// BalanceDays converts the balance to whole working days. The default
// 7.5-hour day is used as the denominator even when per-day overrides
// contributed to the expected time; see the package doc for why this
// approximation is kept.
func (r Results) BalanceDays() int64 {
	return r.BalanceSeconds / DefaultDaySeconds
}

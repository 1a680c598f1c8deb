// Package render turns a Results snapshot into the terminal report.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/Lemminkyinen/clockify-flex/internal/reconcile"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

var defaultDayHours = decimal.NewFromFloat(7.5)

// WriteTable renders the balance breakdown table. startBalanceMinutes is
// nil when no opening balance was supplied.
func WriteTable(w io.Writer, r reconcile.Results, startBalanceMinutes *int64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Item", "Days", "Hours & minutes"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	appendDayRow(table, "Public holidays (on weekdays)", r.PublicHolidayCount)
	appendDayRow(table, "Held parental leave weekdays", r.ParentalLeaveDayCount)
	appendDayRow(table, "Held vacation weekdays", r.HeldVacationDayCount)
	appendDayRow(table, "Future vacation weekdays", r.FutureVacationDayCount)
	appendDayRow(table, "Held flex time off", r.HeldFlexTimeOffDayCount)
	appendDayRow(table, "Future flex time off", r.FutureFlexTimeOffDayCount)
	appendDayRow(table, "Sick leave time", r.SickLeaveDayCount)

	table.Append([]string{
		"Expected working time (sick leaves & public holidays deducted)",
		strconv.Itoa(r.FilteredExpectedWorkingDayCount),
		timeutil.FormatHoursMinutes(r.ExpectedWorkingTimeSeconds),
	})
	table.Append([]string{
		"Total working time",
		strconv.Itoa(r.WorkingDayCount),
		timeutil.FormatHoursMinutes(r.WorkedTimeSeconds),
	})

	if startBalanceMinutes != nil {
		table.Append([]string{
			"Start balance", "",
			timeutil.FormatHoursMinutes(*startBalanceMinutes * 60),
		})
	}

	table.Append([]string{
		"Work time balance",
		fmt.Sprintf("%d+", r.BalanceDays()),
		timeutil.FormatHoursMinutes(r.BalanceSeconds),
	})

	table.Render()
}

// appendDayRow renders a category counted in days, with the hour column
// derived from the default 7.5-hour day.
func appendDayRow(table *tablewriter.Table, label string, days int) {
	hours, minutes := timeutil.HoursToHoursMinutes(
		defaultDayHours.Mul(decimal.NewFromInt(int64(days))))
	cell := fmt.Sprintf("%d hours", hours)
	if minutes != 0 {
		cell = fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	}
	table.Append([]string{label, strconv.Itoa(days), cell})
}

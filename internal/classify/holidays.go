package classify

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

//go:embed holidays.json
var defaultHolidays []byte

// holidayRecord is one entry of the holiday calendar file.
type holidayRecord struct {
	Type  model.HolidayType `json:"type"`
	Title string            `json:"title"`
	Date  string            `json:"date"`
}

// PublicHolidays loads the holiday calendar and returns the holidays
// falling on a weekday on or after since. Weekend holidays are excluded
// since they carry no balance impact. When path is empty the embedded
// default calendar is used. Format errors are fatal: the calendar is
// required input.
func PublicHolidays(path string, since time.Time) ([]model.Day, error) {
	data := defaultHolidays
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading holiday calendar %s: %w", path, err)
		}
	}

	var records []holidayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing holiday calendar: %w", err)
	}

	cutoff := timeutil.DateOf(since)
	var days []model.Day
	for _, rec := range records {
		date, err := time.ParseInLocation(time.DateOnly, rec.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday calendar: date %q: %w", rec.Date, err)
		}
		if !timeutil.IsWeekday(date) || date.Before(cutoff) {
			continue
		}
		days = append(days, model.HolidayDay{Day: date, Title: rec.Title, Subtype: rec.Type})
	}
	return days, nil
}

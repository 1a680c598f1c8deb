// Package settings holds optional per-user override rules loaded from a
// local JSON file: windows that suppress classified days and windows that
// replace the default expected hours per day.
package settings

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

// DefaultFile is the conventional override file path.
const DefaultFile = ".settings.json"

var secondsPerHour = decimal.NewFromInt(3600)

// Window is an inclusive date range. The JSON dates are plain
// YYYY-MM-DD values.
type Window struct {
	DateStart civilDate `json:"dateStart"`
	DateEnd   civilDate `json:"dateEnd"`
}

// NewWindow builds an inclusive window from two dates.
func NewWindow(start, end time.Time) Window {
	return Window{
		DateStart: civilDate{timeutil.DateOf(start)},
		DateEnd:   civilDate{timeutil.DateOf(end)},
	}
}

// Contains reports whether the window includes the given date.
func (w Window) Contains(date time.Time) bool {
	d := timeutil.DateOf(date)
	return !d.Before(w.DateStart.Time) && !d.After(w.DateEnd.Time)
}

// IgnoreItem suppresses days of one type within a date range.
type IgnoreItem struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        model.DayType `json:"type"`
	Window
}

// ExpectedWorkingHours overrides the daily expected duration within a
// date range.
type ExpectedWorkingHours struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	HoursPerDay decimal.Decimal `json:"hoursPerDay"`
	Window
}

// UserSettings is the override rule set of a single user.
type UserSettings struct {
	Email                string                 `json:"email"`
	IgnoreItems          []IgnoreItem           `json:"ignoreItems"`
	ExpectedWorkingHours []ExpectedWorkingHours `json:"expectedWorkingHours"`
}

// IsIgnored reports whether any ignore window contains the day's date
// and matches its classified type.
func (s UserSettings) IsIgnored(day model.Day) bool {
	for _, item := range s.IgnoreItems {
		if item.Contains(day.Date()) && item.Type == day.Type() {
			slog.Info("ignoring day", "date", day.Date().Format(time.DateOnly), "type", day.Type(), "rule", item.Name)
			return true
		}
	}
	return false
}

// ExpectedSeconds returns the overridden expected working duration for
// the date from the first matching window, truncated to whole seconds.
// ok is false when no window matches and the caller's default applies.
func (s UserSettings) ExpectedSeconds(date time.Time) (seconds int64, ok bool) {
	for _, w := range s.ExpectedWorkingHours {
		if w.Contains(date) {
			return w.HoursPerDay.Mul(secondsPerHour).IntPart(), true
		}
	}
	return 0, false
}

// Settings is the full override file content, keyed by user email.
type Settings struct {
	users []UserSettings
}

// Load reads the override file. Absence or any read/parse failure is not
// an error: overrides degrade gracefully to an empty rule set.
func Load(path string) Settings {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read extra settings", "path", path, "error", err)
		return Settings{}
	}
	var users []UserSettings
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("could not parse extra settings", "path", path, "error", err)
		return Settings{}
	}
	return Settings{users: users}
}

// ForUser returns the rule set for the given email, or an empty rule set
// when none is configured.
func (s Settings) ForUser(email string) UserSettings {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return UserSettings{}
}

// civilDate unmarshals a YYYY-MM-DD JSON string as a UTC midnight instant.
type civilDate struct {
	time.Time
}

func (d *civilDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d civilDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

package model

import (
	"fmt"
	"time"
)

// User is the Clockify identity resolved from an API token.
// IDs are the provider's lowercase-hex object identifiers.
type User struct {
	ID        string
	Workspace string
	Name      string
	Email     string
}

// TimeEntry is a single tracked work session. Start and End are
// UTC-normalized instants; an entry never spans calendar days in the
// source data.
type TimeEntry struct {
	Description string
	Project     string
	UserID      string
	Start       time.Time
	End         time.Time
}

// DurationSeconds returns the tracked length of the entry in whole seconds.
func (e TimeEntry) DurationSeconds() int64 {
	return int64(e.End.Sub(e.Start) / time.Second)
}

// TimeOffType tags an approved leave request by its Clockify policy.
type TimeOffType string

const (
	TimeOffDayOff        TimeOffType = "DayOff"
	TimeOffSickLeave     TimeOffType = "SickLeave"
	TimeOffVacation      TimeOffType = "Vacation"
	TimeOffParentalLeave TimeOffType = "ParentalLeave"
)

// TimeOffTypeFromPolicy maps a Clockify policy name to a TimeOffType.
// Unknown policy names are a hard error: a new leave category must be
// classified before it can affect the balance.
func TimeOffTypeFromPolicy(policyName string) (TimeOffType, error) {
	switch policyName {
	case "Day off":
		return TimeOffDayOff, nil
	case "Sick leave":
		return TimeOffSickLeave, nil
	case "Vacation":
		return TimeOffVacation, nil
	case "Parental leave":
		return TimeOffParentalLeave, nil
	default:
		return "", fmt.Errorf("unknown policyName: %s", policyName)
	}
}

// TimeOffItem is one approved leave request spanning a half-open day
// range. Start/End encode the provider's midnight-to-midnight boundaries;
// see classify.ExpandTimeOff for the effective day range.
type TimeOffItem struct {
	Note   string
	UserID string
	Type   TimeOffType
	Start  time.Time
	End    time.Time
}

package clockify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
)

// Parsing is deliberately strict: a missing or malformed field in a
// remote record means the response shape is not the one this tool was
// built against, and the whole run must abort rather than produce a
// balance from partial data.

func missingField(object, field string) error {
	return fmt.Errorf("%s: missing or invalid field %q", object, field)
}

// isHexID reports whether s looks like a Clockify object ID
// (non-empty lowercase hex).
func isHexID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func parseInstant(object, field string, value *string) (time.Time, error) {
	if value == nil {
		return time.Time{}, missingField(object, field)
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: field %q: %w", object, field, err)
	}
	return t.UTC(), nil
}

func parseUser(data []byte) (model.User, error) {
	var raw struct {
		ID              *string `json:"id"`
		ActiveWorkspace *string `json:"activeWorkspace"`
		Name            *string `json:"name"`
		Email           *string `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.User{}, fmt.Errorf("decoding user: %w", err)
	}
	if raw.ID == nil || !isHexID(*raw.ID) {
		return model.User{}, missingField("user", "id")
	}
	if raw.ActiveWorkspace == nil || !isHexID(*raw.ActiveWorkspace) {
		return model.User{}, missingField("user", "activeWorkspace")
	}
	if raw.Name == nil {
		return model.User{}, missingField("user", "name")
	}
	if raw.Email == nil {
		return model.User{}, missingField("user", "email")
	}
	return model.User{
		ID:        *raw.ID,
		Workspace: *raw.ActiveWorkspace,
		Name:      *raw.Name,
		Email:     *raw.Email,
	}, nil
}

func parseTimeEntries(data []byte) ([]model.TimeEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding time entries: %w", err)
	}
	entries := make([]model.TimeEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := parseTimeEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseTimeEntry(data []byte) (model.TimeEntry, error) {
	var raw struct {
		Description *string `json:"description"`
		Project     *struct {
			Name *string `json:"name"`
		} `json:"project"`
		User *struct {
			ID *string `json:"id"`
		} `json:"user"`
		TimeInterval *struct {
			Start *string `json:"start"`
			End   *string `json:"end"`
		} `json:"timeInterval"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.TimeEntry{}, fmt.Errorf("decoding time entry: %w", err)
	}
	if raw.Description == nil {
		return model.TimeEntry{}, missingField("time entry", "description")
	}
	if raw.Project == nil || raw.Project.Name == nil {
		return model.TimeEntry{}, missingField("time entry", "project.name")
	}
	if raw.User == nil || raw.User.ID == nil {
		return model.TimeEntry{}, missingField("time entry", "user.id")
	}
	if raw.TimeInterval == nil {
		return model.TimeEntry{}, missingField("time entry", "timeInterval")
	}
	start, err := parseInstant("time entry", "timeInterval.start", raw.TimeInterval.Start)
	if err != nil {
		return model.TimeEntry{}, err
	}
	end, err := parseInstant("time entry", "timeInterval.end", raw.TimeInterval.End)
	if err != nil {
		return model.TimeEntry{}, err
	}
	return model.TimeEntry{
		Description: *raw.Description,
		Project:     *raw.Project.Name,
		UserID:      *raw.User.ID,
		Start:       start,
		End:         end,
	}, nil
}

func parseTimeOffResponse(data []byte) ([]model.TimeOffItem, error) {
	var raw struct {
		Count    *int              `json:"count"`
		Requests []json.RawMessage `json:"requests"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding time-off response: %w", err)
	}
	if raw.Count == nil {
		return nil, missingField("time-off response", "count")
	}
	if raw.Requests == nil {
		return nil, missingField("time-off response", "requests")
	}
	items := make([]model.TimeOffItem, 0, *raw.Count)
	for _, r := range raw.Requests {
		item, err := parseTimeOffItem(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseTimeOffItem(data []byte) (model.TimeOffItem, error) {
	var raw struct {
		TimeUnit      *string `json:"timeUnit"`
		UserID        *string `json:"userId"`
		PolicyName    *string `json:"policyName"`
		Note          *string `json:"note"`
		TimeOffPeriod *struct {
			Period *struct {
				Start *string `json:"start"`
				End   *string `json:"end"`
			} `json:"period"`
			HalfDay *bool `json:"halfDay"`
		} `json:"timeOffPeriod"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.TimeOffItem{}, fmt.Errorf("decoding time-off request: %w", err)
	}
	if raw.TimeUnit == nil {
		return model.TimeOffItem{}, missingField("time-off request", "timeUnit")
	}
	if *raw.TimeUnit != "DAYS" {
		return model.TimeOffItem{}, fmt.Errorf("time-off request: time unit %q is not supported, expected DAYS", *raw.TimeUnit)
	}
	if raw.UserID == nil {
		return model.TimeOffItem{}, missingField("time-off request", "userId")
	}
	if raw.PolicyName == nil {
		return model.TimeOffItem{}, missingField("time-off request", "policyName")
	}
	offType, err := model.TimeOffTypeFromPolicy(*raw.PolicyName)
	if err != nil {
		return model.TimeOffItem{}, fmt.Errorf("time-off request: %w", err)
	}
	if raw.TimeOffPeriod == nil || raw.TimeOffPeriod.Period == nil {
		return model.TimeOffItem{}, missingField("time-off request", "timeOffPeriod.period")
	}
	if raw.TimeOffPeriod.HalfDay == nil {
		return model.TimeOffItem{}, missingField("time-off request", "timeOffPeriod.halfDay")
	}
	if *raw.TimeOffPeriod.HalfDay {
		return model.TimeOffItem{}, fmt.Errorf("time-off request: half-day requests are not supported")
	}
	start, err := parseInstant("time-off request", "period.start", raw.TimeOffPeriod.Period.Start)
	if err != nil {
		return model.TimeOffItem{}, err
	}
	end, err := parseInstant("time-off request", "period.end", raw.TimeOffPeriod.Period.End)
	if err != nil {
		return model.TimeOffItem{}, err
	}

	var note string
	if raw.Note != nil {
		note = *raw.Note
	}
	return model.TimeOffItem{
		Note:   note,
		UserID: *raw.UserID,
		Type:   offType,
		Start:  start,
		End:    end,
	}, nil
}

package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

func TestTimeOffTypeFromPolicy(t *testing.T) {
	tests := []struct {
		policy string
		want   model.TimeOffType
	}{
		{"Day off", model.TimeOffDayOff},
		{"Sick leave", model.TimeOffSickLeave},
		{"Vacation", model.TimeOffVacation},
		{"Parental leave", model.TimeOffParentalLeave},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			got, err := model.TimeOffTypeFromPolicy(tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := model.TimeOffTypeFromPolicy("Sabbatical")
	assert.ErrorContains(t, err, "Sabbatical")
}

func TestWorkDayDurationSumsEntries(t *testing.T) {
	day := timeutil.Date(2024, time.February, 5)
	wd := model.WorkDay{
		Day: day,
		Entries: []model.TimeEntry{
			{Start: day.Add(8 * time.Hour), End: day.Add(11 * time.Hour)},
			{Start: day.Add(12 * time.Hour), End: day.Add(16*time.Hour + 30*time.Minute)},
		},
	}

	assert.Equal(t, int64(7*3600+1800), wd.Duration())
	assert.Equal(t, 2, wd.ItemCount())
	assert.Equal(t, model.TypeWorkingDay, wd.Type())
	assert.Equal(t, day, wd.Date())
}

func TestHolidayDayTypeFollowsSubtype(t *testing.T) {
	date := timeutil.Date(2024, time.February, 5)
	tests := []struct {
		subtype model.HolidayType
		want    model.DayType
	}{
		{model.HolidayPublicHoliday, model.TypePublicHoliday},
		{model.HolidayVacation, model.TypeVacation},
		{model.HolidayParentalLeave, model.TypeParentalLeave},
		{model.HolidayFlex, model.TypeFlex},
	}
	for _, tt := range tests {
		day := model.HolidayDay{Day: date, Subtype: tt.subtype}
		assert.Equal(t, tt.want, day.Type())
	}
}

func TestSickDayType(t *testing.T) {
	day := model.SickDay{Day: timeutil.Date(2024, time.February, 5)}
	assert.Equal(t, model.TypeSickLeave, day.Type())
}

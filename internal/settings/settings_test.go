package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/settings"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

const settingsJSON = `[
  {
    "email": "test@example.com",
    "ignoreItems": [
      {
        "name": "military refresher",
        "description": "ignore sick leave used for the refresher",
        "dateStart": "2024-02-01",
        "dateEnd": "2024-02-05",
        "type": "SickLeave"
      }
    ],
    "expectedWorkingHours": [
      {
        "name": "part time",
        "description": "80% hours in March",
        "dateStart": "2024-03-01",
        "dateEnd": "2024-03-31",
        "hoursPerDay": 6
      },
      {
        "name": "overlap",
        "description": "never reached, first match wins",
        "dateStart": "2024-03-15",
        "dateEnd": "2024-04-15",
        "hoursPerDay": 2
      }
    ]
  }
]`

func loadTestSettings(t *testing.T) settings.Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".settings.json")
	require.NoError(t, os.WriteFile(path, []byte(settingsJSON), 0o600))
	return settings.Load(path)
}

func TestLoad_MissingFileDegradesToEmpty(t *testing.T) {
	s := settings.Load(filepath.Join(t.TempDir(), "missing.json"))
	user := s.ForUser("anyone@example.com")

	assert.False(t, user.IsIgnored(model.SickDay{Day: timeutil.Date(2024, time.February, 3)}))
	_, ok := user.ExpectedSeconds(timeutil.Date(2024, time.March, 10))
	assert.False(t, ok)
}

func TestLoad_MalformedFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	s := settings.Load(path)
	user := s.ForUser("test@example.com")
	assert.Empty(t, user.Email)
}

func TestForUser_SelectsByEmail(t *testing.T) {
	s := loadTestSettings(t)

	assert.Equal(t, "test@example.com", s.ForUser("test@example.com").Email)
	assert.Empty(t, s.ForUser("other@example.com").Email)
}

func TestIsIgnored(t *testing.T) {
	user := loadTestSettings(t).ForUser("test@example.com")

	tests := []struct {
		name string
		day  model.Day
		want bool
	}{
		{"sick day inside window", model.SickDay{Day: timeutil.Date(2024, time.February, 3)}, true},
		{"window start is inclusive", model.SickDay{Day: timeutil.Date(2024, time.February, 1)}, true},
		{"window end is inclusive", model.SickDay{Day: timeutil.Date(2024, time.February, 5)}, true},
		{"sick day outside window", model.SickDay{Day: timeutil.Date(2024, time.February, 6)}, false},
		{"matching date, wrong type", model.HolidayDay{Day: timeutil.Date(2024, time.February, 3), Subtype: model.HolidayVacation}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, user.IsIgnored(tt.day))
		})
	}
}

func TestExpectedSeconds(t *testing.T) {
	user := loadTestSettings(t).ForUser("test@example.com")

	secs, ok := user.ExpectedSeconds(timeutil.Date(2024, time.March, 10))
	require.True(t, ok)
	assert.Equal(t, int64(6*3600), secs)

	// Overlapping windows: the first match wins.
	secs, ok = user.ExpectedSeconds(timeutil.Date(2024, time.March, 20))
	require.True(t, ok)
	assert.Equal(t, int64(6*3600), secs)

	// Outside every window the caller's default applies.
	_, ok = user.ExpectedSeconds(timeutil.Date(2024, time.May, 1))
	assert.False(t, ok)
}

func TestExpectedSeconds_FractionalHoursTruncateToSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".settings.json")
	content := `[{
		"email": "test@example.com",
		"ignoreItems": [],
		"expectedWorkingHours": [{
			"name": "odd hours", "description": "",
			"dateStart": "2024-01-01", "dateEnd": "2024-12-31",
			"hoursPerDay": 7.6
		}]
	}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	user := settings.Load(path).ForUser("test@example.com")
	secs, ok := user.ExpectedSeconds(timeutil.Date(2024, time.June, 3))
	require.True(t, ok)
	assert.Equal(t, int64(27360), secs)
}

package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{"2023-01-01", timeutil.Date(2023, time.January, 1), false},
		{"2024-06-15", timeutil.Date(2024, time.June, 15), false},
		{"2022-12-31", time.Time{}, true},
		{"2024-13-01", time.Time{}, true},
		{"15.06.2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseStartDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStartDate_BoundaryErrorMessage(t *testing.T) {
	_, err := parseStartDate("2022-12-31")
	require.Error(t, err)
	assert.Equal(t, "Input date has to be equal or greater than 2023-01-01!", err.Error())
}

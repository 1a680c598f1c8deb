package report_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lemminkyinen/clockify-flex/internal/clockify"
	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/report"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

const (
	testUserID    = "5f1a2b3c4d5e6f7a8b9c0d1e"
	testWorkspace = "0a1b2c3d4e5f6a7b8c9d0e1f"
)

func newTestServer(t *testing.T, timesheet, timeOff http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":%q,"activeWorkspace":%q,"name":"Test User","email":"test@example.com"}`,
			testUserID, testWorkspace)
	})
	mux.HandleFunc(fmt.Sprintf("/workspaces/%s/timeEntries/users/%s/timesheet", testWorkspace, testUserID), timesheet)
	mux.HandleFunc(fmt.Sprintf("/workspaces/%s/time-off/requests", testWorkspace), timeOff)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newResolvedClient(t *testing.T, serverURL string) *clockify.Client {
	t.Helper()
	c := clockify.New("token",
		clockify.WithBaseURL(serverURL),
		clockify.WithSleep(func(time.Duration) {}),
	)
	_, err := c.ResolveUser(context.Background())
	require.NoError(t, err)
	return c
}

func writeHolidays(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFetch_JoinsAllThreeLoads(t *testing.T) {
	since := timeutil.Today().AddDate(0, 0, -10)
	day := since.AddDate(0, 0, 1).Format("2006-01-02")
	offStart := since.AddDate(0, 0, 2)

	srv := newTestServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `[{"description":"work","project":{"name":"Backend"},"user":{"id":%q},"timeInterval":{"start":"%sT08:00:00Z","end":"%sT16:00:00Z"}}]`,
				testUserID, day, day)
		},
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"count":1,"requests":[{"userId":%q,"policyName":"Vacation","note":"trip","timeUnit":"DAYS","timeOffPeriod":{"halfDay":false,"period":{"start":%q,"end":%q}}}]}`,
				testUserID,
				offStart.Add(-2*time.Hour).Format(time.RFC3339),
				offStart.Add(22*time.Hour-time.Second).Format(time.RFC3339))
		},
	)
	holidays := writeHolidays(t, fmt.Sprintf(
		`[{"type":"PublicHoliday","title":"Test Holiday","date":%q}]`,
		since.AddDate(0, 0, 3).Format("2006-01-02")))

	c := newResolvedClient(t, srv.URL)
	data, err := report.Fetch(context.Background(), c, holidays, since)
	require.NoError(t, err)

	require.Len(t, data.WorkDays, 1)
	assert.Equal(t, int64(8*3600), data.WorkDays[0].Duration())

	require.Len(t, data.DaysOff, 1)
	assert.Equal(t, model.TypeVacation, data.DaysOff[0].Type())
	assert.Equal(t, timeutil.DateOf(offStart), data.DaysOff[0].Date())

	if timeutil.IsWeekday(since.AddDate(0, 0, 3)) {
		require.Len(t, data.PublicHolidays, 1)
	} else {
		assert.Empty(t, data.PublicHolidays)
	}

	assert.Equal(t, data.WorkDays[0].ItemCount()+len(data.DaysOff), data.ItemCount())
}

func TestFetch_AnyLoadFailureAborts(t *testing.T) {
	srv := newTestServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"message":"broken"}`)
		},
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count":0,"requests":[]}`)
		},
	)
	holidays := writeHolidays(t, `[]`)

	c := newResolvedClient(t, srv.URL)
	_, err := report.Fetch(context.Background(), c, holidays, timeutil.Today().AddDate(0, 0, -5))

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to get working days")
}

func TestFetch_HolidayFileFailureAborts(t *testing.T) {
	srv := newTestServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "[]")
		},
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"count":0,"requests":[]}`)
		},
	)

	c := newResolvedClient(t, srv.URL)
	_, err := report.Fetch(context.Background(), c,
		filepath.Join(t.TempDir(), "missing.json"),
		timeutil.Today().AddDate(0, 0, -5))

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to get public holidays")
}

package clockify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lemminkyinen/clockify-flex/internal/model"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

const (
	// maxWindowDays keeps each query under the provider's 999-hour
	// interval limit (about 41.6 days).
	maxWindowDays = 41
	// maxConcurrentWindows bounds in-flight requests per batch.
	maxConcurrentWindows = 18
	// batchPause is the courtesy throttle between batches on large fetches.
	batchPause = time.Second
)

// rfc3339Millis matches the timestamp format the timesheet endpoint expects.
const rfc3339Millis = "2006-01-02T15:04:05.000Z"

// window is one [Start, End) query interval.
type window struct {
	Start time.Time
	End   time.Time
}

// splitWindows decomposes [start, end) into consecutive windows of at
// most maxWindowDays each. The end of each window is the start of the
// next; the final window is clamped to end.
func splitWindows(start, end time.Time) []window {
	var windows []window
	for cur := start; cur.Before(end); {
		next := cur.AddDate(0, 0, maxWindowDays)
		if next.After(end) {
			next = end
		}
		windows = append(windows, window{Start: cur, End: next})
		cur = next
	}
	return windows
}

// WorkItemsSince fetches all time entries from the given date up to the
// end of today. The interval is split into provider-sized windows issued
// in batches of at most 18 concurrent requests; a flat 1-second pause
// separates batches once more than one batch's worth of responses has
// accumulated. Any transport or parse failure aborts the whole fetch.
// Relative order across windows is not preserved; grouping downstream is
// order-independent.
func (c *Client) WorkItemsSince(ctx context.Context, since time.Time) ([]model.TimeEntry, error) {
	if c.user.ID == "" {
		return nil, ErrUserNotResolved
	}

	start := timeutil.DateOf(since)
	end := timeutil.EndOfDay(time.Now().UTC())
	windows := splitWindows(start, end)
	slog.Debug("fetching work items", "since", start.Format(time.DateOnly), "windows", len(windows))

	results := make([][]model.TimeEntry, len(windows))
	fetched := 0
	for batchStart := 0; batchStart < len(windows); batchStart += maxConcurrentWindows {
		batchEnd := min(batchStart+maxConcurrentWindows, len(windows))
		batch := windows[batchStart:batchEnd]

		g, gctx := errgroup.WithContext(ctx)
		for i, w := range batch {
			w := w
			idx := batchStart + i
			g.Go(func() error {
				entries, err := c.fetchWindow(gctx, w)
				if err != nil {
					return err
				}
				results[idx] = entries
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		fetched += len(batch)
		if fetched > maxConcurrentWindows && batchEnd < len(windows) {
			c.sleep(batchPause)
		}
	}

	var entries []model.TimeEntry
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

// fetchWindow issues one timesheet query. Responses carrying the
// provider's empty-payload markers are discarded without parsing; any
// other failure is a hard error.
func (c *Client) fetchWindow(ctx context.Context, w window) ([]model.TimeEntry, error) {
	endpoint, err := url.JoinPath(c.baseURL,
		"workspaces", c.user.Workspace, "timeEntries", "users", c.user.ID, "timesheet")
	if err != nil {
		return nil, fmt.Errorf("building timesheet URL: %w", err)
	}

	q := url.Values{}
	q.Set("start", w.Start.UTC().Format(rfc3339Millis))
	q.Set("end", w.End.UTC().Format(rfc3339Millis))
	q.Set("in-progress", "false")
	q.Set("page", "0")
	q.Set("page-size", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating timesheet request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timesheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if emptyPayload(resp) {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading timesheet response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clockify API error %d: %s", resp.StatusCode, body)
	}

	c.snapshots.Dump("timesheet", body)
	return parseTimeEntries(body)
}

// emptyPayload reports whether the response carries one of the provider's
// known empty-payload markers: chunked transfer encoding with no
// content-length, or a content-length of exactly 0 or 2 bytes without a
// chunked marker.
func emptyPayload(resp *http.Response) bool {
	chunked := false
	for _, te := range resp.TransferEncoding {
		if te == "chunked" {
			chunked = true
			break
		}
	}
	if chunked {
		return resp.ContentLength < 0
	}
	return resp.ContentLength == 0 || resp.ContentLength == 2
}

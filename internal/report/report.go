// Package report joins the three independent data loads a balance run
// needs: the local public-holiday calendar, the windowed work-item fetch
// and the time-off fetch.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lemminkyinen/clockify-flex/internal/classify"
	"github.com/Lemminkyinen/clockify-flex/internal/clockify"
	"github.com/Lemminkyinen/clockify-flex/internal/model"
)

// Data is the classified input of one reconciliation run.
type Data struct {
	PublicHolidays []model.Day
	WorkDays       []model.WorkDay
	DaysOff        []model.Day
}

// ItemCount counts the fetched remote items for progress reporting.
func (d Data) ItemCount() int {
	count := len(d.DaysOff)
	for _, wd := range d.WorkDays {
		count += wd.ItemCount()
	}
	return count
}

// Fetch runs the three loads concurrently and joins them fail-fast: an
// error in any one aborts the whole run with no partial aggregation.
// Each goroutine writes only its own slot of the result.
func Fetch(ctx context.Context, client *clockify.Client, holidaysPath string, since time.Time) (Data, error) {
	var data Data

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		holidays, err := classify.PublicHolidays(holidaysPath, since)
		if err != nil {
			return fmt.Errorf("failed to get public holidays: %w", err)
		}
		data.PublicHolidays = holidays
		return nil
	})
	g.Go(func() error {
		entries, err := client.WorkItemsSince(gctx, since)
		if err != nil {
			return fmt.Errorf("failed to get working days: %w", err)
		}
		data.WorkDays = classify.GroupWorkDays(entries)
		return nil
	})
	g.Go(func() error {
		items, err := client.TimeOffItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to get days off: %w", err)
		}
		data.DaysOff = classify.ExpandTimeOff(items, since)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return data, nil
}

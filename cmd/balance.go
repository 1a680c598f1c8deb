package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/Lemminkyinen/clockify-flex/internal/cache"
	"github.com/Lemminkyinen/clockify-flex/internal/clockify"
	"github.com/Lemminkyinen/clockify-flex/internal/config"
	"github.com/Lemminkyinen/clockify-flex/internal/reconcile"
	"github.com/Lemminkyinen/clockify-flex/internal/render"
	"github.com/Lemminkyinen/clockify-flex/internal/report"
	"github.com/Lemminkyinen/clockify-flex/internal/settings"
	"github.com/Lemminkyinen/clockify-flex/internal/timeutil"
)

// earliestStartDate is the oldest supported explicit start date.
var earliestStartDate = timeutil.Date(2023, time.January, 1)

// defaultSinceDate is the "since the beginning" cutoff used when neither
// a start date nor a cached first working day is available.
var defaultSinceDate = timeutil.Date(2022, time.January, 1)

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	token := flagToken
	if token == "" {
		token = cfg.Token
	}
	if token == "" {
		return errors.New("Clockify API token is missing! Please add your token to the .env file as 'TOKEN=your_token_here' or pass it using the -t argument.")
	}

	var startDate *time.Time
	if flagStartDate != "" {
		d, err := parseStartDate(flagStartDate)
		if err != nil {
			return err
		}
		startDate = &d
	}

	var startBalance *int64
	if cmd.Flags().Changed("start-balance") {
		if startDate == nil {
			return errors.New("--start-balance requires --start-date")
		}
		v := flagStartBalance
		startBalance = &v
	}

	cachePath, err := cache.DefaultPath()
	if err != nil {
		return err
	}
	store, err := cache.Open(cachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	since := defaultSinceDate
	if startDate != nil {
		since = *startDate
	} else if cached, ok, err := store.FirstDate(token); err != nil {
		return err
	} else if ok {
		since = cached
	}

	opts := []clockify.Option{clockify.WithBaseURL(cfg.BaseURL)}
	if flagDebug {
		opts = append(opts, clockify.WithSnapshots(clockify.NewSnapshotWriter(cfg.SnapshotDir)))
	}
	client := clockify.New(token, opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spin := newSpinner("Fetching user...")
	started := time.Now()
	user, err := client.ResolveUser(ctx)
	spin.Stop()
	if err != nil {
		return err
	}
	fmt.Printf("User fetched from Clockify API! (%.2f s)\n", time.Since(started).Seconds())

	userSettings := settings.Load(cfg.SettingsFile).ForUser(user.Email)

	spin = newSpinner("Fetching data...")
	started = time.Now()
	data, err := report.Fetch(ctx, client, cfg.HolidaysFile, since)
	spin.Stop()
	if err != nil {
		return err
	}
	fmt.Printf("%d items fetched from Clockify API! (%.2f s)\n", data.ItemCount(), time.Since(started).Seconds())

	engine := reconcile.Engine{
		Today:        timeutil.Today(),
		IncludeToday: flagIncludeToday,
		Overrides:    userSettings,
	}
	if startBalance != nil {
		engine.StartBalanceMinutes = *startBalance
	}

	spin = newSpinner("Calculating results...")
	started = time.Now()
	results, err := engine.Calculate(data.PublicHolidays, data.WorkDays, data.DaysOff)
	spin.Stop()
	if err != nil {
		return err
	}
	fmt.Printf("Items calculated! (%.2f s)\n\n", time.Since(started).Seconds())

	// The derived first working day is only cached when it was derived
	// from the full history, not from an explicit start date.
	if startDate == nil {
		if err := store.SetFirstDate(token, results.FirstWorkingDay); err != nil {
			return err
		}
		fmt.Printf("You have been grinding since: %s\n", results.FirstWorkingDay.Format(time.DateOnly))
	} else {
		fmt.Printf("You have been grinding at least since: %s\n", results.FirstWorkingDay.Format(time.DateOnly))
	}

	longest := results.LongestWorkingDay
	hours, minutes := timeutil.SecondsToHoursMinutes(longest.Duration())
	fmt.Printf("Your longest grind is %d hours, %d minutes. You did it on %s, %s\n",
		hours, minutes, longest.Day.Weekday(), longest.Day.Format(time.DateOnly))

	render.WriteTable(os.Stdout, results, startBalance)
	return nil
}

func parseStartDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", value, err)
	}
	if date.Before(earliestStartDate) {
		return time.Time{}, errors.New("Input date has to be equal or greater than 2023-01-01!")
	}
	return date, nil
}

func newSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[25], 100*time.Millisecond,
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(os.Stderr))
	s.Start()
	return s
}

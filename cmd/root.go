package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lemminkyinen/clockify-flex/internal/config"
)

var (
	flagToken        string
	flagStartDate    string
	flagStartBalance int64
	flagIncludeToday bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:   "clockify-flex",
	Short: "Work time balance calculator for Clockify",
	Long: `clockify-flex reconciles your tracked Clockify time against your
expected work time since your first working day and prints the balance,
broken down by public holidays, sick leave, vacation, parental leave and
flex time off.`,
	Args:          cobra.NoArgs,
	RunE:          runBalance,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagToken, "token", "t", "", "Clockify API token (overrides the TOKEN env variable)")
	rootCmd.Flags().StringVarP(&flagStartDate, "start-date", "s", "", "Start date in YYYY-MM-DD format, 2023-01-01 or later")
	rootCmd.Flags().Int64VarP(&flagStartBalance, "start-balance", "b", 0, "Start balance in minutes, requires --start-date")
	rootCmd.Flags().BoolVarP(&flagIncludeToday, "include-today", "i", false, "Include today in calculations")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write raw API payload snapshots to disk")

	rootCmd.AddCommand(cacheCmd)
}

// setupLogging installs the process-wide slog handler from config.
func setupLogging(cfg config.Config) error {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	out := os.Stderr
	if cfg.LogOutput != "" {
		f, err := os.OpenFile(cfg.LogOutput, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", cfg.LogOutput, err)
		}
		out = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

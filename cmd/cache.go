package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lemminkyinen/clockify-flex/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the first-working-day cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List cached first working days",
	Args:  cobra.NoArgs,
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached first working days",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openCache() (*cache.Store, error) {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil, err
	}
	return cache.Open(path)
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Cache is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s…  first working day %s  (updated %s)\n", e.TokenHash[:12], e.FirstDate, e.UpdatedAt)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}

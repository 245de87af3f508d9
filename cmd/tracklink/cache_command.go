package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tracklink/internal/matchcache"
)

var errCacheDisabled = errors.New("match cache is disabled (set match_cache.enabled = true)")

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the match cache",
		Long: `Inspect and manage the match cache.

The match cache remembers files that could not be matched so later imports
skip them until the file changes on disk.

Commands:
  list     - List all cached files
  remove   - Remove a specific entry by number (see 'list' for numbers)
  clear    - Remove all cached entries`,
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached files",
		Long:  "Display every file recorded in the match cache, most recently cached first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := requireMatchCache(ctx)
			if err != nil {
				return err
			}

			entries := cache.List()
			if ctx.JSONMode() {
				if entries == nil {
					entries = []matchcache.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Match cache: empty")
				return nil
			}

			fmt.Fprintf(out, "Match cache: %d entries\n", len(entries))
			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					displayPath(cfg.Paths.MusicDir, entry.Path),
					reasonLabel(entry.Status),
					orDash(entry.Reason),
					formatTimestamp(entry.CachedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "Status", "Reason", "Cached"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove a specific cache entry by number",
		Long: `Remove a specific cache entry by its number from 'tracklink cache list'.
The file will be matched again on the next import.

Example:
  tracklink cache list        # Shows numbered list of cached files
  tracklink cache remove 2    # Removes entry #2 from the list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := requireMatchCache(ctx)
			if err != nil {
				return err
			}

			entryNum, err := strconv.Atoi(args[0])
			if err != nil || entryNum < 1 {
				return fmt.Errorf("invalid entry number: %s (must be a positive integer)", args[0])
			}

			entries := cache.List()
			if entryNum > len(entries) {
				return fmt.Errorf("entry %d not found (cache has %d entries)", entryNum, len(entries))
			}
			entry := entries[entryNum-1]
			if err := cache.Remove(entry.Path); err != nil {
				return fmt.Errorf("remove cache entry: %w", err)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"removed": true,
					"entry":   entryNum,
					"path":    entry.Path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed match cache entry %d (%s)\n", entryNum, entry.Path)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		Long:  "Forget every cached outcome. All files are matched again on the next import.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := requireMatchCache(ctx)
			if err != nil {
				return err
			}

			count := cache.Count()
			if count == 0 {
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": 0})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Match cache is already empty")
				return nil
			}

			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"removed": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d match cache entries\n", count)
			return nil
		},
	}
}

func requireMatchCache(ctx *commandContext) (*matchcache.Cache, error) {
	cache, err := ctx.openMatchCache()
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return nil, errCacheDisabled
	}
	return cache, nil
}

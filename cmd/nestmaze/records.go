package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nestmaze/internal/registry"
	"github.com/vovakirdan/nestmaze/internal/storage"
)

var (
	flagRecordsLimit  int
	flagRecordsRecent bool
	flagRecordsID     string
	flagRecordsClear  bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [variant]",
	Short: "Show the best recorded runs",
	Long: `Display the deepest runs for a variant, or for every variant when none
is given. Ties on depth go to the faster run.

Examples:
  nestmaze records
  nestmaze records nestmaze_free --limit 20
  nestmaze records --recent
  nestmaze records --id 3f2a9c1e-...
  nestmaze records nestmaze_free --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecordsRecent, "recent", false, "Show the most recent runs instead of the best")
	recordsCmd.Flags().StringVar(&flagRecordsID, "id", "", "Show one run in detail")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete every run of the given variant")
	recordsCmd.MarkFlagsMutuallyExclusive("id", "clear", "recent")
}

func runRecords(_ *cobra.Command, args []string) error {
	variant := ""
	title := "All variants"
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q, run 'nestmaze list' to see available variants", variant)
		}
		g, err := registry.Create(variant)
		if err != nil {
			return err
		}
		title = g.Title()
	}

	if flagRecordsClear && variant == "" {
		return fmt.Errorf("--clear needs a variant, e.g. 'nestmaze records nestmaze --clear'")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagRecordsID != "":
		return showRun(store, flagRecordsID)
	case flagRecordsClear:
		n, err := store.ClearRuns(variant)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d runs of %s\n", n, title)
		return nil
	}

	var runs []storage.Run
	if flagRecordsRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagRecordsLimit)
	} else {
		runs, err = store.TopRuns(variant, flagRecordsLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Records - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'nestmaze play' and step through a screen to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-5s  %-6s  %-6s  %-16s  %s\n", "Rank", "Variant", "Depth", "Levels", "Time", "Date", "ID")
	fmt.Printf("  %-4s  %-14s  %-5s  %-6s  %-6s  %-16s  %s\n", "----", "-------", "-----", "------", "----", "----", "--")

	for i, r := range runs {
		d := r.Duration.Round(time.Second)
		fmt.Printf("  %-4d  %-14s  %-5d  %-6d  %-6s  %-16s  %s\n",
			i+1, r.Variant, r.MaxDepth, r.Levels,
			fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60),
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ID)
	}

	if variant != "" {
		stats, err := store.VariantStats(variant)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Runs: %d  Deepest: %d  Average depth: %.1f  Descents: %d\n",
			stats.Runs, stats.DeepestDepth, stats.AvgDepth, stats.TotalDescents)
	}

	return nil
}

// showRun prints every recorded field of one run.
func showRun(store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Variant:   %s\n", r.Variant)
	fmt.Printf("  Deepest:   %d\n", r.MaxDepth)
	fmt.Printf("  Levels:    %d\n", r.Levels)
	fmt.Printf("  Descents:  %d (%d refused)\n", r.Descents, r.Denied)
	fmt.Printf("  Ascents:   %d\n", r.Ascents)
	fmt.Printf("  Time:      %s\n", r.Duration.Round(time.Second))
	fmt.Printf("  Seed:      %d\n", r.Seed)
	fmt.Printf("  Played:    %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

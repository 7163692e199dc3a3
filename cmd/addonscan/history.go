package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fcaddons/addonscan/internal/config"
	"github.com/fcaddons/addonscan/internal/database"
	"github.com/fcaddons/addonscan/internal/model"
)

// NewHistoryCmd creates the history command.
// This command lists and compares scan runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [addons-root]",
		Short: "List and compare recorded scan runs",
		Long: `History works with the scan runs recorded by 'addonscan scan'.

By default it compares the two most recent runs and shows:
- Addons that appeared or disappeared between the runs
- Addons whose layout style changed (for example old -> mixed -> new
  as an addon migrates)

When an addons-root argument is given, only runs of that root are
considered; otherwise all recorded runs are used.

Examples:
  # Diff the latest two runs
  addonscan history ~/src/FreeCAD-addons

  # List all recorded runs
  addonscan history --list

  # Diff the latest run against a specific earlier run
  addonscan history --with-run-id 5 ~/src/FreeCAD-addons

  # Output the diff as JSON
  addonscan history --json ~/src/FreeCAD-addons`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded scan runs instead of diffing")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output the comparison in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	var root string
	if len(args) > 0 {
		root = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listRuns(ctx, db, root)
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, root, withRunID, jsonOutput)
}

// listRuns prints all recorded runs, newest first.
func listRuns(ctx context.Context, db *database.HistoryDB, root string) error {
	runs, err := db.ListRuns(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded scan runs found.")
		fmt.Println("\nUse 'addonscan scan' to scan an addons root.")
		return nil
	}

	fmt.Printf("Recorded scan runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %-7s  %s\n", "ID", "Date", "Addons", "Root")
	fmt.Println("  " + strings.Repeat("-", 64))

	for _, run := range runs {
		fmt.Printf("  %-6d  %-20s  %-7d  %s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Summary.Total,
			run.Root,
		)
	}

	fmt.Println("\nUse 'addonscan history' to diff the latest two runs.")
	fmt.Println("Use 'addonscan history --with-run-id <id>' to diff against a specific run.")

	return nil
}

// styleChange records one addon whose derived style differs between runs.
type styleChange struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// runDiff is the comparison between two scan runs.
type runDiff struct {
	// BaseRunID and HeadRunID identify the compared runs (base is older).
	BaseRunID int64 `json:"base_run_id"`
	HeadRunID int64 `json:"head_run_id"`

	// Added and Removed list addon names present in only one run.
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	// Changed lists addons whose style moved between the runs.
	Changed []styleChange `json:"changed,omitempty"`

	// Unchanged counts addons present in both runs with the same style.
	Unchanged int `json:"unchanged"`
}

// runComparison diffs the latest run against the previous one, or against
// an explicitly selected run.
func runComparison(ctx context.Context, db *database.HistoryDB, root string, withRunID int64, jsonOutput bool) error {
	latest, err := db.LatestRuns(ctx, root, 2)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if len(latest) == 0 {
		return errors.New("no recorded scan runs (use 'addonscan scan' first)")
	}

	head := latest[0]

	var base *database.RunMeta
	if withRunID > 0 {
		base, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", withRunID, err)
		}
		if base == nil {
			return fmt.Errorf("run %d not found (use --list to see available IDs)", withRunID)
		}
	} else {
		if len(latest) < 2 {
			return errors.New("need at least two recorded runs to compare")
		}
		base = &latest[1]
	}

	baseRecords, err := db.GetRunRecords(ctx, base.ID)
	if err != nil {
		return fmt.Errorf("failed to load records of run %d: %w", base.ID, err)
	}
	headRecords, err := db.GetRunRecords(ctx, head.ID)
	if err != nil {
		return fmt.Errorf("failed to load records of run %d: %w", head.ID, err)
	}

	diff := diffRecords(baseRecords, headRecords)
	diff.BaseRunID = base.ID
	diff.HeadRunID = head.ID

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}

	printDiff(diff, base, &head)
	return nil
}

// diffRecords compares two record sets by addon name.
// Output slices are sorted by name for stable presentation.
func diffRecords(base, head []model.Record) *runDiff {
	baseStyles := make(map[string]model.Style, len(base))
	for _, r := range base {
		baseStyles[r.Name] = r.Style()
	}

	diff := &runDiff{}
	seen := make(map[string]struct{}, len(head))

	for _, r := range head {
		seen[r.Name] = struct{}{}
		from, ok := baseStyles[r.Name]
		if !ok {
			diff.Added = append(diff.Added, r.Name)
			continue
		}
		if to := r.Style(); to != from {
			diff.Changed = append(diff.Changed, styleChange{
				Name: r.Name,
				From: from.String(),
				To:   to.String(),
			})
			continue
		}
		diff.Unchanged++
	}

	for name := range baseStyles {
		if _, ok := seen[name]; !ok {
			diff.Removed = append(diff.Removed, name)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Name < diff.Changed[j].Name
	})

	return diff
}

// printDiff prints the comparison in human-readable form.
func printDiff(diff *runDiff, base, head *database.RunMeta) {
	fmt.Printf("Comparing run %d (%s) with run %d (%s)\n\n",
		base.ID, base.Timestamp.Format("2006-01-02 15:04:05"),
		head.ID, head.Timestamp.Format("2006-01-02 15:04:05"),
	)

	if len(diff.Added) == 0 && len(diff.Removed) == 0 && len(diff.Changed) == 0 {
		fmt.Printf("No changes (%d addons unchanged).\n", diff.Unchanged)
		return
	}

	if len(diff.Added) > 0 {
		fmt.Printf("Added (%d):\n", len(diff.Added))
		for _, name := range diff.Added {
			fmt.Printf("  + %s\n", name)
		}
		fmt.Println()
	}

	if len(diff.Removed) > 0 {
		fmt.Printf("Removed (%d):\n", len(diff.Removed))
		for _, name := range diff.Removed {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println()
	}

	if len(diff.Changed) > 0 {
		fmt.Printf("Style changes (%d):\n", len(diff.Changed))
		for _, c := range diff.Changed {
			fmt.Printf("  ~ %s: %s -> %s\n", c.Name, c.From, c.To)
		}
		fmt.Println()
	}

	fmt.Printf("Unchanged: %d\n", diff.Unchanged)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/randogoth/karawarden/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion runs",
	Long: `History lists recent conversions from the local ledger, newest first.
Runs are recorded automatically after each successful convert unless
--no-history or history.enabled: false is set.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := historyConfig(cmd)

	store, err := history.Open(cfg.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-7s  %-30s  %s\n",
		"Finished", "Links", "Skipped", "Source", "Output")
	for _, run := range runs {
		fmt.Fprintf(os.Stdout, "%-20s  %-6d  %-7d  %-30s  %s\n",
			run.FinishedAt.Local().Format(time.DateTime),
			run.Links, run.Skipped, truncate(run.Source, 30), run.Output)
	}
	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

// truncate shortens s to max characters with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/randogoth/karawarden/internal/karakeep"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <export-file>",
	Short: "Summarize a Hoarder export without converting it",
	Long: `Inspect parses a Hoarder/Karakeep export and prints what a conversion
would see: how many bookmarks are links, how many would be skipped, and
which tags are in use.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the summary as JSON")
	inspectCmd.Flags().Int("top", 10, "number of most-used tags to show")

	rootCmd.AddCommand(inspectCmd)
}

// tagCount pairs a tag with its usage count for the summary output.
type tagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// exportSummary is the inspect output shape.
type exportSummary struct {
	Bookmarks    int        `json:"bookmarks"`
	Links        int        `json:"links"`
	Skipped      int        `json:"skipped"`
	DistinctTags int        `json:"distinct_tags"`
	TopTags      []tagCount `json:"top_tags"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}
	export, err := karakeep.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	top, _ := cmd.Flags().GetInt("top")
	summary := summarize(export, top)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("bookmarks:    %d\n", summary.Bookmarks)
	fmt.Printf("links:        %d\n", summary.Links)
	fmt.Printf("skipped:      %d\n", summary.Skipped)
	fmt.Printf("distinct tags: %d\n", summary.DistinctTags)
	if len(summary.TopTags) > 0 {
		fmt.Println("\ntop tags:")
		for _, tc := range summary.TopTags {
			fmt.Printf("  %-30s %d\n", tc.Name, tc.Count)
		}
	}
	return nil
}

// summarize counts link bookmarks and tag usage the same way a conversion
// would, including tag normalization.
func summarize(export *karakeep.Export, top int) exportSummary {
	summary := exportSummary{Bookmarks: len(export.Bookmarks)}

	counts := make(map[string]int)
	for _, b := range export.Bookmarks {
		if !b.IsLink() {
			summary.Skipped++
			continue
		}
		summary.Links++
		tags, _ := karakeep.NormalizeTags(b.Tags)
		for _, tag := range tags {
			counts[tag]++
		}
	}
	summary.DistinctTags = len(counts)

	tcs := make([]tagCount, 0, len(counts))
	for name, count := range counts {
		tcs = append(tcs, tagCount{Name: name, Count: count})
	}
	sort.Slice(tcs, func(i, j int) bool {
		if tcs[i].Count != tcs[j].Count {
			return tcs[i].Count > tcs[j].Count
		}
		return tcs[i].Name < tcs[j].Name
	})
	if top > 0 && len(tcs) > top {
		tcs = tcs[:top]
	}
	summary.TopTags = tcs
	return summary
}

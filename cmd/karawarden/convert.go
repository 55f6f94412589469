package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randogoth/karawarden/internal/convert"
	"github.com/randogoth/karawarden/internal/history"
	"github.com/randogoth/karawarden/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <export-file>",
	Short: "Convert a Hoarder export into a Linkwarden import file",
	Long: `Convert reads a Hoarder/Karakeep export JSON, places every link
bookmark into a single Linkwarden collection, and writes the result as a
Linkwarden backup file ready for import.

Non-link bookmarks (notes, assets) are skipped. Tags carry over as-is
after whitespace trimming and deduplication. The output is written
atomically: a failed run leaves no partial file under the output name.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "where to write the Linkwarden import file")
	convertCmd.MarkFlagRequired("output")
	convertCmd.Flags().Int("user-id", convert.DefaultUserID, "Linkwarden user id for generated collections and links")
	convertCmd.Flags().String("collection-name", convert.DefaultCollectionName, "name of the generated collection")
	convertCmd.Flags().String("collection-color", "", "hex color (e.g. #0ea5e9) for the generated collection")
	convertCmd.Flags().String("report", "", "write a YAML conversion report to this path")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history ledger")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	opts := convert.Options{
		UserID:          cfg.UserID,
		CollectionName:  cfg.CollectionName,
		CollectionColor: cfg.CollectionColor,
	}
	outPath, _ := cmd.Flags().GetString("output")

	summary, err := convert.Run(args[0], outPath, opts, os.Stdout)
	if err != nil {
		return err
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := convert.WriteReport(reportPath, args[0], outPath, opts, summary); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "report -> %s\n", reportPath)
	}

	// A successful conversion stands even when the ledger is unavailable.
	if err := recordRun(cmd, args[0], outPath, opts, summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
	}
	return nil
}

func recordRun(cmd *cobra.Command, source, output string, opts convert.Options, summary convert.Summary) error {
	hcfg := historyConfig(cmd)
	if !hcfg.Enabled {
		return nil
	}

	store, err := history.Open(hcfg.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(context.Background(), history.Run{
		Source:     source,
		Output:     output,
		Links:      summary.Links,
		Skipped:    summary.Skipped,
		UserID:     opts.UserID,
		Collection: opts.CollectionName,
	})
}

// convertConfig resolves conversion settings: explicit flags win, then
// config file / environment, then built-in defaults.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		UserID:         convert.DefaultUserID,
		CollectionName: convert.DefaultCollectionName,
	}

	if viper.IsSet("convert.user_id") {
		cfg.UserID = viper.GetInt("convert.user_id")
	}
	if viper.IsSet("convert.collection_name") {
		cfg.CollectionName = viper.GetString("convert.collection_name")
	}
	if viper.IsSet("convert.collection_color") {
		cfg.CollectionColor = viper.GetString("convert.collection_color")
	}

	if cmd.Flags().Changed("user-id") {
		cfg.UserID, _ = cmd.Flags().GetInt("user-id")
	}
	if cmd.Flags().Changed("collection-name") {
		cfg.CollectionName, _ = cmd.Flags().GetString("collection-name")
	}
	if cmd.Flags().Changed("collection-color") {
		cfg.CollectionColor, _ = cmd.Flags().GetString("collection-color")
	}
	return cfg
}

// historyConfig resolves ledger settings from flags and config.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	cfg := types.HistoryConfig{Enabled: true}

	if viper.IsSet("history.enabled") {
		cfg.Enabled = viper.GetBool("history.enabled")
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.Enabled = false
	}

	cfg.Dir = viper.GetString("history.dir")
	if cfg.Dir == "" {
		dir, err := history.DefaultDir()
		if err != nil {
			cfg.Enabled = false
			return cfg
		}
		cfg.Dir = dir
	}
	return cfg
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the karawarden CLI, which converts
// Hoarder/Karakeep bookmark exports into Linkwarden import files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the karawarden CLI.
var rootCmd = &cobra.Command{
	Use:   "karawarden",
	Short: "Convert Hoarder/Karakeep bookmark exports for Linkwarden",
	Long: `karawarden converts a bookmark export produced by Hoarder (now Karakeep)
into the backup format Linkwarden's import feature accepts. All link
bookmarks land in a single collection; tags carry over verbatim.

The conversion is offline and one-shot: one JSON document in, one JSON
document out. Use inspect to preview an export and history to list past
conversions.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./karawarden.yaml or ~/.config/karawarden/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("karawarden")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "karawarden"))
		}
	}

	viper.SetEnvPrefix("KARAWARDEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

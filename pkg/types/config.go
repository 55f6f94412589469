// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs shared between the CLI
// and the conversion packages.
package types

// ConvertConfig holds defaults for the convert command. Flags override
// these; they in turn override the built-in defaults.
type ConvertConfig struct {
	// UserID is the Linkwarden user identifier written into generated
	// collections and links (default 1).
	UserID int `json:"user_id" yaml:"user_id"`

	// CollectionName names the generated collection (default
	// "Hoarder Import").
	CollectionName string `json:"collection_name" yaml:"collection_name"`

	// CollectionColor is an optional hex color (e.g. "#0ea5e9") for the
	// generated collection.
	CollectionColor string `json:"collection_color,omitempty" yaml:"collection_color,omitempty"`
}

// HistoryConfig holds settings for the conversion history ledger.
type HistoryConfig struct {
	// Enabled controls whether successful runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the ledger directory (default ~/.local/state/karawarden).
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all settings for the karawarden CLI.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the on-disk record of a conversion run, written next to the
// output when the user asks for one. It captures enough to reproduce the
// run: paths, effective options, and result counts.
type Report struct {
	Source  string        `yaml:"source"`
	Output  string        `yaml:"output"`
	Options ReportOptions `yaml:"options"`
	Summary ReportSummary `yaml:"summary"`
}

// ReportOptions stores the effective conversion options.
type ReportOptions struct {
	UserID          int    `yaml:"user_id"`
	CollectionName  string `yaml:"collection_name"`
	CollectionColor string `yaml:"collection_color,omitempty"`
}

// ReportSummary stores the result counts.
type ReportSummary struct {
	Links       int    `yaml:"links"`
	Collections int    `yaml:"collections"`
	Skipped     int    `yaml:"skipped"`
	TagsDropped int    `yaml:"tags_dropped"`
	NewestLink  string `yaml:"newest_link,omitempty"`
}

// WriteReport saves a conversion report to a YAML file.
func WriteReport(path, sourcePath, outPath string, opts Options, sum Summary) error {
	opts = opts.withDefaults()

	report := Report{
		Source: sourcePath,
		Output: outPath,
		Options: ReportOptions{
			UserID:          opts.UserID,
			CollectionName:  opts.CollectionName,
			CollectionColor: opts.CollectionColor,
		},
		Summary: ReportSummary{
			Links:       sum.Links,
			Collections: sum.Collections,
			Skipped:     sum.Skipped,
			TagsDropped: sum.TagsDropped,
		},
	}
	if !sum.NewestLink.IsZero() {
		report.Summary.NewestLink = sum.NewestLink.Format(time.RFC3339)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

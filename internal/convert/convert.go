// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert transforms a parsed Hoarder/Karakeep export into a
// Linkwarden backup document and writes it to disk.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/randogoth/karawarden/internal/karakeep"
	"github.com/randogoth/karawarden/internal/linkwarden"
)

// Defaults applied when neither flags nor config supply a value.
const (
	DefaultCollectionName = "Hoarder Import"
	DefaultUserID         = 1
)

// ErrNoLinks is returned when the export contains no link-type bookmarks
// with a usable URL.
var ErrNoLinks = errors.New("no link bookmarks in export")

// Options control how the destination document is built.
type Options struct {
	// UserID is written into ownerId and createdById fields.
	UserID int

	// CollectionName names the single generated collection.
	CollectionName string

	// CollectionColor is an optional hex color for the collection.
	// Empty leaves the color field null.
	CollectionColor string
}

// withDefaults fills zero-valued options.
func (o Options) withDefaults() Options {
	if o.UserID == 0 {
		o.UserID = DefaultUserID
	}
	if o.CollectionName == "" {
		o.CollectionName = DefaultCollectionName
	}
	return o
}

// Summary holds counts from a conversion run.
type Summary struct {
	// Links is the number of bookmarks converted.
	Links int

	// Skipped counts bookmarks dropped because they are not link-type
	// or carry no URL.
	Skipped int

	// TagsDropped counts tag members removed during normalization.
	TagsDropped int

	// Collections is the number of generated collections.
	Collections int

	// NewestLink is the creation time of the most recent converted
	// bookmark. Zero when no bookmark carried a parseable timestamp.
	NewestLink time.Time
}

// Convert builds a Linkwarden backup from an export. The export's bookmark
// list is newest-first, so it is walked in reverse to hand Linkwarden its
// links in chronological order. Every converted bookmark lands in one
// collection owned by opts.UserID.
//
// The result is deterministic for a given export and options: bookmarks
// without a parseable timestamp get the Unix epoch, and the document-level
// date fields take the newest link timestamp rather than wall-clock time,
// so repeated runs produce byte-identical output.
func Convert(export *karakeep.Export, opts Options) (*linkwarden.Backup, Summary, error) {
	opts = opts.withDefaults()

	var summary Summary
	var links []linkwarden.Link
	epoch := time.Unix(0, 0).UTC()
	var earliest, latest time.Time

	for i := len(export.Bookmarks) - 1; i >= 0; i-- {
		b := export.Bookmarks[i]
		if !b.IsLink() {
			summary.Skipped++
			continue
		}

		title := b.Title
		if title == "" {
			title = b.Content.URL
		}

		tags, dropped := karakeep.NormalizeTags(b.Tags)
		summary.TagsDropped += dropped

		created, ok := karakeep.ParseTimestamp(b.CreatedAt)
		if !ok {
			created = epoch
		} else if summary.NewestLink.IsZero() || created.After(summary.NewestLink) {
			summary.NewestLink = created
		}
		if earliest.IsZero() || created.Before(earliest) {
			earliest = created
		}
		if latest.IsZero() || created.After(latest) {
			latest = created
		}

		stamp := created.Format(time.RFC3339)
		linkTags := make([]linkwarden.Tag, len(tags))
		for j, tag := range tags {
			linkTags[j] = linkwarden.Tag{Name: tag}
		}

		links = append(links, linkwarden.Link{
			ID:           len(links) + 1,
			Name:         title,
			Type:         linkwarden.LinkTypeURL,
			Description:  b.Note,
			CreatedByID:  opts.UserID,
			CollectionID: 1,
			URL:          b.Content.URL,
			ImportDate:   stamp,
			CreatedAt:    stamp,
			UpdatedAt:    stamp,
			Tags:         linkTags,
		})
	}

	if len(links) == 0 {
		return nil, summary, ErrNoLinks
	}

	collection := linkwarden.Collection{
		ID:               1,
		Name:             opts.CollectionName,
		OwnerID:          opts.UserID,
		CreatedByID:      opts.UserID,
		CreatedAt:        earliest.Format(time.RFC3339),
		UpdatedAt:        earliest.Format(time.RFC3339),
		RSSSubscriptions: []string{},
		Links:            links,
	}
	if opts.CollectionColor != "" {
		color := opts.CollectionColor
		collection.Color = &color
	}

	backup := linkwarden.NewBackup(latest.Format(time.RFC3339))
	backup.Collections = []linkwarden.Collection{collection}

	summary.Links = len(links)
	summary.Collections = len(backup.Collections)
	return backup, summary, nil
}

// Run converts the export at sourcePath and writes the Linkwarden document
// to outPath, printing a status line to w. The output file appears
// atomically: the document goes to a temporary file in the target
// directory and is renamed into place, so a failed run never leaves a
// partial file under the final name.
func Run(sourcePath, outPath string, opts Options, w io.Writer) (Summary, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return Summary{}, fmt.Errorf("reading export: %w", err)
	}

	export, err := karakeep.Parse(data)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing %s: %w", sourcePath, err)
	}

	backup, summary, err := Convert(export, opts)
	if err != nil {
		return summary, err
	}

	if err := writeBackup(outPath, backup); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "converted %d bookmark(s) into %d collection(s) -> %s\n",
		summary.Links, summary.Collections, outPath)
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "skipped %d non-link bookmark(s)\n", summary.Skipped)
	}
	return summary, nil
}

// writeBackup serializes the document with two-space indentation to a
// temporary file and renames it over path on success.
func writeBackup(path string, backup *linkwarden.Backup) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".karawarden-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		committed = true
		return fmt.Errorf("writing output: %w", err)
	}
	committed = true
	return nil
}

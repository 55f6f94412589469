// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package karakeep parses bookmark exports produced by Hoarder (renamed
// Karakeep). An export is a single JSON document with a top-level
// "bookmarks" array; each bookmark carries a content block whose type
// distinguishes links from notes and other assets.
package karakeep

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Errors reported for structurally invalid exports. Callers distinguish
// these from JSON syntax errors, which are wrapped decoder errors.
var (
	ErrMissingBookmarks = errors.New(`export has no "bookmarks" key`)
	ErrBookmarksNotList = errors.New(`"bookmarks" is not a list`)
)

// ContentTypeLink marks a bookmark whose content is a plain URL.
// Karakeep also exports "text" and "asset" bookmarks; those do not convert.
const ContentTypeLink = "link"

// Export is a parsed Hoarder/Karakeep export document.
type Export struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// Bookmark is a single entry in the export. Fields the converter does not
// consume (archive state, asset ids) are intentionally not modeled.
type Bookmark struct {
	// Title is the user-visible name. May be empty; consumers fall back
	// to the URL.
	Title string `json:"title"`

	// Note holds the user's free-form note, mapped to the destination
	// description.
	Note string `json:"note"`

	// Tags lists the bookmark's tag names. Non-string members in the
	// source array are dropped during decoding.
	Tags TagList `json:"tags"`

	// CreatedAt is the raw creation timestamp. Hoarder has exported this
	// as epoch seconds, numeric strings, and ISO-8601 at various points,
	// so it is kept raw and interpreted by ParseTimestamp.
	CreatedAt json.RawMessage `json:"createdAt"`

	// Content describes what the bookmark points at.
	Content Content `json:"content"`
}

// Content is the typed payload of a bookmark.
type Content struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// IsLink reports whether the bookmark is a link bookmark with a usable URL.
func (b Bookmark) IsLink() bool {
	return b.Content.Type == ContentTypeLink && b.Content.URL != ""
}

// TagList is a bookmark's tag array. Hoarder exports occasionally contain
// non-string members (nulls, tag objects from newer schema versions);
// decoding keeps string members and silently drops the rest.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			continue
		}
		tags = append(tags, s)
	}
	*t = tags
	return nil
}

// Parse decodes an export document. It distinguishes three failure modes:
// invalid JSON, a document without a "bookmarks" key, and a "bookmarks"
// value that is not an array.
func Parse(data []byte) (*Export, error) {
	var doc struct {
		Bookmarks *json.RawMessage `json:"bookmarks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	if doc.Bookmarks == nil {
		return nil, ErrMissingBookmarks
	}
	if !startsWith(*doc.Bookmarks, '[') {
		return nil, ErrBookmarksNotList
	}

	var bookmarks []Bookmark
	if err := json.Unmarshal(*doc.Bookmarks, &bookmarks); err != nil {
		return nil, fmt.Errorf("decoding bookmarks: %w", err)
	}

	return &Export{Bookmarks: bookmarks}, nil
}

// startsWith reports whether the first non-whitespace byte of raw is c.
func startsWith(raw []byte, c byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == c
		}
	}
	return false
}

// NormalizeTags trims whitespace, removes empty tags, and deduplicates
// while preserving first-seen order. It returns the cleaned list and the
// number of members removed.
func NormalizeTags(tags []string) ([]string, int) {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		cleaned = append(cleaned, tag)
		seen[tag] = true
	}
	return cleaned, len(tags) - len(cleaned)
}

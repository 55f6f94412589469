// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randogoth/karawarden/internal/karakeep"
)

// parseExport is a test helper wrapping karakeep.Parse.
func parseExport(t *testing.T, doc string) *karakeep.Export {
	t.Helper()
	export, err := karakeep.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parsing test export: %v", err)
	}
	return export
}

func TestConvert_SingleBookmark(t *testing.T) {
	export := parseExport(t, `{"bookmarks":[{
		"title": "A",
		"tags": ["x", "y"],
		"content": {"type": "link", "url": "https://a.com"}
	}]}`)

	backup, summary, err := Convert(export, Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if summary.Links != 1 || summary.Collections != 1 {
		t.Errorf("summary = %+v, want 1 link in 1 collection", summary)
	}
	if len(backup.Collections) != 1 {
		t.Fatalf("len(Collections) = %d, want 1", len(backup.Collections))
	}

	coll := backup.Collections[0]
	if coll.Name != "Hoarder Import" {
		t.Errorf("collection name = %q, want %q", coll.Name, "Hoarder Import")
	}
	if coll.OwnerID != 1 || coll.CreatedByID != 1 {
		t.Errorf("collection owner = %d/%d, want default user 1", coll.OwnerID, coll.CreatedByID)
	}
	if coll.Color != nil {
		t.Errorf("collection color = %v, want nil", *coll.Color)
	}

	if len(coll.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(coll.Links))
	}
	link := coll.Links[0]
	if link.URL != "https://a.com" || link.Name != "A" {
		t.Errorf("link = %q %q, want https://a.com A", link.URL, link.Name)
	}
	if link.CollectionID != coll.ID {
		t.Errorf("link.CollectionID = %d, want %d", link.CollectionID, coll.ID)
	}
	wantTags := []string{"x", "y"}
	if len(link.Tags) != len(wantTags) {
		t.Fatalf("len(Tags) = %d, want %d", len(link.Tags), len(wantTags))
	}
	for i, want := range wantTags {
		if link.Tags[i].Name != want {
			t.Errorf("Tags[%d] = %q, want %q", i, link.Tags[i].Name, want)
		}
	}
}

func TestConvert_EveryLinkLandsInOneCollection(t *testing.T) {
	export := parseExport(t, `{"bookmarks":[
		{"title": "C", "content": {"type": "link", "url": "https://c.com"}},
		{"title": "", "content": {"type": "text"}},
		{"title": "B", "content": {"type": "link", "url": "https://b.com"}},
		{"title": "", "content": {"type": "link", "url": "https://a.com"}},
		{"title": "asset", "content": {"type": "asset", "url": "https://x.com"}}
	]}`)

	backup, summary, err := Convert(export, Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if summary.Links != 3 || summary.Skipped != 2 {
		t.Errorf("summary = %+v, want 3 links / 2 skipped", summary)
	}

	links := backup.Collections[0].Links
	if len(links) != 3 {
		t.Fatalf("len(Links) = %d, want 3", len(links))
	}

	// Export order is newest-first; converted links come out oldest-first
	// with sequential ids.
	wantURLs := []string{"https://a.com", "https://b.com", "https://c.com"}
	for i, link := range links {
		if link.URL != wantURLs[i] {
			t.Errorf("Links[%d].URL = %q, want %q", i, link.URL, wantURLs[i])
		}
		if link.ID != i+1 {
			t.Errorf("Links[%d].ID = %d, want %d", i, link.ID, i+1)
		}
		if link.CollectionID != 1 {
			t.Errorf("Links[%d].CollectionID = %d, want 1", i, link.CollectionID)
		}
	}

	// Untitled link falls back to its URL.
	if links[0].Name != "https://a.com" {
		t.Errorf("untitled link name = %q, want its URL", links[0].Name)
	}
}

func TestConvert_Options(t *testing.T) {
	doc := `{"bookmarks":[{"title":"A","content":{"type":"link","url":"https://a.com"}}]}`

	backup, _, err := Convert(parseExport(t, doc), Options{
		UserID:          7,
		CollectionName:  "Imported",
		CollectionColor: "#0ea5e9",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	coll := backup.Collections[0]
	if coll.Name != "Imported" {
		t.Errorf("collection name = %q, want Imported", coll.Name)
	}
	if coll.OwnerID != 7 || coll.CreatedByID != 7 {
		t.Errorf("owner = %d/%d, want 7", coll.OwnerID, coll.CreatedByID)
	}
	if coll.Color == nil || *coll.Color != "#0ea5e9" {
		t.Errorf("color = %v, want #0ea5e9", coll.Color)
	}
	if coll.Links[0].CreatedByID != 7 {
		t.Errorf("link createdById = %d, want 7", coll.Links[0].CreatedByID)
	}
}

func TestConvert_Timestamps(t *testing.T) {
	export := parseExport(t, `{"bookmarks":[
		{"title": "new", "createdAt": "2024-06-01T00:00:00Z", "content": {"type": "link", "url": "https://new.com"}},
		{"title": "old", "createdAt": 1700000000, "content": {"type": "link", "url": "https://old.com"}},
		{"title": "undated", "content": {"type": "link", "url": "https://undated.com"}}
	]}`)

	backup, summary, err := Convert(export, Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	links := backup.Collections[0].Links
	if links[0].CreatedAt != "1970-01-01T00:00:00Z" {
		t.Errorf("undated link CreatedAt = %q, want epoch", links[0].CreatedAt)
	}
	if links[1].CreatedAt != "2023-11-14T22:13:20Z" {
		t.Errorf("epoch-second link CreatedAt = %q", links[1].CreatedAt)
	}
	if links[2].CreatedAt != "2024-06-01T00:00:00Z" {
		t.Errorf("iso link CreatedAt = %q", links[2].CreatedAt)
	}

	// Collection dated from its earliest link, document from the newest.
	coll := backup.Collections[0]
	if coll.CreatedAt != "1970-01-01T00:00:00Z" {
		t.Errorf("collection CreatedAt = %q, want earliest link", coll.CreatedAt)
	}
	if backup.CreatedAt != "2024-06-01T00:00:00Z" || backup.LastPickedAt != "2024-06-01T00:00:00Z" {
		t.Errorf("document dates = %q/%q, want newest link", backup.CreatedAt, backup.LastPickedAt)
	}
	if got := summary.NewestLink.Format("2006-01-02"); got != "2024-06-01" {
		t.Errorf("summary.NewestLink = %s, want 2024-06-01", got)
	}
}

func TestConvert_NoLinks(t *testing.T) {
	for _, doc := range []string{
		`{"bookmarks":[]}`,
		`{"bookmarks":[{"title":"note","content":{"type":"text"}}]}`,
	} {
		_, _, err := Convert(parseExport(t, doc), Options{})
		if !errors.Is(err, ErrNoLinks) {
			t.Errorf("Convert(%s) error = %v, want ErrNoLinks", doc, err)
		}
	}
}

func TestConvert_Deterministic(t *testing.T) {
	doc := `{"bookmarks":[
		{"title": "A", "tags": ["x"], "content": {"type": "link", "url": "https://a.com"}},
		{"title": "B", "createdAt": 1700000000, "content": {"type": "link", "url": "https://b.com"}}
	]}`

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		backup, _, err := Convert(parseExport(t, doc), Options{UserID: 3})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			t.Fatalf("marshaling backup: %v", err)
		}
		outputs = append(outputs, data)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("repeated conversions produced different output")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.json")
	out := filepath.Join(dir, "nested", "import.json")
	doc := `{"bookmarks":[{"title":"A","tags":["x","y"],"content":{"type":"link","url":"https://a.com"}}]}`
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	summary, err := Run(src, out, Options{}, &log)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Links != 1 {
		t.Errorf("summary.Links = %d, want 1", summary.Links)
	}
	if !strings.Contains(log.String(), "converted 1 bookmark(s)") {
		t.Errorf("status output %q missing conversion line", log.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var roundtrip map[string]any
	if err := json.Unmarshal(data, &roundtrip); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := roundtrip["collections"]; !ok {
		t.Error("output has no collections field")
	}
}

func TestRun_MalformedInputLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.json")
	out := filepath.Join(dir, "import.json")
	if err := os.WriteFile(src, []byte(`{"bookmarks": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	if _, err := Run(src, out, Options{}, &log); err == nil {
		t.Fatal("Run() succeeded on malformed input")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed run (stat err = %v)", err)
	}
}

func TestRun_MissingSource(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	_, err := Run(filepath.Join(dir, "absent.json"), filepath.Join(dir, "out.json"), Options{}, &log)
	if err == nil {
		t.Fatal("Run() succeeded on missing source")
	}
	if !strings.Contains(err.Error(), "reading export") {
		t.Errorf("error = %v, want a reading export error", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.json")
	doc := `{"bookmarks":[
		{"title": "A", "tags": ["x"], "createdAt": "2024-01-01T00:00:00Z", "content": {"type": "link", "url": "https://a.com"}},
		{"title": "B", "content": {"type": "link", "url": "https://b.com"}}
	]}`
	if err := os.WriteFile(src, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var contents [][]byte
	for _, name := range []string{"one.json", "two.json"} {
		out := filepath.Join(dir, name)
		var log bytes.Buffer
		if _, err := Run(src, out, Options{CollectionColor: "#123456"}, &log); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		contents = append(contents, data)
	}

	if !bytes.Equal(contents[0], contents[1]) {
		t.Error("same source and options produced different bytes")
	}
}

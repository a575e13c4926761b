package content

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testBlob = `{
  "categories": [
    {"id": "calm", "name": "Calm"}
  ],
  "practices": [
    {"id": "p1", "category_id": "calm", "title": "Evening wind-down", "audio_url": "https://cdn.example/p1.mp3", "audio_title": "Evening", "description_md": "# Relax"},
    {"id": "p2", "category_id": "calm", "title": "Morning", "audio_url": "https://cdn.example/p2.mp3"}
  ]
}`

func writeTestBlob(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte(testBlob), 0644); err != nil {
		t.Fatalf("failed to write content file: %v", err)
	}
	return NewStore(path)
}

func TestRawServesVerbatim(t *testing.T) {
	store := writeTestBlob(t)

	raw, err := store.Raw()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(raw, []byte(testBlob)) {
		t.Fatalf("raw bytes differ from the stored blob")
	}
}

func TestCatalogLookups(t *testing.T) {
	store := writeTestBlob(t)

	catalog, err := store.Catalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := catalog.FindPractice("p1")
	if !ok {
		t.Fatalf("expected to find p1")
	}
	if p.Title != "Evening wind-down" {
		t.Errorf("title = %q", p.Title)
	}

	c, ok := catalog.FindCategory(p.CategoryID)
	if !ok || c.Name != "Calm" {
		t.Errorf("category lookup failed: ok=%v c=%+v", ok, c)
	}

	if _, ok := catalog.FindPractice("missing"); ok {
		t.Errorf("found a practice that does not exist")
	}
}

func TestMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	if _, err := store.Raw(); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := store.Catalog(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

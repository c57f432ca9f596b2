package postercache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache", "postercache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreAndLookup(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := Entry{
		TitleKey:  "judge judy",
		Title:     "Judge Judy",
		PosterURL: "http://img/original.jpg",
		Source:    SourceTVMaze,
	}
	if err := store.Store(ctx, entry); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	found, ok, err := store.Lookup(ctx, "judge judy")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("Lookup failed to find stored entry")
	}
	if found.PosterURL != entry.PosterURL {
		t.Errorf("PosterURL mismatch: got %q, want %q", found.PosterURL, entry.PosterURL)
	}
	if found.Title != entry.Title {
		t.Errorf("Title mismatch: got %q, want %q", found.Title, entry.Title)
	}
	if found.Negative() {
		t.Error("entry with poster url should not be negative")
	}
	if found.CreatedAt.IsZero() || found.UpdatedAt.IsZero() {
		t.Error("timestamps should be populated")
	}
}

func TestLookupNotFound(t *testing.T) {
	store := newStore(t)

	_, ok, err := store.Lookup(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("Lookup should return false for non-existent entry")
	}
}

func TestNegativeEntries(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, Entry{TitleKey: "obscure show", Title: "Obscure Show"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	found, ok, err := store.Lookup(ctx, "obscure show")
	if err != nil || !ok {
		t.Fatalf("Lookup failed: ok=%v err=%v", ok, err)
	}
	if !found.Negative() {
		t.Error("entry without poster url should be negative")
	}
}

func TestStoreUpsertsExisting(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, Entry{TitleKey: "show", Title: "Show"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Store(ctx, Entry{TitleKey: "show", Title: "Show", PosterURL: "http://img/new.jpg", Source: SourceManual}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	found, ok, err := store.Lookup(ctx, "show")
	if err != nil || !ok {
		t.Fatalf("Lookup failed: ok=%v err=%v", ok, err)
	}
	if found.PosterURL != "http://img/new.jpg" || found.Source != SourceManual {
		t.Fatalf("upsert did not apply: %#v", found)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", count)
	}
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, Entry{TitleKey: "doomed", Title: "Doomed"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Remove(ctx, "doomed"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove(ctx, "doomed"); err == nil {
		t.Fatal("removing a missing entry should error")
	}
}

func TestClearAndStats(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entries := []Entry{
		{TitleKey: "a", Title: "A", PosterURL: "http://img/a.jpg", Source: SourceTVMaze},
		{TitleKey: "b", Title: "B", Source: SourceTVMaze},
		{TitleKey: "c", Title: "C", PosterURL: "http://img/c.jpg", Source: SourceManual},
	}
	for _, entry := range entries {
		if err := store.Store(ctx, entry); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Negative != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if stats.BySource[SourceTVMaze] != 2 || stats.BySource[SourceManual] != 1 {
		t.Fatalf("unexpected source breakdown: %#v", stats.BySource)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cache, got %d entries", count)
	}
}

func TestLegacyImportExport(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	legacy := `{
  "Judge Judy": "http://img/jj.jpg",
  "Obscure Show": null
}`
	imported, err := store.ImportLegacyJSON(ctx, []byte(legacy), nil)
	if err != nil {
		t.Fatalf("ImportLegacyJSON failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported, got %d", imported)
	}

	found, ok, err := store.Lookup(ctx, "judge judy")
	if err != nil || !ok {
		t.Fatalf("Lookup after import failed: ok=%v err=%v", ok, err)
	}
	if found.PosterURL != "http://img/jj.jpg" || found.Source != SourceLegacy {
		t.Fatalf("unexpected imported entry: %#v", found)
	}

	negative, ok, err := store.Lookup(ctx, "obscure show")
	if err != nil || !ok {
		t.Fatalf("negative lookup after import failed: ok=%v err=%v", ok, err)
	}
	if !negative.Negative() {
		t.Fatal("null legacy value should import as negative entry")
	}

	data, err := store.ExportLegacyJSON(ctx)
	if err != nil {
		t.Fatalf("ExportLegacyJSON failed: %v", err)
	}
	var exported map[string]*string
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("parse exported cache: %v", err)
	}
	if url := exported["Judge Judy"]; url == nil || *url != "http://img/jj.jpg" {
		t.Fatalf("unexpected export for Judge Judy: %#v", exported)
	}
	if exported["Obscure Show"] != nil {
		t.Fatal("negative entry should export as null")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postercache.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Store(ctx, Entry{TitleKey: "persisted", Title: "Persisted", PosterURL: "http://img/p.jpg"}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	_, ok, err := reopened.Lookup(ctx, "persisted")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("entry should survive reopen")
	}
}

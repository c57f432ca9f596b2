package enrich

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
	"marquee/internal/fallback"
	"marquee/internal/postercache"
	"marquee/internal/tvmaze"
	"marquee/internal/xmltv"
)

type fakeCache struct {
	entries map[string]postercache.Entry
	stores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]postercache.Entry)}
}

func (c *fakeCache) Lookup(_ context.Context, titleKey string) (postercache.Entry, bool, error) {
	entry, ok := c.entries[titleKey]
	return entry, ok, nil
}

func (c *fakeCache) Store(_ context.Context, entry postercache.Entry) error {
	c.entries[entry.TitleKey] = entry
	c.stores++
	return nil
}

type fakeLookup struct {
	posters map[string]string
	calls   []string
}

func (l *fakeLookup) SingleSearch(_ context.Context, query string) (*tvmaze.Show, error) {
	l.calls = append(l.calls, query)
	poster, ok := l.posters[query]
	if !ok {
		return nil, tvmaze.ErrNotFound
	}
	return &tvmaze.Show{Name: query, Image: &tvmaze.Image{Original: poster}}, nil
}

const testGuide = `<?xml version="1.0" encoding="UTF-8"?>
<tv>
  <channel id="ch1"><display-name>Channel One</display-name></channel>
  <programme start="20260824060000 +0000" channel="ch1">
    <title>Judge Judy ᴺᵉʷ</title>
  </programme>
  <programme start="20260824070000 +0000" channel="ch1">
    <title>Morning Report</title>
    <category>News</category>
  </programme>
  <programme start="20260824080000 +0000" channel="ch1">
    <title>Mystery Block</title>
  </programme>
  <programme start="20260824090000 +0000" channel="ch1">
    <title>Already Done</title>
    <icon src="http://example.com/existing.png"/>
  </programme>
</tv>
`

func newTestEnricher(t *testing.T, cache Cache, lookup tvmaze.Lookup) (*Enricher, *config.Config) {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Input = filepath.Join(base, "input.xml")
	cfg.Paths.Output = filepath.Join(base, "guide.xml")
	cfg.Paths.AssetsDir = "/assets"
	cfg.Behavior.BatchSize = 2

	if err := os.WriteFile(cfg.Paths.Input, []byte(testGuide), 0o644); err != nil {
		t.Fatalf("write input guide: %v", err)
	}

	resolver := fallback.NewResolver(cfg.Paths.AssetsDir, cfg.Fallbacks.UnknownPoster, nil)
	enricher, err := New(&cfg, cache, lookup, resolver, nil, WithProgressETA(false))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return enricher, &cfg
}

func iconSrcs(t *testing.T, path string) map[string][]string {
	t.Helper()
	doc, err := xmltv.Load(path)
	if err != nil {
		t.Fatalf("load output guide: %v", err)
	}
	out := make(map[string][]string)
	for _, programme := range doc.Programmes {
		for _, icon := range programme.Icons {
			out[programme.Title()] = append(out[programme.Title()], icon.Src)
		}
	}
	return out
}

func TestRunEnrichesFromLookupAndFallbacks(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{posters: map[string]string{
		"Judge Judy": "http://img/jj.jpg",
	}}

	enricher, cfg := newTestEnricher(t, cache, lookup)

	result, err := enricher.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Total != 4 {
		t.Fatalf("total: got %d", result.Total)
	}
	if result.Processed != 3 || result.Skipped != 1 {
		t.Fatalf("processed/skipped: got %d/%d", result.Processed, result.Skipped)
	}
	if result.FromLookup != 1 || result.Generic != 1 || result.Unknown != 1 {
		t.Fatalf("counts: %+v", result)
	}

	icons := iconSrcs(t, cfg.Paths.Output)
	if got := icons["Judge Judy ᴺᵉʷ"]; len(got) != 1 || got[0] != "http://img/jj.jpg" {
		t.Fatalf("lookup poster missing: %v", got)
	}
	if got := icons["Morning Report"]; len(got) != 1 || !strings.Contains(got[0], "generic_news.png") {
		t.Fatalf("generic poster missing: %v", got)
	}
	if got := icons["Mystery Block"]; len(got) != 1 || !strings.Contains(got[0], "generic_unknown.png") {
		t.Fatalf("unknown poster missing: %v", got)
	}
	if got := icons["Already Done"]; len(got) != 1 || got[0] != "http://example.com/existing.png" {
		t.Fatalf("existing icon should be untouched: %v", got)
	}

	// The normalized title was queried, not the raw marker-laden one.
	if len(lookup.calls) != 3 {
		t.Fatalf("expected 3 lookups, got %v", lookup.calls)
	}
	if lookup.calls[0] != "Judge Judy" {
		t.Fatalf("expected normalized query, got %q", lookup.calls[0])
	}
}

func TestRunStoresNegativeEntries(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{posters: map[string]string{}}

	enricher, _ := newTestEnricher(t, cache, lookup)

	if _, err := enricher.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	entry, ok := cache.entries["mystery block"]
	if !ok {
		t.Fatal("miss should be cached")
	}
	if !entry.Negative() {
		t.Fatalf("cached miss should be negative: %#v", entry)
	}
}

func TestRunUsesCacheWithoutLookup(t *testing.T) {
	cache := newFakeCache()
	cache.entries["judge judy"] = postercache.Entry{
		TitleKey:  "judge judy",
		Title:     "Judge Judy",
		PosterURL: "http://img/cached.jpg",
	}
	// Negative entry: lookup already failed once.
	cache.entries["mystery block"] = postercache.Entry{TitleKey: "mystery block", Title: "Mystery Block"}

	lookup := &fakeLookup{posters: map[string]string{}}
	enricher, cfg := newTestEnricher(t, cache, lookup)

	result, err := enricher.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.FromCache != 1 {
		t.Fatalf("expected 1 cache hit, got %d", result.FromCache)
	}
	for _, call := range lookup.calls {
		if call == "Judge Judy" || call == "Mystery Block" {
			t.Fatalf("cached title should not be looked up: %v", lookup.calls)
		}
	}

	icons := iconSrcs(t, cfg.Paths.Output)
	if got := icons["Mystery Block"]; len(got) != 1 || !strings.Contains(got[0], "generic_unknown.png") {
		t.Fatalf("negative cache entry should still get fallback art: %v", got)
	}
}

func TestRunResumesFromOutput(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{posters: map[string]string{"Judge Judy": "http://img/jj.jpg"}}

	enricher, cfg := newTestEnricher(t, cache, lookup)

	if _, err := enricher.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}

	// Second run reads the output; everything already has icons.
	second, err := enricher.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if second.Source != cfg.Paths.Output {
		t.Fatalf("second run should read the output file, read %q", second.Source)
	}
	if second.Processed != 0 || second.Skipped != 4 {
		t.Fatalf("second run should skip all programmes: %+v", second)
	}

	icons := iconSrcs(t, cfg.Paths.Output)
	for title, srcs := range icons {
		if len(srcs) != 1 {
			t.Fatalf("duplicate icons for %q after re-run: %v", title, srcs)
		}
	}
}

func TestRunFreshIgnoresOutput(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{posters: map[string]string{}}

	enricher, cfg := newTestEnricher(t, cache, lookup)

	if _, err := enricher.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}

	result, err := enricher.Run(context.Background(), Options{Fresh: true})
	if err != nil {
		t.Fatalf("fresh Run returned error: %v", err)
	}
	if result.Source != cfg.Paths.Input {
		t.Fatalf("fresh run should read the input file, read %q", result.Source)
	}
}

func TestRunDisableLookup(t *testing.T) {
	cache := newFakeCache()
	lookup := &fakeLookup{posters: map[string]string{"Judge Judy": "http://img/jj.jpg"}}

	enricher, _ := newTestEnricher(t, cache, lookup)

	result, err := enricher.Run(context.Background(), Options{DisableLookup: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(lookup.calls) != 0 {
		t.Fatalf("lookups should be disabled, got %v", lookup.calls)
	}
	if result.FromLookup != 0 {
		t.Fatalf("no lookup posters expected: %+v", result)
	}
	if cache.stores != 0 {
		t.Fatal("nothing should be cached when lookups are disabled")
	}
}

func TestNewRejectsZeroBatchSize(t *testing.T) {
	cfg := config.Default()
	cfg.Behavior.BatchSize = 0

	resolver := fallback.NewResolver("/assets", cfg.Fallbacks.UnknownPoster, nil)
	if _, err := New(&cfg, newFakeCache(), &fakeLookup{}, resolver, nil); err == nil {
		t.Fatal("expected error for zero batch size")
	}
}

func TestRunCancelled(t *testing.T) {
	cache := newFakeCache()
	enricher, _ := newTestEnricher(t, cache, &fakeLookup{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := enricher.Run(ctx, Options{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

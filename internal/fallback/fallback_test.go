package fallback

import (
	"path/filepath"
	"testing"
)

func TestResolveBuiltInCategories(t *testing.T) {
	resolver := NewResolver("/assets", "", nil)

	got := resolver.Resolve([]string{"sitcom", "news"})
	if got != filepath.Join("/assets", "generic_news.png") {
		t.Fatalf("unexpected poster: %q", got)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	resolver := NewResolver("/assets", "", nil)

	got := resolver.Resolve([]string{"weather", "news"})
	if got != filepath.Join("/assets", "generic_weather.png") {
		t.Fatalf("document order should win: %q", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	resolver := NewResolver("/assets", "", nil)

	if got := resolver.Resolve([]string{"sitcom", "drama"}); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
	if got := resolver.Resolve(nil); got != "" {
		t.Fatalf("expected no match for empty categories, got %q", got)
	}
}

func TestOverridesMergeOverDefaults(t *testing.T) {
	resolver := NewResolver("/assets", "", map[string]string{
		"  Cooking ": "generic_cooking.png",
		"news":       "custom_news.png",
	})

	if got := resolver.Resolve([]string{"cooking"}); got != filepath.Join("/assets", "generic_cooking.png") {
		t.Fatalf("override category missing: %q", got)
	}
	if got := resolver.Resolve([]string{"news"}); got != filepath.Join("/assets", "custom_news.png") {
		t.Fatalf("override should replace built-in mapping: %q", got)
	}
}

func TestUnknownFallback(t *testing.T) {
	resolver := NewResolver("/assets", "", nil)
	if got := resolver.Unknown(); got != filepath.Join("/assets", "generic_unknown.png") {
		t.Fatalf("unexpected unknown poster: %q", got)
	}

	custom := NewResolver("/assets", "mystery.png", nil)
	if got := custom.Unknown(); got != filepath.Join("/assets", "mystery.png") {
		t.Fatalf("unexpected custom unknown poster: %q", got)
	}
}

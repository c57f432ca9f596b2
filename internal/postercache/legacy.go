package postercache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ImportLegacyJSON loads a flat {"title": "url"} dictionary, the cache format
// of the original shell-era tooling. Null and empty values become negative
// entries. keyFn maps a display title to its cache key; nil falls back to a
// lowercased trim. Returns the number of imported entries.
func (s *Store) ImportLegacyJSON(ctx context.Context, data []byte, keyFn func(string) string) (int, error) {
	if keyFn == nil {
		keyFn = func(title string) string { return strings.ToLower(strings.TrimSpace(title)) }
	}

	var entries map[string]*string
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parse legacy cache: %w", err)
	}

	imported := 0
	for title, url := range entries {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		entry := Entry{
			TitleKey: keyFn(title),
			Title:    title,
			Source:   SourceLegacy,
		}
		if url != nil {
			entry.PosterURL = strings.TrimSpace(*url)
		}
		if err := s.Store(ctx, entry); err != nil {
			return imported, fmt.Errorf("import %q: %w", title, err)
		}
		imported++
	}
	return imported, nil
}

// ExportLegacyJSON renders the cache as the flat dictionary format. Negative
// entries export as null, matching the original representation.
func (s *Store) ExportLegacyJSON(ctx context.Context) ([]byte, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// json.MarshalIndent sorts map keys, so the output is deterministic.
	out := make(map[string]*string, len(entries))
	for _, entry := range entries {
		if entry.Negative() {
			out[entry.Title] = nil
			continue
		}
		url := entry.PosterURL
		out[entry.Title] = &url
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal legacy cache: %w", err)
	}
	return data, nil
}

package testsupport

import (
	"context"
	"testing"

	"marquee/internal/config"
	"marquee/internal/postercache"
)

// MustOpenStore opens a postercache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *postercache.Store {
	t.Helper()

	store, err := postercache.Open(cfg.Paths.CacheDB)
	if err != nil {
		t.Fatalf("postercache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedEntry stores a cache entry for tests.
func SeedEntry(t testing.TB, store *postercache.Store, entry postercache.Entry) {
	t.Helper()

	if err := store.Store(context.Background(), entry); err != nil {
		t.Fatalf("store.Store: %v", err)
	}
}

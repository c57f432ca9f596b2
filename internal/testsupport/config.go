package testsupport

import (
	"path/filepath"
	"testing"

	"marquee/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Input = filepath.Join(base, "input", "guide.xml")
	cfgVal.Paths.Output = filepath.Join(base, "output", "guide.xml")
	cfgVal.Paths.CacheDB = filepath.Join(base, "cache", "posters.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.TVMaze.Enabled = false
	cfgVal.Jellyfin.Enabled = false
	cfgVal.Behavior.ShowProgressETA = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTVMaze points the TVMaze client at baseURL and enables lookups.
func WithTVMaze(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TVMaze.Enabled = true
		b.cfg.TVMaze.BaseURL = baseURL
		b.cfg.TVMaze.IntervalMillis = 0
	}
}

// WithJellyfin points the Jellyfin client at url and enables guide refreshes.
func WithJellyfin(url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Jellyfin.Enabled = true
		b.cfg.Jellyfin.URL = url
		b.cfg.Jellyfin.APIKey = apiKey
	}
}

// WithBatchSize sets the checkpoint cadence on the test config.
func WithBatchSize(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Behavior.BatchSize = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

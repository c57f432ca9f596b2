package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sample_config.yaml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	CacheDB   string `yaml:"cache_db"`
	LogDir    string `yaml:"log_dir"`
	AssetsDir string `yaml:"assets_dir"`
}

// TVMaze contains configuration for the TVMaze metadata API.
type TVMaze struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	IntervalMillis int    `yaml:"interval_millis"`
	MaxRetries     int    `yaml:"max_retries"`
}

// Jellyfin contains configuration for the Jellyfin guide refresh trigger.
type Jellyfin struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Behavior contains configuration for the enrichment pass itself.
type Behavior struct {
	BatchSize         int  `yaml:"batch_size"`
	ShowProgressETA   bool `yaml:"show_progress_eta"`
	SkipExistingIcons bool `yaml:"skip_existing_icons"`
}

// Fallbacks contains configuration for generic poster selection.
type Fallbacks struct {
	Enabled       bool              `yaml:"enabled"`
	UnknownPoster string            `yaml:"unknown_poster"`
	Categories    map[string]string `yaml:"categories"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `yaml:"ntfy_topic"`
	RequestTimeout int    `yaml:"request_timeout"`
	RunStarted     bool   `yaml:"run_started"`
	RunCompleted   bool   `yaml:"run_completed"`
	Errors         bool   `yaml:"errors"`
}

// Watch contains configuration for the input watch loop.
type Watch struct {
	DebounceSeconds int `yaml:"debounce_seconds"`
	SettleSeconds   int `yaml:"settle_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `yaml:"format"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config encapsulates all configuration values for marquee.
//
// Configuration sections by subsystem:
//   - Paths: guide input/output, cache database, assets, and log locations
//   - TVMaze: poster lookup via the TVMaze public API
//   - Jellyfin: Live TV guide refresh integration
//   - Behavior: checkpoint batching and progress reporting
//   - Fallbacks: category-to-generic-poster mapping
//   - Notifications: ntfy push notification settings
//   - Watch: input file watch loop timing
//   - Logging: log format, level, and rotation
type Config struct {
	Paths         Paths         `yaml:"paths"`
	TVMaze        TVMaze        `yaml:"tvmaze"`
	Jellyfin      Jellyfin      `yaml:"jellyfin"`
	Behavior      Behavior      `yaml:"behavior"`
	Fallbacks     Fallbacks     `yaml:"fallbacks"`
	Notifications Notifications `yaml:"notifications"`
	Watch         Watch         `yaml:"watch"`
	Logging       Logging       `yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/marquee/config.yaml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/marquee/config.yaml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("marquee.yaml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories marquee writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Paths.Output),
		filepath.Dir(c.Paths.CacheDB),
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the flock path guarding enrichment runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "marquee.lock")
}

// LogFilePath returns the rotating log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "marquee.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

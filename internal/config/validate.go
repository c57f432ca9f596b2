package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTVMaze(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Input) == "" {
		return errors.New("paths.input must be set")
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		return errors.New("paths.output must be set")
	}
	if c.Paths.Input == c.Paths.Output {
		return errors.New("paths.input and paths.output must differ")
	}
	return nil
}

func (c *Config) validateTVMaze() error {
	if !c.TVMaze.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.TVMaze.BaseURL, "http://") && !strings.HasPrefix(c.TVMaze.BaseURL, "https://") {
		return fmt.Errorf("tvmaze.base_url must start with http:// or https:// (got %q)", c.TVMaze.BaseURL)
	}
	return nil
}

func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if c.Jellyfin.URL == "" {
		return errors.New("jellyfin.url must be set when jellyfin.enabled is true")
	}
	if !strings.HasPrefix(c.Jellyfin.URL, "http://") && !strings.HasPrefix(c.Jellyfin.URL, "https://") {
		return fmt.Errorf("jellyfin.url must start with http:// or https:// (got %q)", c.Jellyfin.URL)
	}
	if c.Jellyfin.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/marquee/config.yaml"
		}
		return fmt.Errorf("jellyfin.api_key is required when jellyfin.enabled is true. Set JELLYFIN_API_KEY env var or edit %s (create with 'marquee config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\" (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeArmory(); err != nil {
		return err
	}
	c.normalizeListing()
	if err := c.normalizeRuns(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeArmory() error {
	c.Armory.ItemURL = strings.TrimSpace(c.Armory.ItemURL)
	if c.Armory.ItemURL == "" {
		c.Armory.ItemURL = defaultArmoryItemURL
	}
	c.Armory.SpellURL = strings.TrimSpace(c.Armory.SpellURL)
	if c.Armory.SpellURL == "" {
		c.Armory.SpellURL = defaultArmorySpellURL
	}
	if value, ok := os.LookupEnv("ARMORY_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Armory.APIKey = strings.TrimSpace(value)
	}
	c.Armory.APIKey = strings.TrimSpace(c.Armory.APIKey)
	if c.Armory.TimeoutSeconds <= 0 {
		c.Armory.TimeoutSeconds = defaultArmoryTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeListing() {
	c.Listing.BaseURL = strings.TrimRight(strings.TrimSpace(c.Listing.BaseURL), "/")
	if c.Listing.BaseURL == "" {
		c.Listing.BaseURL = defaultListingBaseURL
	}
	if c.Listing.TimeoutSeconds <= 0 {
		c.Listing.TimeoutSeconds = defaultListingTimeoutSeconds
	}
}

func (c *Config) normalizeRuns() error {
	var err error
	if strings.TrimSpace(c.Runs.DatabasePath) == "" {
		c.Runs.DatabasePath = filepath.Join(c.Paths.LogDir, defaultRunsDatabaseFile)
	}
	if c.Runs.DatabasePath, err = expandPath(c.Runs.DatabasePath); err != nil {
		return fmt.Errorf("runs.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateArmory(); err != nil {
		return err
	}
	if err := c.validateListing(); err != nil {
		return err
	}
	if err := c.validateRuns(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateArmory() error {
	if err := ensureEndpoint("armory.item_url", c.Armory.ItemURL); err != nil {
		return err
	}
	if err := ensureEndpoint("armory.spell_url", c.Armory.SpellURL); err != nil {
		return err
	}
	if c.Armory.TimeoutSeconds <= 0 {
		return errors.New("armory.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateListing() error {
	if err := ensureEndpoint("listing.base_url", c.Listing.BaseURL); err != nil {
		return err
	}
	if c.Listing.TimeoutSeconds <= 0 {
		return errors.New("listing.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateRuns() error {
	if strings.TrimSpace(c.Runs.DatabasePath) == "" {
		return errors.New("runs.database_path must be set")
	}
	return nil
}

func ensureEndpoint(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", key)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", key)
	}
	return nil
}

package main

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"auraforge/internal/armory"
	"auraforge/internal/config"
	"auraforge/internal/listing"
	"auraforge/internal/runlog"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// openLedger opens the run ledger for the loaded config. Callers own the
// returned store and must close it.
func (c *commandContext) openLedger() (*runlog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return runlog.Open(cfg)
}

// newFetcher builds the armory client from the loaded config.
func (c *commandContext) newFetcher() (*armory.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return armory.New(
		cfg.Armory.ItemURL,
		cfg.Armory.SpellURL,
		armory.WithAPIKey(cfg.Armory.APIKey),
		armory.WithTimeout(time.Duration(cfg.Armory.TimeoutSeconds)*time.Second),
	)
}

// newListingSource builds the listing scraper from the loaded config.
func (c *commandContext) newListingSource() (*listing.Source, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return listing.NewSource(
		cfg.Listing.BaseURL,
		listing.WithTimeout(time.Duration(cfg.Listing.TimeoutSeconds)*time.Second),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

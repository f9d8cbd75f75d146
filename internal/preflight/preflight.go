package preflight

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"auraforge/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	armoryHeader := http.Header{}
	if key := strings.TrimSpace(cfg.Armory.APIKey); key != "" {
		armoryHeader.Set("Authorization", "Bearer "+key)
	}
	results = append(results, CheckEndpoint(ctx, "Armory item service", cfg.Armory.ItemURL, armoryHeader))

	// When both record kinds are served from one host, the item check
	// already covers it.
	if spellUsesDistinctHost(cfg) {
		results = append(results, CheckEndpoint(ctx, "Armory spell service", cfg.Armory.SpellURL, armoryHeader))
	}

	results = append(results, CheckEndpoint(ctx, "Listing source", cfg.Listing.BaseURL, nil))

	return results
}

func spellUsesDistinctHost(cfg *config.Config) bool {
	return hostOf(cfg.Armory.ItemURL) != hostOf(cfg.Armory.SpellURL)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return parsed.Host
}

package config

const (
	defaultOutputDir             = "~/.local/share/auraforge/output"
	defaultLogDir                = "~/.local/share/auraforge/logs"
	defaultArmoryItemURL         = "https://armory.auraforge.dev/v1/item"
	defaultArmorySpellURL        = "https://armory.auraforge.dev/v1/spell"
	defaultArmoryTimeoutSeconds  = 10
	defaultListingBaseURL        = "https://www.wowhead.com"
	defaultListingTimeoutSeconds = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultRunsDatabaseFile      = "runs.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:  defaultCacheDir(),
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Armory: Armory{
			ItemURL:        defaultArmoryItemURL,
			SpellURL:       defaultArmorySpellURL,
			TimeoutSeconds: defaultArmoryTimeoutSeconds,
		},
		Listing: Listing{
			BaseURL:        defaultListingBaseURL,
			TimeoutSeconds: defaultListingTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

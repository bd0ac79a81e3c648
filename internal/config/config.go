// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RawURL is the remote location of the raw player dataset.
	RawURL string `koanf:"raw_url"`

	// RawPath is the local cache path for the raw dataset.
	RawPath string `koanf:"raw_path"`

	// OutputPath is where the ranked (and later enriched) dataset lives.
	OutputPath string `koanf:"output_path"`

	// Limit caps the ranked output size.
	Limit int `koanf:"limit"`

	// FetchTimeoutMS bounds the raw dataset download.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MetricsAddr, when set, serves Prometheus metrics during the run,
	// e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// RepairEnabled toggles the column-split repair pass.
	RepairEnabled bool `koanf:"repair_enabled"`

	// Avatar URL template parameters.
	AvatarBaseURL    string `koanf:"avatar_base_url"`
	AvatarRounded    bool   `koanf:"avatar_rounded"`
	AvatarBackground string `koanf:"avatar_background"`
	AvatarSize       int    `koanf:"avatar_size"`
	AvatarFormat     string `koanf:"avatar_format"`

	// FutbinBaseURL is the search endpoint for the futbin reference URL.
	FutbinBaseURL string `koanf:"futbin_base_url"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		RawURL:           "https://raw.githubusercontent.com/prashantghimire/sofifa-web-scraper/main/output/player-data-full.csv",
		RawPath:          "data/players_raw.csv",
		OutputPath:       "assets/players.csv",
		Limit:            1000,
		FetchTimeoutMS:   60_000,
		MetricsAddr:      "",
		RepairEnabled:    true,
		AvatarBaseURL:    "https://ui-avatars.com/api/",
		AvatarRounded:    true,
		AvatarBackground: "random",
		AvatarSize:       256,
		AvatarFormat:     "png",
		FutbinBaseURL:    "https://www.futbin.com/search",
	}
}

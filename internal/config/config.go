package config

import "time"

// DefaultSourceURL is the published Apps Script endpoint serving the sheet.
const DefaultSourceURL = "https://script.google.com/macros/s/AKfycbygCOycOPsI0RZbQ7j_aIwVTooKs1y5O9AkRWtNOUc3BdGpX9ZStP1mipleMppdkjMNXw/exec"

// Config represents the complete discograph configuration.
// It can be loaded from .discograph/config.yml with environment variable overrides.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// SourceConfig configures where the discography payload is fetched from.
type SourceConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`         // sheet endpoint returning the JSON payload
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // per-request timeout
}

// CacheConfig defines snapshot caching behavior.
type CacheConfig struct {
	Location string        `yaml:"location" mapstructure:"location"` // Override default ~/.discograph/cache
	MaxAge   time.Duration `yaml:"max_age" mapstructure:"max_age"`   // Snapshots older than this are refetched
	Key      string        `yaml:"key" mapstructure:"key"`           // Snapshot key for the payload
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // trace, debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     DefaultSourceURL,
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Location: "", // Empty means use default ~/.discograph/cache
			MaxAge:   24 * time.Hour,
			Key:      "discography_data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

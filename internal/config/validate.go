package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalidSourceURL indicates a source URL that is not http(s)
	ErrInvalidSourceURL = errors.New("invalid source url")

	// ErrInvalidTimeout indicates a non-positive request timeout
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrEmptyAddr indicates a missing server listen address
	ErrEmptyAddr = errors.New("empty server address")
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate checks that the configuration is valid and complete.
// An empty source URL is allowed here; fetching reports it when attempted.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateSource(&cfg.Source); err != nil {
		errs = append(errs, err)
	}
	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}
	if err := validateLog(&cfg.Log); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: server.addr is required", ErrEmptyAddr))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateSource(cfg *SourceConfig) error {
	var errs []error

	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: must be an http or https URL, got '%s'", ErrInvalidSourceURL, cfg.URL))
		}
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: source.timeout must be positive, got %s", ErrInvalidTimeout, cfg.Timeout))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	var errs []error

	// zero means any cached snapshot is fresh
	if cfg.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("%w: cache.max_age cannot be negative, got %s", ErrInvalidCacheSettings, cfg.MaxAge))
	}
	if strings.TrimSpace(cfg.Key) == "" {
		errs = append(errs, fmt.Errorf("%w: cache.key is required", ErrInvalidCacheSettings))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	var errs []error

	if !validLogLevels[strings.ToLower(cfg.Level)] {
		errs = append(errs, fmt.Errorf("%w: got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	format := strings.ToLower(cfg.Format)
	if format != "text" && format != "json" {
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be > 0 (got %v)", c.API.RequestTimeout)
	}
	if c.API.UploadTimeout <= 0 {
		return fmt.Errorf("api.upload_timeout must be > 0 (got %v)", c.API.UploadTimeout)
	}

	if err := c.Scan.validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	if c.Cache.DBPath == "" {
		return fmt.Errorf("cache.db_path must not be empty")
	}
	if c.Cache.ImageDir == "" {
		return fmt.Errorf("cache.image_dir must not be empty")
	}
	if c.Cache.ImageRetention <= 0 {
		return fmt.Errorf("cache.image_retention must be > 0 (got %v)", c.Cache.ImageRetention)
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}

func (s *ScanConfig) validate() error {
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", s.MaxAttempts)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", s.PollInterval)
	}
	return nil
}

func (f *FeedConfig) validate() error {
	if f.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %v)", f.PollInterval)
	}
	if f.ImageGenBudget <= 0 {
		return fmt.Errorf("image_gen_budget must be > 0 (got %v)", f.ImageGenBudget)
	}
	return nil
}

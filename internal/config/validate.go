package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePassages(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ContentDir) == "" {
		return errors.New("paths.content_dir must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if !strings.HasPrefix(c.Scan.Extension, ".") || len(c.Scan.Extension) < 2 {
		return fmt.Errorf("scan.extension %q must name an extension like .mp3", c.Scan.Extension)
	}
	if c.Scan.Workers < 0 {
		return errors.New("scan.workers must be >= 0")
	}
	return nil
}

func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind must be set")
	}
	for key, value := range map[string]int{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive (seconds)", key)
		}
	}
	return nil
}

func (c *Config) validatePassages() error {
	// An empty base_url disables passage lookups; the rest of the
	// section is irrelevant then.
	if strings.TrimSpace(c.Passages.BaseURL) == "" {
		return nil
	}
	u, err := url.Parse(c.Passages.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("passages.base_url %q must be an http(s) URL", c.Passages.BaseURL)
	}
	if strings.TrimSpace(c.Passages.Language) == "" {
		return errors.New("passages.language must be set")
	}
	if len(c.Passages.Languages) == 0 {
		return errors.New("passages.languages must include at least one language")
	}
	if c.Passages.TimeoutSeconds <= 0 {
		return errors.New("passages.timeout_seconds must be positive")
	}
	if c.Passages.RequestsPerMinute <= 0 {
		return errors.New("passages.requests_per_minute must be positive")
	}
	if c.Passages.CacheTTLHours < 0 {
		return errors.New("passages.cache_ttl_hours must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	validFormats := map[string]bool{
		"auto":   true,
		"pretty": true,
		"json":   true,
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format: %s (must be auto, pretty, or json)", c.Logging.Format)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizePassages()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ContentDir, err = expandPath(c.Paths.ContentDir); err != nil {
		return fmt.Errorf("paths.content_dir: %w", err)
	}

	// Catalog files live inside the content tree unless placed
	// explicitly.
	if strings.TrimSpace(c.Paths.ManifestPath) == "" {
		c.Paths.ManifestPath = filepath.Join(c.Paths.ContentDir, defaultManifestName)
	}
	if c.Paths.ManifestPath, err = expandPath(c.Paths.ManifestPath); err != nil {
		return fmt.Errorf("paths.manifest_path: %w", err)
	}

	if strings.TrimSpace(c.Paths.ReferencePath) == "" {
		c.Paths.ReferencePath = filepath.Join(c.Paths.ContentDir, defaultReferenceName)
	}
	if c.Paths.ReferencePath, err = expandPath(c.Paths.ReferencePath); err != nil {
		return fmt.Errorf("paths.reference_path: %w", err)
	}

	if strings.TrimSpace(c.Paths.WebDir) != "" {
		if c.Paths.WebDir, err = expandPath(c.Paths.WebDir); err != nil {
			return fmt.Errorf("paths.web_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeScan() {
	ext := strings.TrimSpace(c.Scan.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Scan.Extension = ext
}

func (c *Config) normalizePassages() {
	c.Passages.Language = strings.ToLower(strings.TrimSpace(c.Passages.Language))
	if strings.TrimSpace(c.Passages.CacheDir) == "" {
		c.Passages.CacheDir = defaultCacheDir()
	}
	if expanded, err := expandPath(c.Passages.CacheDir); err == nil {
		c.Passages.CacheDir = expanded
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

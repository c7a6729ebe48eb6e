// Package config loads the lectern configuration: a TOML file layered
// under environment overrides, with defaults that work out of the box
// for a content tree under the home directory.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the content tree and catalog file locations.
type Paths struct {
	// ContentDir is the root whose subdirectories are the collections.
	ContentDir string `toml:"content_dir"`
	// ManifestPath is where the catalog is written and served from.
	// Defaults to {content_dir}/manifest.json.
	ManifestPath string `toml:"manifest_path"`
	// ReferencePath is the canonical collection list.
	// Defaults to {content_dir}/tractates.json.
	ReferencePath string `toml:"reference_path"`
	// WebDir optionally holds the static player to serve at /.
	WebDir string `toml:"web_dir"`
}

// Scan contains settings for the manifest build pass.
type Scan struct {
	Extension string `toml:"extension"`
	Workers   int    `toml:"workers"` // 0 = one per CPU
}

// Server contains HTTP server settings.
type Server struct {
	Bind          string   `toml:"bind"`
	ReadTimeout   int      `toml:"read_timeout"`  // seconds
	WriteTimeout  int      `toml:"write_timeout"` // seconds
	IdleTimeout   int      `toml:"idle_timeout"`  // seconds
	CORSOrigins   []string `toml:"cors_origins"`
	WatchManifest bool     `toml:"watch_manifest"`
}

// Passages contains settings for the remote text service client.
type Passages struct {
	BaseURL           string   `toml:"base_url"`
	Language          string   `toml:"language"`
	Languages         []string `toml:"languages"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	CacheDir          string   `toml:"cache_dir"`
	CacheTTLHours     int      `toml:"cache_ttl_hours"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"` // auto, pretty, json
	Level  string `toml:"level"`  // debug, info, warn, error
}

// Config encapsulates all configuration values for lectern.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scan     Scan     `toml:"scan"`
	Server   Server   `toml:"server"`
	Passages Passages `toml:"passages"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lectern/config.toml")
}

// Load locates, parses, and validates a configuration file. The
// returned config has environment overrides applied and all path
// fields expanded. A missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lectern.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// applyEnv layers environment variables over file values. Highest
// precedence; a set variable always wins.
func (c *Config) applyEnv() {
	for env, target := range map[string]*string{
		"LECTERN_CONTENT_DIR":    &c.Paths.ContentDir,
		"LECTERN_MANIFEST_PATH":  &c.Paths.ManifestPath,
		"LECTERN_REFERENCE_PATH": &c.Paths.ReferencePath,
		"LECTERN_WEB_DIR":        &c.Paths.WebDir,
		"LECTERN_BIND":           &c.Server.Bind,
		"LECTERN_PASSAGES_URL":   &c.Passages.BaseURL,
		"LECTERN_CACHE_DIR":      &c.Passages.CacheDir,
		"LECTERN_LOG_LEVEL":      &c.Logging.Level,
		"LECTERN_LOG_FORMAT":     &c.Logging.Format,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

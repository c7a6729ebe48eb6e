package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultContentDir        = "~/Lectern/content"
	defaultManifestName      = "manifest.json"
	defaultReferenceName     = "tractates.json"
	defaultExtension         = ".mp3"
	defaultBind              = "127.0.0.1:8080"
	defaultReadTimeout       = 15
	defaultWriteTimeout      = 30
	defaultIdleTimeout       = 60
	defaultPassagesBaseURL   = "https://www.sefaria.org/api/texts"
	defaultPassagesLanguage  = "en"
	defaultPassagesTimeout   = 15
	defaultRequestsPerMinute = 60
	defaultCacheTTLHours     = 168
	defaultLogFormat         = "auto"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ContentDir: defaultContentDir,
		},
		Scan: Scan{
			Extension: defaultExtension,
		},
		Server: Server{
			Bind:          defaultBind,
			ReadTimeout:   defaultReadTimeout,
			WriteTimeout:  defaultWriteTimeout,
			IdleTimeout:   defaultIdleTimeout,
			CORSOrigins:   []string{"*"},
			WatchManifest: true,
		},
		Passages: Passages{
			BaseURL:           defaultPassagesBaseURL,
			Language:          defaultPassagesLanguage,
			Languages:         []string{"en", "he"},
			TimeoutSeconds:    defaultPassagesTimeout,
			RequestsPerMinute: defaultRequestsPerMinute,
			CacheDir:          defaultCacheDir(),
			CacheTTLHours:     defaultCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lectern", "passages")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/lectern/passages"
	}
	return filepath.Join(home, ".cache", "lectern", "passages")
}

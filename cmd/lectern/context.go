package main

import (
	"strings"
	"sync"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
)

// commandContext carries lazily loaded shared state across commands.
type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	logOnce sync.Once
	log     *logger.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logging returns the process logger, built from config on first use.
// When the config itself cannot be loaded the defaults apply, so load
// errors still get reported somewhere.
func (c *commandContext) logging() *logger.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.log = logger.New(logger.Config{})
			return
		}
		format := cfg.Logging.Format
		if format == "auto" {
			format = ""
		}
		c.log = logger.New(logger.Config{
			Format: format,
			Level:  logger.ParseLevel(cfg.Logging.Level),
		})
	})
	return c.log
}

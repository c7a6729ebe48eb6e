package providers

import (
	"github.com/samber/do/v2"

	"github.com/lecternapp/lectern/internal/config"
	"github.com/lecternapp/lectern/internal/logger"
)

// ProvideLogger provides the application logger configured from the
// logging section.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	format := cfg.Logging.Format
	if format == "auto" {
		// Empty means detect from the output terminal.
		format = ""
	}

	return logger.New(logger.Config{
		Format: format,
		Level:  logger.ParseLevel(cfg.Logging.Level),
	}), nil
}

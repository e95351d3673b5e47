package cli

import (
	"io"
	"log/slog"

	"github.com/aretw0/infoboard/internal/config"
	"github.com/aretw0/infoboard/internal/logging"
)

// NewLogger builds the application logger from cfg, writing to w.
// levelOverride, when non-empty, replaces cfg.Level.
func NewLogger(w io.Writer, cfg config.LogConfig, levelOverride string) (*slog.Logger, error) {
	name := cfg.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}

	if cfg.Format == "json" {
		return logging.NewJSON(w, level), nil
	}
	return logging.NewText(w, level), nil
}

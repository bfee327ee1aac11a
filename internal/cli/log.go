package cli

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.WrapPrefix(err, "log level", 0)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	return log, nil
}

// ConfigLogger returns the logger for cfg. An unknown level falls back to
// warn; the fallback and cfg.Warnings are logged rather than treated as fatal.
func ConfigLogger(cfg Config, w io.Writer) *logrus.Logger {
	log, err := NewLogger(cfg.LogLevel, w)
	if err != nil {
		log, _ = NewLogger("warn", w)
		log.WithError(err).Warn("ignoring log level")
	}

	for _, warning := range cfg.Warnings {
		log.Warn("ignoring configuration: " + warning)
	}
	return log
}

// Package logging builds the structured logger shared by the CLI and the server.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config holds logger configuration
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, text
	Output  io.Writer
	Service string
	Version string
}

// New creates a logger with the given configuration. Unknown levels fall back to info.
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	logger.SetOutput(output)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Service != "" || cfg.Version != "" {
		logger.AddHook(&serviceHook{service: cfg.Service, version: cfg.Version})
	}

	return logger
}

// serviceHook stamps every entry with service metadata.
type serviceHook struct {
	service string
	version string
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if h.service != "" {
		entry.Data["service"] = h.service
	}
	if h.version != "" {
		entry.Data["version"] = h.version
	}
	return nil
}

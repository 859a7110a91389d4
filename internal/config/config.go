// Package config holds runtime settings shared by the CLI commands and builds
// the process logger from them.
package config

import (
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// Log formats accepted by NewLogger.
const (
	FormatAuto = "auto" // text at debug level and below, JSON otherwise
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the runtime configuration.
type Config struct {
	// LogLevel is a logrus level name: panic, fatal, error, warn, info,
	// debug or trace.
	LogLevel string

	// LogFormat is FormatAuto, FormatText or FormatJSON.
	LogFormat string

	// Workers is the number of goroutines the morphology engine shards rows
	// across. Zero means GOMAXPROCS.
	Workers int
}

// Default returns the configuration used when no flags or environment
// variables are set.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: FormatAuto,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level")
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatAuto, FormatText, FormatJSON:
	default:
		return errors.Errorf("invalid log format %q: want auto, text or json", c.LogFormat)
	}
	if c.Workers < 0 {
		return errors.Errorf("invalid workers %d: must not be negative", c.Workers)
	}
	return nil
}

// Engine returns the morphology engine for this configuration.
func (c Config) Engine() morph.Engine {
	return morph.Engine{Workers: c.Workers}
}

// EffectiveWorkers resolves Workers the way the engine does.
func (c Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// NewLogger builds a logger writing to out. The MCP server owns stdout, so
// callers pass stderr.
func NewLogger(c Config, out io.Writer) (*logrus.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := logrus.ParseLevel(c.LogLevel)

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	format := strings.ToLower(c.LogFormat)
	if format == FormatAuto {
		format = FormatJSON
		if level >= logrus.DebugLevel {
			format = FormatText
		}
	}

	if format == FormatText {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger, nil
}

package config

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/TudorHulban/taskscheduler/internal/logger"
)

type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `json:"level"`

	// Format is "json" or "console".
	Format string `json:"format"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}

	if c.Format == "" {
		c.Format = logger.FormatJSON
	}
}

func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown log level %s", c.Level)
	}

	if c.Format != logger.FormatJSON && c.Format != logger.FormatConsole {
		return fmt.Errorf("unknown log format %s", c.Format)
	}

	return nil
}

// Logger builds the zerolog logger this section describes. A nil writer means stderr.
func (c LoggingConfig) Logger(component string, w io.Writer) *logger.ZerologLogger {
	return logger.NewZerologLogger(
		&logger.ParamsNewZerologLogger{
			Writer:    w,
			Component: component,
			Level:     c.Level,
			Format:    c.Format,
		},
	)
}

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

type ParamsNewZerologLogger struct {
	Writer io.Writer

	Component string
	Level     string
	Format    string
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger writes to stderr unless a writer is given.
// An unknown level falls back to info. All logs include the component field.
func NewZerologLogger(params *ParamsNewZerologLogger) *ZerologLogger {
	var out io.Writer = os.Stderr
	if params.Writer != nil {
		out = params.Writer
	}

	if strings.EqualFold(params.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level, errParse := zerolog.ParseLevel(strings.ToLower(params.Level))
	if errParse != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return &ZerologLogger{
		log: zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Str("component", params.Component).
			Logger(),
	}
}

// With returns a child logger tagged with an extra field.
func (l *ZerologLogger) With(key string, value any) Logger {
	return &ZerologLogger{
		log: l.log.With().Interface(key, value).Logger(),
	}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()

	for k, v := range fields {
		ev = ev.Interface(k, v)
	}

	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

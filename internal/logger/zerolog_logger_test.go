package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZerologLoggerJSON(t *testing.T) {
	var buf bytes.Buffer

	l := NewZerologLogger(
		&ParamsNewZerologLogger{
			Writer:    &buf,
			Component: "solver",
			Level:     "debug",
		},
	)

	l.Debugw("task placed", map[string]any{"task": "A", "start": 4})

	var line map[string]any
	require.NoError(t,
		json.Unmarshal(buf.Bytes(), &line),
	)
	require.Equal(t, "solver", line["component"])
	require.Equal(t, "debug", line["level"])
	require.Equal(t, "A", line["task"])
	require.EqualValues(t, 4, line["start"])
	require.Equal(t, "task placed", line["message"])
}

func TestZerologLoggerLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewZerologLogger(
		&ParamsNewZerologLogger{
			Writer:    &buf,
			Component: "engine",
			Level:     "warn",
		},
	)

	l.Debugf("debug %d", 1)
	l.Infof("info %s", "x")
	require.Zero(t, buf.Len())

	l.Warnf("warn")
	l.Errorf("error")
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestZerologLoggerConsole(t *testing.T) {
	var buf bytes.Buffer

	l := NewZerologLogger(
		&ParamsNewZerologLogger{
			Writer:    &buf,
			Component: "cli",
			Level:     "not-a-level",
			Format:    FormatConsole,
		},
	).With("run", "r-1")

	l.Debugf("hidden")
	l.Infof("visible")

	require.Contains(t, buf.String(), "visible")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "r-1")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}

	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")

	require.Equal(t, l, l.With("run", "r-1"))
}

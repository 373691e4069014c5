// SPDX-License-Identifier: MIT
package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/katalvlaran/lvpca/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := logging.New(&buf, "info", "text")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown", slog.Int("k", 2))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=2")
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := logging.New(&buf, "debug", "JSON")
	require.NoError(t, err)
	l.Debug("fit", slog.String("solver", "svd"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "fit", rec["msg"])
	assert.Equal(t, "svd", rec["solver"])
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := logging.New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorIs(t, err, logging.ErrUnknownFormat)

	_, err = logging.New(&bytes.Buffer{}, "verbose", "text")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { logging.Discard().Error("dropped") })
}

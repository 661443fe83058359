package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithOutput(&buf), WithAttr(slog.String("service", "assetd")))
	require.NoError(t, err)

	l.Info("hello", "key", "a.png")
	l.Debug("dropped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "a.png", rec["key"])
	assert.Equal(t, "assetd", rec["service"])
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithOutput(&buf), WithFormat(FormatText), WithLevel(slog.LevelDebug))
	require.NoError(t, err)

	l.Debug("evicted", "key", "b.wav")
	assert.Contains(t, buf.String(), "msg=evicted")
	assert.Contains(t, buf.String(), "key=b.wav")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(WithFormat("yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

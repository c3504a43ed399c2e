package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/config"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	f, err := parseFlags(newFlagSet(), []string{"-assets", "/data", "-fullscreen"})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Log.Level = "debug"
	require.NoError(t, f.apply(&cfg))

	assert.Equal(t, "/data", cfg.Assets.Root)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag keeps file value")
}

func TestFlagsRejectBadLevel(t *testing.T) {
	f, err := parseFlags(newFlagSet(), []string{"-log-level", "loud"})
	require.NoError(t, err)
	cfg := config.Default()
	assert.Error(t, f.apply(&cfg))
}

func TestFlagsRejectPositionalArgs(t *testing.T) {
	_, err := parseFlags(newFlagSet(), []string{"extra"})
	assert.Error(t, err)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.Log{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "key", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.Log{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)
	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestSettingsFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.ZoomFOV = 20
	cfg.Snow.Seed = 7
	cfg.Light.SunYaw = 90
	s := settingsFrom(cfg, 640, 480)
	assert.Equal(t, float32(90), s.SunYaw)
	assert.Equal(t, float32(20), s.ZoomFOV)
	assert.Equal(t, int64(7), s.SnowSeed)
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 480, s.Height)
}

// core locks the main goroutine to the main thread; the binary must not
// repeat it.
func TestMainHasNoInit(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "main.go", nil, 0)
	require.NoError(t, err)
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			assert.NotEqual(t, "init", fn.Name.Name)
		}
	}
}

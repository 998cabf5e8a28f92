package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSONToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.log")

	log, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.With(String("component", "test")).Info("hello", Int("n", 3))
	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"msg":"hello"`)
	require.Contains(t, out, `"component":"test"`)
	require.Contains(t, out, `"n":3`)
	require.False(t, strings.Contains(out, "hidden"))
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Info("ignored")
	require.Same(t, log, log.With(String("k", "v")))
	require.NoError(t, log.Sync())
}

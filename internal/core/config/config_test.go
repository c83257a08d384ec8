package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/coderev/internal/core/review"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ModeProduction, cfg.Mode)
		assert.Equal(t, DefaultDevEndpoint, cfg.DevEndpoint)
		assert.Equal(t, review.DefaultPrompt, cfg.Prompt)
		assert.Equal(t, DefaultAccept, cfg.Accept)
		assert.Equal(t, FormatAuto, cfg.Render.Format)
		assert.Equal(t, "tokyo-night", cfg.Render.Theme)
		assert.Zero(t, cfg.Timeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
mode: development
endpoint: https://review.example.com
dev_endpoint: http://127.0.0.1:9000
prompt: "Review this:\n"
language: go
timeout: 30s
render:
  theme: gruvbox
  format: plain
  word_wrap: 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, "https://review.example.com", cfg.Endpoint)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.DevEndpoint)
	assert.Equal(t, "Review this:\n", cfg.Prompt)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "gruvbox", cfg.Render.Theme)
	assert.Equal(t, FormatPlain, cfg.Render.Format)
	assert.Equal(t, 100, cfg.Render.WordWrap)
	assert.Equal(t, DefaultAccept, cfg.Accept, "unset fields keep defaults")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "mode: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad mode", "mode: staging", "mode must be"},
		{"bad format", "render:\n  format: html", "render.format"},
		{"bad theme", "render:\n  theme: neon", "render.theme"},
		{"negative timeout", "timeout: -1s", "timeout cannot be negative"},
		{"negative wrap", "render:\n  word_wrap: -5", "word_wrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package plotsurface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6.4, cfg.Width)
	assert.Equal(t, 4.8, cfg.Height)
	assert.Equal(t, 600, cfg.DPI)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 8.0\ndpi = 300\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Width)
	assert.Equal(t, 4.8, cfg.Height)
	assert.Equal(t, 300, cfg.DPI)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"negative dpi", "dpi = -1\n"},
		{"zero height", "height = 0.0\n"},
		{"wrong type", "width = \"wide\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := LoadConfig(path)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

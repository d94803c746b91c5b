package app

import (
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/bunnygl/logx"
)

func writeConfig(t *testing.T, body string) hackpadfs.FS {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.WriteFullFile(fsys, "bunnygl.toml", []byte(body), 0o644))
	return fsys
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	cfg, err := LoadConfig(fsys, "bunnygl.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "BunnyGL Engine", cfg.Title)
	assert.False(t, cfg.VSync)
	assert.Equal(t, mgl32.Vec4{0.1, 0.1, 0.1, 1}, cfg.Clear())
}

func TestLoadConfigOverrides(t *testing.T) {
	fsys := writeConfig(t, `
title = "Planet"
width = 1600
height = 900
vsync = true
clear_color = [0.0, 0.0, 0.05, 1.0]
log_level = "trace"
scene = "planet"
capture_path = "planet.png"
max_frames = 1
`)

	cfg, err := LoadConfig(fsys, "bunnygl.toml")
	require.NoError(t, err)
	assert.Equal(t, "Planet", cfg.Title)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 900, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.Equal(t, [4]float32{0, 0, 0.05, 1}, cfg.ClearColor)
	assert.Equal(t, logx.LevelTrace, cfg.Level())
	assert.Equal(t, "planet", cfg.Scene)
	assert.Equal(t, "planet.png", cfg.CapturePath)
	assert.Equal(t, 1, cfg.MaxFrames)

	assert.Equal(t, 4, cfg.GLMajor, "omitted keys keep their defaults")
	assert.Equal(t, "resources/shaders", cfg.ShaderDir)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown key", body: "fullscreen = true\n", want: "strict mode"},
		{name: "hot reload switch", body: "hot_reload = true\n", want: "strict mode"},
		{name: "zero width", body: "width = 0\n", want: "window size must be positive"},
		{name: "negative height", body: "height = -1\n", want: "window size must be positive"},
		{name: "old GL", body: "gl_major = 2\ngl_minor = 1\n", want: "below the 3.3 core profile"},
		{name: "bad level", body: `log_level = "loud"` + "\n", want: "unknown log level"},
		{name: "bad syntax", body: "width = \n", want: "bunnygl.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), "bunnygl.toml")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestConfigLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

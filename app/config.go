package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hack-pad/hackpadfs"
	"github.com/pelletier/go-toml/v2"

	"github.com/gmlewis/bunnygl/logx"
)

// Config holds the startup settings of an Application.
type Config struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`

	// GLMajor and GLMinor select the core-profile context version.
	GLMajor int `toml:"gl_major"`
	GLMinor int `toml:"gl_minor"`

	ClearColor [4]float32 `toml:"clear_color"`
	LogLevel   string     `toml:"log_level"`
	ShaderDir  string     `toml:"shader_dir"`
	Scene      string     `toml:"scene"`

	// CapturePath, when set, receives a PNG of the first rendered frame.
	CapturePath string `toml:"capture_path"`
	// MaxFrames stops the loop after that many frames; 0 runs until the
	// window is closed.
	MaxFrames int `toml:"max_frames"`
}

// DefaultConfig returns the settings used for anything a config file omits.
func DefaultConfig() Config {
	return Config{
		Title:      "BunnyGL Engine",
		Width:      1280,
		Height:     720,
		Resizable:  true,
		GLMajor:    4,
		GLMinor:    1,
		ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		LogLevel:   "info",
		ShaderDir:  "resources/shaders",
		Scene:      "triangle",
	}
}

// LoadConfig reads a TOML file from fsys over DefaultConfig. A missing file
// yields the defaults. Unknown keys are an error.
func LoadConfig(fsys hackpadfs.FS, path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := fsys.Open(path)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("LoadConfig(%q): %w", path, err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("LoadConfig(%q): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("LoadConfig(%q): %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.GLMajor < 3 || (c.GLMajor == 3 && c.GLMinor < 3) {
		return fmt.Errorf("OpenGL %v.%v is below the 3.3 core profile", c.GLMajor, c.GLMinor)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max_frames must not be negative, got %v", c.MaxFrames)
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed LogLevel.
func (c Config) Level() slog.Level {
	level, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Clear returns ClearColor as a vector.
func (c Config) Clear() mgl32.Vec4 { return mgl32.Vec4(c.ClearColor) }

// sandbox opens a window and runs one of the demo scenes.
//
// Usage:
//
//	sandbox [-config bunnygl.toml] [-scene triangle|planet]
//
// Paths in the configuration are relative to the working directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/gmlewis/bunnygl/app"
	"github.com/gmlewis/bunnygl/app/desktop"
	"github.com/gmlewis/bunnygl/gpu/opengl"
	"github.com/gmlewis/bunnygl/logx"
	"github.com/gmlewis/bunnygl/render"
)

var (
	configPath = flag.String("config", "bunnygl.toml", "TOML configuration file")
	sceneName  = flag.String("scene", "", "scene to run, overriding the configuration")
	logLevel   = flag.String("log", "", "log level, overriding the configuration")
)

var scenes = map[string]func() app.Scene{
	"triangle": func() app.Scene { return &triangleScene{} },
	"planet":   func() app.Scene { return &planetScene{} },
}

func sceneNames() string {
	var names []string
	for name := range scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func main() {
	flag.Parse()

	logger := logx.New(os.Stderr, nil)
	if err := run(logger); err != nil {
		logx.Fatal(logger, "sandbox failed", "err", err)
	}
}

func run(logger *slog.Logger) error {
	fsys, err := workDirFS()
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfig(fsys, *configPath)
	if err != nil {
		return err
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = logx.New(os.Stderr, &logx.Options{Level: cfg.Level()})

	newScene, ok := scenes[cfg.Scene]
	if !ok {
		return fmt.Errorf("unknown scene %q (have %v)", cfg.Scene, sceneNames())
	}

	win, err := desktop.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer win.Close()

	api, err := opengl.New()
	if err != nil {
		return err
	}
	dev := render.NewDevice(api, logger)
	vendor, rendererName, version := dev.Info()
	logger.Info("OpenGL context initialized", "vendor", vendor, "renderer", rendererName, "version", version)

	a := app.New(app.Options{
		Config: cfg,
		Window: win,
		Device: dev,
		FS:     fsys,
		Now:    desktop.Now,
	})
	return a.Run(newScene())
}

// workDirFS returns the working directory as a hackpadfs.FS.
func workDirFS() (hackpadfs.FS, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root := osfs.NewFS()
	rel, err := root.FromOSPath(dir)
	if err != nil {
		return nil, fmt.Errorf("FromOSPath(%q): %w", dir, err)
	}
	fsys, err := root.Sub(rel)
	if err != nil {
		return nil, fmt.Errorf("Sub(%q): %w", rel, err)
	}
	return fsys, nil
}

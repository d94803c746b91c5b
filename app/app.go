// Package app runs a Scene in a window: it owns the frame loop, routes
// window events to the renderer and the scene, and loads the startup
// configuration.
package app

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/hack-pad/hackpadfs"

	"github.com/gmlewis/bunnygl/logx"
	"github.com/gmlewis/bunnygl/render"
	"github.com/gmlewis/bunnygl/resource"
)

// Options wires an Application to its collaborators.
type Options struct {
	Config Config
	Window Window
	Device *render.Device
	// FS holds the shader sources below Config.ShaderDir and receives the
	// capture at Config.CapturePath.
	FS hackpadfs.FS
	// Now is the monotonic seconds source for frame timing.
	Now func() float64
}

// Application drives one Scene at a time.
type Application struct {
	cfg   Config
	win   Window
	dev   *render.Device
	fsys  hackpadfs.FS
	log   *slog.Logger
	clock *Clock

	renderer  *render.Renderer
	resources *resource.Cache
	scene     Scene
	frames    int
}

// New returns an Application with an initialized Renderer.
func New(opts Options) *Application {
	a := &Application{
		cfg:       opts.Config,
		win:       opts.Window,
		dev:       opts.Device,
		fsys:      opts.FS,
		log:       opts.Device.Logger().With(logx.ComponentKey, "app"),
		clock:     NewClock(opts.Now),
		renderer:  render.NewRenderer(opts.Device),
		resources: resource.New(opts.Device, opts.FS, opts.Config.ShaderDir),
	}
	a.renderer.Init()
	return a
}

func (a *Application) Renderer() *render.Renderer { return a.renderer }

func (a *Application) Resources() *resource.Cache { return a.resources }

// Frames returns the number of frames presented by the last Run.
func (a *Application) Frames() int { return a.frames }

// Run initializes scene and renders it every frame until the window asks
// to close, the scene fails, or Config.MaxFrames is reached. The scene is
// shut down and the resource cache cleared before Run returns.
func (a *Application) Run(scene Scene) error {
	width, height := a.win.FramebufferSize()
	a.renderer.OnWindowResize(width, height)

	env := &Env{
		Device:    a.dev,
		Renderer:  a.renderer,
		Resources: a.resources,
		Log:       a.dev.Logger().With(logx.ComponentKey, "scene"),
		Width:     width,
		Height:    height,
	}
	if err := scene.Init(env); err != nil {
		return fmt.Errorf("scene init: %w", err)
	}
	a.scene = scene
	a.win.SetEventHandler(a)
	defer func() {
		a.win.SetEventHandler(nil)
		scene.Shutdown()
		a.scene = nil
		a.resources.ClearAll()
	}()

	a.log.Info("running", "scene", a.cfg.Scene, "width", width, "height", height)
	cmd := a.renderer.Command()
	a.frames = 0
	for !a.win.ShouldClose() {
		dt := a.clock.Tick()

		cmd.SetClearColor(a.cfg.Clear())
		cmd.Clear()

		scene.Update(dt)
		if err := scene.Render(a.renderer); err != nil {
			return fmt.Errorf("frame %v: %w", a.frames, err)
		}
		if a.renderer.State() == render.InScene {
			return fmt.Errorf("frame %v: %w", a.frames, render.ErrSceneActive)
		}
		if err := a.dev.CheckError("frame"); err != nil {
			a.log.Warn("GL error after frame", "frame", a.frames, "err", err)
		}

		if a.frames == 0 && a.cfg.CapturePath != "" {
			if err := a.capture(width, height); err != nil {
				return err
			}
		}

		a.win.SwapBuffers()
		a.frames++
		if a.frames%600 == 0 {
			logx.Trace(a.log, "frame stats", "frames", a.frames, "fps", a.clock.FPS())
		}
		if a.cfg.MaxFrames > 0 && a.frames >= a.cfg.MaxFrames {
			break
		}
		a.win.PollEvents()
	}
	a.log.Info("stopped", "frames", a.frames)
	return nil
}

// capture writes the current framebuffer as a PNG.
func (a *Application) capture(width, height int) error {
	img := a.renderer.Command().ReadPixels(0, 0, width, height)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := hackpadfs.WriteFullFile(a.fsys, a.cfg.CapturePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("capture %q: %w", a.cfg.CapturePath, err)
	}
	a.log.Info("captured frame", "path", a.cfg.CapturePath, "width", width, "height", height)
	return nil
}

var _ EventHandler = (*Application)(nil)

// OnResize keeps the viewport matched to the framebuffer.
func (a *Application) OnResize(width, height int) {
	if width == 0 || height == 0 {
		// Minimized.
		return
	}
	a.renderer.OnWindowResize(width, height)
	if r, ok := a.scene.(Resizer); ok {
		r.OnResize(width, height)
	}
}

// OnKey closes the window on Escape and forwards every key to the scene.
func (a *Application) OnKey(key Key, action Action, mods ModifierKey) {
	if key == KeyEscape && action == Press {
		a.win.SetShouldClose(true)
	}
	if h, ok := a.scene.(KeyHandler); ok {
		h.OnKey(key, action, mods)
	}
}

func (a *Application) OnCursorMove(x, y float64) {
	if h, ok := a.scene.(CursorHandler); ok {
		h.OnCursorMove(x, y)
	}
}

func (a *Application) OnMouseButton(button MouseButton, action Action, mods ModifierKey) {
	if h, ok := a.scene.(MouseButtonHandler); ok {
		h.OnMouseButton(button, action, mods)
	}
}

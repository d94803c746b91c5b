// Package desktop provides the GLFW-backed app.Window.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gmlewis/bunnygl/app"
	"github.com/gmlewis/bunnygl/logx"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is a GLFW window with a current core-profile GL context.
type Window struct {
	win     *glfw.Window
	log     *slog.Logger
	handler app.EventHandler
}

var _ app.Window = (*Window)(nil)

// Open initializes GLFW, creates the window described by cfg and makes its
// context current on the calling thread.
func Open(cfg app.Config, logger *slog.Logger) (*Window, error) {
	log := logger.With(logx.ComponentKey, "window")
	log.Info("creating window", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	if err := glfw.Init(); err != nil {
		log.Error("failed to initialize GLFW", "err", err)
		return nil, fmt.Errorf("glfw.Init: %v", err)
	}

	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		log.Error("failed to create GLFW window", "err", err)
		glfw.Terminate()
		return nil, fmt.Errorf("CreateWindow(%v,%v): %v", cfg.Width, cfg.Height, err)
	}
	win.MakeContextCurrent()

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	glfw.SwapInterval(interval)

	w := &Window{win: win, log: log}
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	win.SetKeyCallback(w.onKey)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetMouseButtonCallback(w.onMouseButton)
	log.Info("window created", "vsync", cfg.VSync)
	return w, nil
}

// Now returns the seconds since GLFW was initialized.
func Now() float64 { return glfw.GetTime() }

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

func (w *Window) PollEvents() { glfw.PollEvents() }

func (w *Window) FramebufferSize() (width, height int) { return w.win.GetFramebufferSize() }

func (w *Window) SetEventHandler(h app.EventHandler) { w.handler = h }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	w.log.Info("window destroyed")
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	if w.handler != nil {
		w.handler.OnResize(width, height)
	}
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if w.handler != nil {
		w.handler.OnKey(app.Key(key), app.Action(action), app.ModifierKey(mods))
	}
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	if w.handler != nil {
		w.handler.OnCursorMove(x, y)
	}
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if w.handler != nil {
		w.handler.OnMouseButton(app.MouseButton(button), app.Action(action), app.ModifierKey(mods))
	}
}

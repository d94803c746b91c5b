package app

import (
	"log/slog"

	"github.com/gmlewis/bunnygl/render"
	"github.com/gmlewis/bunnygl/resource"
)

// Env is what a Scene gets to build its GPU objects with.
type Env struct {
	Device    *render.Device
	Renderer  *render.Renderer
	Resources *resource.Cache
	Log       *slog.Logger

	// Width and Height are the framebuffer size when the scene starts.
	Width, Height int
}

// Scene is one screen of content driven by the Application loop.
type Scene interface {
	Init(env *Env) error
	Update(dt float32)
	Render(r *render.Renderer) error
	Shutdown()
}

// A Scene may also implement any of the following to receive events.

type Resizer interface {
	OnResize(width, height int)
}

type KeyHandler interface {
	OnKey(key Key, action Action, mods ModifierKey)
}

type CursorHandler interface {
	OnCursorMove(x, y float64)
}

type MouseButtonHandler interface {
	OnMouseButton(button MouseButton, action Action, mods ModifierKey)
}

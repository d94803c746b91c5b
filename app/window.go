package app

// Key, Action, ModifierKey and MouseButton carry the GLFW values unchanged.
type (
	Key         int
	Action      int
	ModifierKey int
	MouseButton int
)

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

const (
	KeySpace  Key = 32
	KeyEscape Key = 256
	KeyF12    Key = 301
)

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// EventHandler receives input and framebuffer events from a Window during
// PollEvents.
type EventHandler interface {
	OnResize(width, height int)
	OnKey(key Key, action Action, mods ModifierKey)
	OnCursorMove(x, y float64)
	OnMouseButton(button MouseButton, action Action, mods ModifierKey)
}

// Window is the native window owning the GL context.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	PollEvents()
	FramebufferSize() (width, height int)
	SetEventHandler(EventHandler)
	Close()
}

package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when the Renderer is used before Init.
	ErrNotInitialized = errors.New("renderer not initialized")
	// ErrNotInScene is returned by Submit and EndScene outside BeginScene/EndScene.
	ErrNotInScene = errors.New("not in scene")
	// ErrSceneActive is returned by BeginScene while a scene is already open.
	ErrSceneActive = errors.New("scene already begun")
	// ErrNoIndexBuffer is returned when drawing a VertexArray without an IndexBuffer.
	ErrNoIndexBuffer = errors.New("vertex array has no index buffer")
	// ErrBufferOverflow is returned when data does not fit in a buffer.
	ErrBufferOverflow = errors.New("data exceeds buffer capacity")
	// ErrInvalidShader is returned when binding a released or failed Shader.
	ErrInvalidShader = errors.New("invalid shader")
	// ErrReleased is returned when using a GPU object after its last release.
	ErrReleased = errors.New("object released")
)

// Stage names a step in building a shader program.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
	StageSource   Stage = "source"
)

// ShaderError reports why a shader program could not be built.
// Log holds the driver diagnostic text.
type ShaderError struct {
	Name  string
	Stage Stage
	Log   string
	Err   error
}

func (e *ShaderError) Error() string {
	name := e.Name
	if name == "" {
		name = "shader"
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%v: %v: %v", name, e.Stage, e.Err)
	case e.Stage == StageLink:
		return fmt.Sprintf("%v: failed to link program: %v", name, e.Log)
	}
	return fmt.Sprintf("%v: failed to compile %v shader: %v", name, e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error { return e.Err }

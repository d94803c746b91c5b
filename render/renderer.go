package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names written by Submit.
const (
	ViewProjectionUniform = "u_ViewProjection"
	TransformUniform      = "u_Transform"
)

// State is the scene-submission state of a Renderer.
type State byte

const (
	Uninitialized State = iota
	Ready
	InScene
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case InScene:
		return "InScene"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// sceneData is the camera state valid between BeginScene and EndScene.
type sceneData struct {
	viewProjection mgl32.Mat4
}

// Renderer submits objects under one camera transform per scene:
//
//	r.BeginScene(viewProjection)
//	r.Submit(shader, vertexArray, model) // zero or more
//	r.EndScene()
type Renderer struct {
	cmd   RenderCommand
	state State
	scene sceneData
	count int
}

// NewRenderer returns an uninitialized Renderer drawing through dev.
func NewRenderer(dev *Device) *Renderer {
	return &Renderer{cmd: NewRenderCommand(dev)}
}

// Command returns the low-level command set used by r.
func (r *Renderer) Command() RenderCommand { return r.cmd }

// State returns the current state.
func (r *Renderer) State() State { return r.state }

// Submissions returns the number of draws submitted in the current or last
// scene.
func (r *Renderer) Submissions() int { return r.count }

// Init sets up global GL state. Calling it again is harmless.
func (r *Renderer) Init() {
	r.cmd.Init()
	if r.state == Uninitialized {
		r.state = Ready
	}
}

// OnWindowResize matches the viewport to the new framebuffer size.
func (r *Renderer) OnWindowResize(width, height int) {
	r.cmd.SetViewport(0, 0, width, height)
}

// BeginScene opens a scene using viewProjection as the camera transform.
func (r *Renderer) BeginScene(viewProjection mgl32.Mat4) error {
	switch r.state {
	case Uninitialized:
		return fmt.Errorf("BeginScene: %w", ErrNotInitialized)
	case InScene:
		return fmt.Errorf("BeginScene: %w", ErrSceneActive)
	}
	r.scene.viewProjection = viewProjection
	r.state = InScene
	r.count = 0
	return nil
}

// EndScene closes the scene. Submissions are drawn immediately, so there is
// nothing to flush.
func (r *Renderer) EndScene() error {
	if r.state != InScene {
		return fmt.Errorf("EndScene: %w", ErrNotInScene)
	}
	r.state = Ready
	return nil
}

// Submit draws va with shader, uploading the scene camera to
// ViewProjectionUniform and model to TransformUniform.
func (r *Renderer) Submit(shader *Shader, va *VertexArray, model mgl32.Mat4) error {
	if r.state != InScene {
		return fmt.Errorf("Submit: %w", ErrNotInScene)
	}
	if err := shader.Bind(); err != nil {
		return fmt.Errorf("Submit: %w", err)
	}
	shader.SetUniformMat4f(ViewProjectionUniform, r.scene.viewProjection)
	shader.SetUniformMat4f(TransformUniform, model)

	va.Bind()
	if err := r.cmd.DrawIndexed(va); err != nil {
		return fmt.Errorf("Submit: %w", err)
	}
	r.count++
	return nil
}

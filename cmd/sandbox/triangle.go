package main

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/bunnygl/app"
	"github.com/gmlewis/bunnygl/gpu"
	"github.com/gmlewis/bunnygl/render"
)

// triangleScene spins a vertex-colored triangle about the view axis.
// Space pauses the rotation.
type triangleScene struct {
	log    *slog.Logger
	shader *render.Shader
	va     *render.VertexArray
	camera mgl32.Mat4
	angle  float32 // degrees
	paused bool
}

const triangleSpeed = 90 // degrees per second

var (
	_ app.Resizer    = (*triangleScene)(nil)
	_ app.KeyHandler = (*triangleScene)(nil)
)

func (s *triangleScene) Init(env *app.Env) error {
	s.log = env.Log.With("scene", "triangle")

	var err error
	s.shader, err = env.Resources.LoadShader("basic", "Basic.vert", "Basic.frag")
	if err != nil {
		return err
	}

	vertices := []float32{
		// x, y, z, r, g, b, a
		-0.5, -0.5, 0, 1, 0, 0, 1,
		0.5, -0.5, 0, 0, 1, 0, 1,
		0, 0.5, 0, 0, 0, 1, 1,
	}
	vb := render.NewVertexBuffer(env.Device, gpu.Bytes(vertices))
	defer vb.Release()
	vb.SetLayout(render.NewBufferLayout(
		render.Element(render.Float3, "a_Position"),
		render.Element(render.Float4, "a_Color"),
	))
	ib := render.NewIndexBuffer(env.Device, []uint32{0, 1, 2})
	defer ib.Release()

	s.va = render.NewVertexArray(env.Device)
	if err := s.va.AddVertexBuffer(vb); err != nil {
		return err
	}
	if err := s.va.SetIndexBuffer(ib); err != nil {
		return err
	}

	s.OnResize(env.Width, env.Height)
	s.log.Info("triangle setup complete")
	return nil
}

func (s *triangleScene) Update(dt float32) {
	if s.paused {
		return
	}
	s.angle += triangleSpeed * dt
	for s.angle >= 360 {
		s.angle -= 360
	}
}

func (s *triangleScene) Render(r *render.Renderer) error {
	if err := r.BeginScene(s.camera); err != nil {
		return err
	}
	if err := r.Submit(s.shader, s.va, mgl32.HomogRotate3DZ(mgl32.DegToRad(s.angle))); err != nil {
		_ = r.EndScene()
		return err
	}
	return r.EndScene()
}

func (s *triangleScene) Shutdown() {
	if s.va != nil {
		s.va.Release()
	}
	s.log.Info("triangle scene detached")
}

// OnResize keeps the triangle undistorted by widening the view volume.
func (s *triangleScene) OnResize(width, height int) {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.camera = mgl32.Ortho2D(-aspect, aspect, -1, 1)
}

func (s *triangleScene) OnKey(key app.Key, action app.Action, _ app.ModifierKey) {
	if key == app.KeySpace && action == app.Press {
		s.paused = !s.paused
		s.log.Debug("rotation toggled", "paused", s.paused)
	}
}

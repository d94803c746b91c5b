package main

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/bunnygl/app"
	"github.com/gmlewis/bunnygl/gpu"
	"github.com/gmlewis/bunnygl/render"
)

// planetScene draws a lit, spinning UV sphere under a perspective camera.
// Dragging with the left mouse button orbits the camera.
type planetScene struct {
	log    *slog.Logger
	shader *render.Shader
	va     *render.VertexArray

	aspect     float32
	spin       float32 // degrees
	yaw, pitch float32 // degrees
	dragging   bool
	lastX      float64
	lastY      float64
}

const (
	planetStacks   = 32
	planetSlices   = 64
	planetTilt     = 23.5 // degrees
	planetSpin     = 20   // degrees per second
	cameraDistance = 3
	dragDegrees    = 0.25 // per pixel
)

var (
	_ app.Resizer            = (*planetScene)(nil)
	_ app.CursorHandler      = (*planetScene)(nil)
	_ app.MouseButtonHandler = (*planetScene)(nil)
)

func (s *planetScene) Init(env *app.Env) error {
	s.log = env.Log.With("scene", "planet")

	var err error
	s.shader, err = env.Resources.LoadShader("planet", "Planet.vert", "Planet.frag")
	if err != nil {
		return err
	}

	vertices, indices := uvSphere(planetStacks, planetSlices, 1)
	vb := render.NewVertexBuffer(env.Device, gpu.Bytes(vertices))
	defer vb.Release()
	vb.SetLayout(render.NewBufferLayout(
		render.Element(render.Float3, "a_Position"),
		render.Element(render.Float3, "a_Normal"),
	))
	ib := render.NewIndexBuffer(env.Device, indices)
	defer ib.Release()

	s.va = render.NewVertexArray(env.Device)
	if err := s.va.AddVertexBuffer(vb); err != nil {
		return err
	}
	if err := s.va.SetIndexBuffer(ib); err != nil {
		return err
	}

	s.OnResize(env.Width, env.Height)
	s.log.Info("planet setup complete", "vertices", len(vertices)/6, "indices", len(indices))
	return nil
}

func (s *planetScene) Update(dt float32) {
	s.spin += planetSpin * dt
	for s.spin >= 360 {
		s.spin -= 360
	}
}

func (s *planetScene) viewProjection() mgl32.Mat4 {
	projection := mgl32.Perspective(mgl32.DegToRad(45), s.aspect, 0.1, 100)
	orbit := mgl32.Rotate3DY(mgl32.DegToRad(s.yaw)).Mul3(mgl32.Rotate3DX(mgl32.DegToRad(s.pitch)))
	eye := orbit.Mul3x1(mgl32.Vec3{0, 0, cameraDistance})
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return projection.Mul4(view)
}

func (s *planetScene) model() mgl32.Mat4 {
	tilt := mgl32.HomogRotate3DZ(mgl32.DegToRad(planetTilt))
	return tilt.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.spin)))
}

func (s *planetScene) Render(r *render.Renderer) error {
	if err := s.shader.Bind(); err != nil {
		return err
	}
	s.shader.SetUniformVec3("u_LightDir", mgl32.Vec3{-1, -0.5, -1})
	s.shader.SetUniformVec4("u_Color", mgl32.Vec4{0.2, 0.45, 0.8, 1})
	s.shader.SetUniform1f("u_Ambient", 0.15)

	if err := r.BeginScene(s.viewProjection()); err != nil {
		return err
	}
	if err := r.Submit(s.shader, s.va, s.model()); err != nil {
		_ = r.EndScene()
		return err
	}
	return r.EndScene()
}

func (s *planetScene) Shutdown() {
	if s.va != nil {
		s.va.Release()
	}
	s.log.Info("planet scene detached")
}

func (s *planetScene) OnResize(width, height int) {
	s.aspect = 1
	if height > 0 {
		s.aspect = float32(width) / float32(height)
	}
}

func (s *planetScene) OnMouseButton(button app.MouseButton, action app.Action, _ app.ModifierKey) {
	if button == app.MouseButtonLeft {
		s.dragging = action == app.Press
	}
}

func (s *planetScene) OnCursorMove(x, y float64) {
	if s.dragging {
		s.yaw -= float32(x-s.lastX) * dragDegrees
		s.pitch = mgl32.Clamp(s.pitch-float32(y-s.lastY)*dragDegrees, -89, 89)
	}
	s.lastX, s.lastY = x, y
}

// uvSphere returns interleaved position and normal triples for a sphere of
// the given radius, and the triangle indices joining them. Each ring
// repeats its first vertex at the seam.
func uvSphere(stacks, slices int, radius float32) (vertices []float32, indices []uint32) {
	vertices = make([]float32, 0, (stacks+1)*(slices+1)*6)
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		y, ring := math.Cos(phi), math.Sin(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			n := mgl32.Vec3{float32(ring * math.Cos(theta)), float32(y), float32(ring * math.Sin(theta))}
			p := n.Mul(radius)
			vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2])
		}
	}

	indices = make([]uint32, 0, stacks*slices*6)
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			if i != 0 {
				indices = append(indices, a, b, a+1)
			}
			if i != stacks-1 {
				indices = append(indices, a+1, b, b+1)
			}
		}
	}
	return vertices, indices
}

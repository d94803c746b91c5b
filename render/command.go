package render

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/bunnygl/gpu"
)

// RenderCommand issues low-level state and draw calls on the current context.
// It keeps no state of its own.
type RenderCommand struct {
	dev *Device
}

// NewRenderCommand returns the command set for dev.
func NewRenderCommand(dev *Device) RenderCommand { return RenderCommand{dev: dev} }

// Init enables depth testing and source-alpha blending. Call once at startup.
func (c RenderCommand) Init() {
	gl := c.dev.gl
	gl.Enable(gpu.DepthTest)
	gl.DepthFunc(gpu.Less)

	gl.Enable(gpu.Blend)
	gl.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
}

func (c RenderCommand) SetViewport(x, y, width, height int) {
	c.dev.gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c RenderCommand) SetClearColor(color mgl32.Vec4) {
	c.dev.gl.ClearColor(color[0], color[1], color[2], color[3])
}

// Clear clears the color and depth buffers.
func (c RenderCommand) Clear() {
	c.dev.gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
}

// DrawIndexed draws va as a triangle list of exactly its index buffer's count.
func (c RenderCommand) DrawIndexed(va *VertexArray) error {
	if va.ID() == 0 {
		return fmt.Errorf("DrawIndexed: %w", ErrReleased)
	}
	ib := va.IndexBuffer()
	if ib == nil {
		return fmt.Errorf("DrawIndexed(%v): %w", va.ID(), ErrNoIndexBuffer)
	}
	va.Bind()
	c.dev.gl.DrawElements(gpu.Triangles, int32(ib.Count()), gpu.UnsignedInt, 0)
	return nil
}

// ReadPixels copies a rectangle of the framebuffer into an RGBA image.
// Rows come back bottom-up from GL and are flipped so y=0 is the top.
func (c RenderCommand) ReadPixels(x, y, width, height int) *image.RGBA {
	width, height = max(width, 0), max(height, 0)
	rgba := &image.RGBA{
		Pix:    make([]uint8, width*height*4),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	if width == 0 || height == 0 {
		return rgba
	}
	c.dev.gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gpu.RGBA, gpu.UnsignedByte, rgba.Pix)

	row := make([]uint8, rgba.Stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := rgba.Pix[top*rgba.Stride : (top+1)*rgba.Stride]
		b := rgba.Pix[bottom*rgba.Stride : (bottom+1)*rgba.Stride]
		copy(row, t)
		copy(t, b)
		copy(b, row)
	}
	return rgba
}

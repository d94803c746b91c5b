package render

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/bunnygl/gpu"
)

func TestRenderCommandInit(t *testing.T) {
	env := newTestEnv(t)
	NewRenderCommand(env.dev).Init()

	assert.True(t, env.gl.Enabled[gpu.DepthTest])
	assert.True(t, env.gl.Enabled[gpu.Blend])
	assert.Equal(t, uint32(gpu.SrcAlpha), env.gl.BlendSrc)
	assert.Equal(t, uint32(gpu.OneMinusSrcAlpha), env.gl.BlendDst)
}

func TestRenderCommandViewportAndClear(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewRenderCommand(env.dev)

	cmd.SetViewport(0, 0, 1280, 720)
	assert.Equal(t, [4]int32{0, 0, 1280, 720}, env.gl.ViewportXY)

	cmd.SetClearColor(mgl32.Vec4{0.1, 0.1, 0.1, 1})
	cmd.Clear()
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, env.gl.ClearRGBA)
	assert.Equal(t, []uint32{gpu.ColorBufferBit | gpu.DepthBufferBit}, env.gl.Clears)
}

func TestDrawIndexedUsesIndexCount(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewRenderCommand(env.dev)
	va := env.quad(t)

	require.NoError(t, cmd.DrawIndexed(va))
	require.Len(t, env.gl.Draws, 1)
	d := env.gl.Draws[0]
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, uint32(gpu.Triangles), d.Mode)
	assert.Equal(t, uint32(gpu.UnsignedInt), d.Type)
	assert.Equal(t, va.ID(), d.VertexArray)
	assert.Equal(t, va.IndexBuffer().ID(), d.IndexBuffer)
}

func TestDrawIndexedWithoutIndexBuffer(t *testing.T) {
	env := newTestEnv(t)
	va := NewVertexArray(env.dev)

	err := NewRenderCommand(env.dev).DrawIndexed(va)
	assert.ErrorIs(t, err, ErrNoIndexBuffer)
	assert.Empty(t, env.gl.Draws)
}

func TestDrawIndexedReleasedArray(t *testing.T) {
	env := newTestEnv(t)
	va := env.quad(t)
	va.Release()

	err := NewRenderCommand(env.dev).DrawIndexed(va)
	assert.ErrorIs(t, err, ErrReleased)
	assert.NotErrorIs(t, err, ErrNoIndexBuffer)
	assert.Empty(t, env.gl.Draws)
}

func TestReadPixels(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewRenderCommand(env.dev)
	cmd.SetClearColor(mgl32.Vec4{1, 0, 0, 1})

	img := cmd.ReadPixels(0, 0, 4, 3)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(3, 2))

	empty := cmd.ReadPixels(0, 0, -1, 5)
	assert.True(t, empty.Bounds().Empty())
}

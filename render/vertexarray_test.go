package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/bunnygl/gpu"
	"github.com/gmlewis/bunnygl/gpu/gputest"
)

func TestAddVertexBufferAttributes(t *testing.T) {
	env := newTestEnv(t)
	vb := NewVertexBuffer(env.dev, make([]byte, 3*28))
	vb.SetLayout(NewBufferLayout(
		Element(Float3, "a_Position"),
		Element(Float4, "a_Color"),
	))

	va := NewVertexArray(env.dev)
	require.NoError(t, va.AddVertexBuffer(vb))

	attribs := env.gl.Attribs(va.ID())
	require.Len(t, attribs, 2)
	assert.Equal(t, &gputest.Attrib{Enabled: true, Size: 3, Type: gpu.Float, Stride: 28, Offset: 0, Buffer: vb.ID()}, attribs[0])
	assert.Equal(t, &gputest.Attrib{Enabled: true, Size: 4, Type: gpu.Float, Stride: 28, Offset: 12, Buffer: vb.ID()}, attribs[1])
	assert.Equal(t, 2, va.Slots())
	assert.Equal(t, 2, vb.Refs())
}

func TestAddVertexBufferContinuesSlots(t *testing.T) {
	env := newTestEnv(t)
	positions := NewVertexBuffer(env.dev, make([]byte, 24))
	positions.SetLayout(NewBufferLayout(Element(Float3, "a_Position")))
	extras := NewVertexBuffer(env.dev, make([]byte, 48))
	extras.SetLayout(NewBufferLayout(
		Element(Float2, "a_UV"),
		NormalizedElement(Float4, "a_Tint"),
	))

	va := NewVertexArray(env.dev)
	require.NoError(t, va.AddVertexBuffer(positions))
	require.NoError(t, va.AddVertexBuffer(extras))

	attribs := env.gl.Attribs(va.ID())
	require.Len(t, attribs, 3)
	assert.Equal(t, positions.ID(), attribs[0].Buffer)
	assert.Equal(t, extras.ID(), attribs[1].Buffer)
	assert.Equal(t, int32(2), attribs[1].Size)
	assert.Equal(t, 0, attribs[1].Offset)
	assert.Equal(t, extras.ID(), attribs[2].Buffer)
	assert.Equal(t, 8, attribs[2].Offset)
	assert.True(t, attribs[2].Normalized)
	assert.Equal(t, []*VertexBuffer{positions, extras}, va.VertexBuffers())
}

func TestAddVertexBufferMatrixColumns(t *testing.T) {
	env := newTestEnv(t)
	vb := NewVertexBuffer(env.dev, make([]byte, 4+64+36))
	vb.SetLayout(NewBufferLayout(
		Element(Float, "a_Index"),
		Element(Mat4, "a_Model"),
		Element(Mat3, "a_Normal"),
	))

	va := NewVertexArray(env.dev)
	require.NoError(t, va.AddVertexBuffer(vb))

	attribs := env.gl.Attribs(va.ID())
	require.Len(t, attribs, 1+4+3)
	for c := 0; c < 4; c++ {
		a := attribs[uint32(1+c)]
		assert.Equal(t, int32(4), a.Size)
		assert.Equal(t, 4+c*16, a.Offset)
		assert.Equal(t, int32(104), a.Stride)
	}
	for c := 0; c < 3; c++ {
		a := attribs[uint32(5+c)]
		assert.Equal(t, int32(3), a.Size)
		assert.Equal(t, 68+c*12, a.Offset)
	}
}

func TestAddVertexBufferIntegerTypes(t *testing.T) {
	env := newTestEnv(t)
	vb := NewVertexBuffer(env.dev, make([]byte, 13))
	vb.SetLayout(NewBufferLayout(Element(Int3, "a_Bone"), Element(Bool, "a_Selected")))

	va := NewVertexArray(env.dev)
	require.NoError(t, va.AddVertexBuffer(vb))

	attribs := env.gl.Attribs(va.ID())
	assert.True(t, attribs[0].Integer)
	assert.Equal(t, uint32(gpu.Int), attribs[0].Type)
	assert.True(t, attribs[1].Integer)
	assert.Equal(t, uint32(gpu.UnsignedByte), attribs[1].Type)
	assert.Equal(t, 12, attribs[1].Offset)
}

func TestAddVertexBufferEmptyLayout(t *testing.T) {
	env := newTestEnv(t)
	vb := NewVertexBuffer(env.dev, make([]byte, 4))

	va := NewVertexArray(env.dev)
	assert.Error(t, va.AddVertexBuffer(vb))
	assert.Empty(t, va.VertexBuffers())
	assert.Equal(t, 1, vb.Refs())
}

func TestSetIndexBufferReplaces(t *testing.T) {
	env := newTestEnv(t)
	va := NewVertexArray(env.dev)

	first := NewIndexBuffer(env.dev, []uint32{0, 1, 2})
	require.NoError(t, va.SetIndexBuffer(first))
	assert.Equal(t, first.ID(), env.gl.IndexBinding(va.ID()))
	firstID := first.ID()
	first.Release()
	assert.True(t, env.gl.Live(firstID))

	second := NewIndexBuffer(env.dev, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, va.SetIndexBuffer(second))
	assert.Same(t, second, va.IndexBuffer())
	assert.Equal(t, second.ID(), env.gl.IndexBinding(va.ID()))
	assert.False(t, env.gl.Live(firstID))
}

func TestVertexArrayReleaseDropsBuffers(t *testing.T) {
	env := newTestEnv(t)
	va := env.quad(t)
	vbID := va.VertexBuffers()[0].ID()
	ibID := va.IndexBuffer().ID()
	vaID := va.ID()

	assert.True(t, env.gl.Live(vbID))
	assert.True(t, env.gl.Live(ibID))

	va.Release()
	assert.Zero(t, va.ID())
	assert.False(t, env.gl.Live(vbID))
	assert.False(t, env.gl.Live(ibID))
	assert.Equal(t, []uint32{vaID}, env.gl.DeletedArrays)

	va.Release()
	assert.Len(t, env.gl.DeletedArrays, 1)
}

func TestVertexArraySharedBuffer(t *testing.T) {
	env := newTestEnv(t)
	vb := NewVertexBuffer(env.dev, make([]byte, 12))
	vb.SetLayout(NewBufferLayout(Element(Float3, "a_Position")))

	a, b := NewVertexArray(env.dev), NewVertexArray(env.dev)
	require.NoError(t, a.AddVertexBuffer(vb))
	require.NoError(t, b.AddVertexBuffer(vb))
	vb.Release()

	a.Release()
	assert.NotZero(t, vb.ID())
	b.Release()
	assert.Zero(t, vb.ID())
}

func TestVertexArrayBind(t *testing.T) {
	env := newTestEnv(t)
	va := NewVertexArray(env.dev)
	va.Bind()
	assert.Equal(t, va.ID(), env.gl.BoundArray())
	va.Unbind()
	assert.Zero(t, env.gl.BoundArray())
}

package render

import (
	"fmt"

	"github.com/gmlewis/bunnygl/gpu"
)

// VertexBuffer is one GPU array of vertex records described by a BufferLayout.
//
// The creator holds the first reference. A VertexArray that adds the buffer
// holds another; the GPU buffer is deleted when the last one is released.
type VertexBuffer struct {
	dev      *Device
	id       uint32
	capacity int
	dynamic  bool
	layout   BufferLayout
	refs     refs
}

// NewVertexBuffer uploads data once into a static buffer.
func NewVertexBuffer(dev *Device, data []byte) *VertexBuffer {
	return newVertexBuffer(dev, len(data), data, false)
}

// NewDynamicVertexBuffer reserves size bytes of undefined content for
// streaming through SetData.
func NewDynamicVertexBuffer(dev *Device, size int) *VertexBuffer {
	return newVertexBuffer(dev, size, nil, true)
}

func newVertexBuffer(dev *Device, size int, data []byte, dynamic bool) *VertexBuffer {
	vb := &VertexBuffer{dev: dev, capacity: size, dynamic: dynamic}
	vb.refs.init()

	usage := uint32(gpu.StaticDraw)
	if dynamic {
		usage = gpu.DynamicDraw
	}
	vb.id = dev.gl.GenBuffer()
	dev.gl.BindBuffer(gpu.ArrayBuffer, vb.id)
	dev.gl.BufferData(gpu.ArrayBuffer, size, data, usage)
	return vb
}

// ID returns the GL buffer name, or 0 once released.
func (vb *VertexBuffer) ID() uint32 { return vb.id }

// Cap returns the allocated size in bytes.
func (vb *VertexBuffer) Cap() int { return vb.capacity }

// Dynamic reports whether the buffer was created for streaming.
func (vb *VertexBuffer) Dynamic() bool { return vb.dynamic }

// Layout returns the layout attached to the buffer.
func (vb *VertexBuffer) Layout() BufferLayout { return vb.layout }

// SetLayout attaches the layout used when the buffer is added to a VertexArray.
func (vb *VertexBuffer) SetLayout(layout BufferLayout) { vb.layout = layout }

func (vb *VertexBuffer) Bind() { vb.dev.gl.BindBuffer(gpu.ArrayBuffer, vb.id) }

func (vb *VertexBuffer) Unbind() { vb.dev.gl.BindBuffer(gpu.ArrayBuffer, 0) }

// SetData overwrites the buffer contents starting at offset 0.
func (vb *VertexBuffer) SetData(data []byte) error {
	if vb.id == 0 {
		return ErrReleased
	}
	if len(data) > vb.capacity {
		return fmt.Errorf("SetData(%v bytes) into %v-byte buffer: %w", len(data), vb.capacity, ErrBufferOverflow)
	}
	vb.Bind()
	vb.dev.gl.BufferSubData(gpu.ArrayBuffer, 0, data)
	return nil
}

// Data reads the first size bytes of the buffer back from the GPU.
func (vb *VertexBuffer) Data(size int) ([]byte, error) {
	if vb.id == 0 {
		return nil, ErrReleased
	}
	if size > vb.capacity {
		return nil, fmt.Errorf("Data(%v bytes) from %v-byte buffer: %w", size, vb.capacity, ErrBufferOverflow)
	}
	buf := make([]byte, size)
	vb.Bind()
	vb.dev.gl.GetBufferSubData(gpu.ArrayBuffer, 0, buf)
	return buf, nil
}

// Retain adds an owner and returns vb.
func (vb *VertexBuffer) Retain() *VertexBuffer {
	vb.refs.retain()
	return vb
}

// Release drops one owner, deleting the GPU buffer after the last.
func (vb *VertexBuffer) Release() {
	if vb.refs.drop() && vb.id != 0 {
		vb.dev.gl.DeleteBuffer(vb.id)
		vb.id = 0
	}
}

// Refs returns the number of owners.
func (vb *VertexBuffer) Refs() int { return vb.refs.count() }

// IndexBuffer is an immutable GPU array of uint32 element indices.
type IndexBuffer struct {
	dev   *Device
	id    uint32
	count int
	refs  refs
}

// NewIndexBuffer uploads indices into a static element buffer.
func NewIndexBuffer(dev *Device, indices []uint32) *IndexBuffer {
	ib := &IndexBuffer{dev: dev, count: len(indices)}
	ib.refs.init()

	// Upload through the array target: binding the element target here
	// would change the index buffer of whatever vertex array is bound.
	ib.id = dev.gl.GenBuffer()
	dev.gl.BindBuffer(gpu.ArrayBuffer, ib.id)
	dev.gl.BufferData(gpu.ArrayBuffer, len(indices)*4, gpu.Bytes(indices), gpu.StaticDraw)
	return ib
}

// ID returns the GL buffer name, or 0 once released.
func (ib *IndexBuffer) ID() uint32 { return ib.id }

// Count returns the number of indices.
func (ib *IndexBuffer) Count() int { return ib.count }

func (ib *IndexBuffer) Bind() { ib.dev.gl.BindBuffer(gpu.ElementArrayBuffer, ib.id) }

func (ib *IndexBuffer) Unbind() { ib.dev.gl.BindBuffer(gpu.ElementArrayBuffer, 0) }

// Retain adds an owner and returns ib.
func (ib *IndexBuffer) Retain() *IndexBuffer {
	ib.refs.retain()
	return ib
}

// Release drops one owner, deleting the GPU buffer after the last.
func (ib *IndexBuffer) Release() {
	if ib.refs.drop() && ib.id != 0 {
		ib.dev.gl.DeleteBuffer(ib.id)
		ib.id = 0
	}
}

// Refs returns the number of owners.
func (ib *IndexBuffer) Refs() int { return ib.refs.count() }

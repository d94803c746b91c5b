package render

import "fmt"

// VertexArray binds vertex buffers to attribute slots and holds the index
// buffer used by indexed draws.
//
// Slots are assigned in the order buffers are added: the first buffer's
// elements take slots 0..n-1, the next buffer continues at n.
type VertexArray struct {
	dev           *Device
	id            uint32
	vertexBuffers []*VertexBuffer
	indexBuffer   *IndexBuffer
	nextSlot      uint32
}

// NewVertexArray allocates a GL vertex array object.
func NewVertexArray(dev *Device) *VertexArray {
	return &VertexArray{dev: dev, id: dev.gl.GenVertexArray()}
}

// ID returns the GL vertex array name, or 0 once released.
func (va *VertexArray) ID() uint32 { return va.id }

func (va *VertexArray) Bind() { va.dev.gl.BindVertexArray(va.id) }

func (va *VertexArray) Unbind() { va.dev.gl.BindVertexArray(0) }

// AddVertexBuffer configures one attribute slot per layout element (one per
// column for matrices) and keeps a reference to vb.
func (va *VertexArray) AddVertexBuffer(vb *VertexBuffer) error {
	if va.id == 0 || vb.ID() == 0 {
		return ErrReleased
	}
	layout := vb.Layout()
	if layout.Len() == 0 {
		return fmt.Errorf("AddVertexBuffer(%v): empty buffer layout", vb.ID())
	}

	gl := va.dev.gl
	gl.BindVertexArray(va.id)
	vb.Bind()

	stride := int32(layout.Stride())
	for _, e := range layout.All {
		xtype, integer := e.Type.baseType()
		columns := e.Type.columns()
		size := int32(e.ComponentCount() / columns)
		columnSize := e.Size / columns
		for c := 0; c < columns; c++ {
			offset := e.Offset + c*columnSize
			gl.EnableVertexAttribArray(va.nextSlot)
			if integer {
				gl.VertexAttribIPointer(va.nextSlot, size, xtype, stride, offset)
			} else {
				gl.VertexAttribPointer(va.nextSlot, size, xtype, e.Normalized, stride, offset)
			}
			va.nextSlot++
		}
	}

	va.vertexBuffers = append(va.vertexBuffers, vb.Retain())
	return nil
}

// SetIndexBuffer attaches ib, dropping the reference to any previous one.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) error {
	if va.id == 0 || ib.ID() == 0 {
		return ErrReleased
	}
	va.dev.gl.BindVertexArray(va.id)
	ib.Bind()

	ib.Retain()
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
	}
	va.indexBuffer = ib
	return nil
}

// VertexBuffers returns the buffers added so far, in order.
func (va *VertexArray) VertexBuffers() []*VertexBuffer {
	vbs := make([]*VertexBuffer, len(va.vertexBuffers))
	copy(vbs, va.vertexBuffers)
	return vbs
}

// IndexBuffer returns the attached index buffer, or nil.
func (va *VertexArray) IndexBuffer() *IndexBuffer { return va.indexBuffer }

// Slots returns the number of attribute slots configured so far.
func (va *VertexArray) Slots() int { return int(va.nextSlot) }

// Release deletes the vertex array object and drops its buffer references.
func (va *VertexArray) Release() {
	if va.id == 0 {
		return
	}
	va.dev.gl.DeleteVertexArray(va.id)
	va.id = 0
	for _, vb := range va.vertexBuffers {
		vb.Release()
	}
	va.vertexBuffers = nil
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
		va.indexBuffer = nil
	}
}

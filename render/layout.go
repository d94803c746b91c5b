package render

import (
	"fmt"

	"github.com/gmlewis/bunnygl/gpu"
)

// ShaderDataType is the kind of one field in a vertex record.
type ShaderDataType byte

const (
	None ShaderDataType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Int
	Int2
	Int3
	Int4
	Bool
)

var shaderDataTypeNames = [...]string{"None", "Float", "Float2", "Float3", "Float4", "Mat3", "Mat4", "Int", "Int2", "Int3", "Int4", "Bool"}

func (t ShaderDataType) String() string {
	if int(t) < len(shaderDataTypeNames) {
		return shaderDataTypeNames[t]
	}
	return fmt.Sprintf("ShaderDataType(%d)", byte(t))
}

// Size returns the size of t in bytes.
func (t ShaderDataType) Size() int {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 4 * 2
	case Float3, Int3:
		return 4 * 3
	case Float4, Int4:
		return 4 * 4
	case Mat3:
		return 4 * 3 * 3
	case Mat4:
		return 4 * 4 * 4
	case Bool:
		return 1
	}
	return 0
}

// ComponentCount returns the number of scalar components in t.
func (t ShaderDataType) ComponentCount() int {
	switch t {
	case Float, Int, Bool:
		return 1
	case Float2, Int2:
		return 2
	case Float3, Int3:
		return 3
	case Float4, Int4:
		return 4
	case Mat3:
		return 3 * 3
	case Mat4:
		return 4 * 4
	}
	return 0
}

// baseType returns the GL component type of t and whether it is fed to
// the shader as an integer attribute.
func (t ShaderDataType) baseType() (xtype uint32, integer bool) {
	switch t {
	case Float, Float2, Float3, Float4, Mat3, Mat4:
		return gpu.Float, false
	case Int, Int2, Int3, Int4:
		return gpu.Int, true
	case Bool:
		return gpu.UnsignedByte, true
	}
	return 0, false
}

// columns returns the number of attribute slots t occupies.
// A matrix takes one slot per column.
func (t ShaderDataType) columns() int {
	switch t {
	case Mat3:
		return 3
	case Mat4:
		return 4
	}
	return 1
}

// BufferElement is one named field of a vertex record.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Size       int
	Offset     int
	Normalized bool
}

// Element describes a field for NewBufferLayout.
func Element(t ShaderDataType, name string) BufferElement {
	return BufferElement{Name: name, Type: t, Size: t.Size()}
}

// NormalizedElement describes a field whose integer values are mapped to [0,1] or [-1,1].
func NormalizedElement(t ShaderDataType, name string) BufferElement {
	e := Element(t, name)
	e.Normalized = true
	return e
}

// ComponentCount returns the number of scalar components in the element.
func (e BufferElement) ComponentCount() int { return e.Type.ComponentCount() }

// BufferLayout is the ordered field list of one vertex record.
// Offsets and stride are fixed when the layout is built.
type BufferLayout struct {
	elements []BufferElement
	stride   int
}

// NewBufferLayout lays out elements in declaration order.
func NewBufferLayout(elements ...BufferElement) BufferLayout {
	l := BufferLayout{elements: make([]BufferElement, len(elements))}
	for i, e := range elements {
		e.Size = e.Type.Size()
		e.Offset = l.stride
		l.stride += e.Size
		l.elements[i] = e
	}
	return l
}

// Stride returns the byte distance between consecutive vertex records.
func (l BufferLayout) Stride() int { return l.stride }

// Len returns the number of elements.
func (l BufferLayout) Len() int { return len(l.elements) }

// Elements returns a copy of the elements in declaration order.
func (l BufferLayout) Elements() []BufferElement {
	e := make([]BufferElement, len(l.elements))
	copy(e, l.elements)
	return e
}

// All iterates the elements in declaration order.
func (l BufferLayout) All(yield func(int, BufferElement) bool) {
	for i, e := range l.elements {
		if !yield(i, e) {
			return
		}
	}
}

// Slots returns the number of attribute slots the layout occupies.
func (l BufferLayout) Slots() int {
	var n int
	for _, e := range l.elements {
		n += e.Type.columns()
	}
	return n
}

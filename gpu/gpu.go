// Package gpu describes the subset of OpenGL entry points used by the
// rendering packages.
//
// Implementations wrap a real binding (see package opengl) or record calls
// for tests (see package gputest). All methods operate on the GL context that
// is current on the calling thread.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// GL enums used by the renderer. The values match the OpenGL headers.
const (
	False = 0
	True  = 1

	NoError = 0

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8

	Byte         = 0x1400
	UnsignedByte = 0x1401
	Int          = 0x1404
	UnsignedInt  = 0x1405
	Float        = 0x1406
	Triangles    = 0x0004
	RGBA         = 0x1908

	DepthTest        = 0x0B71
	Blend            = 0x0BE2
	Less             = 0x0201
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	ColorBufferBit = 0x00004000
	DepthBufferBit = 0x00000100

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	ValidateStatus = 0x8B83

	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// API is the set of GL calls made by the renderer.
type API interface {
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	// BufferData allocates size bytes for the bound buffer. data may be nil
	// to reserve storage with undefined content.
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	// GetBufferSubData reads len(data) bytes of the bound buffer into data.
	GetBufferSubData(target uint32, offset int, data []byte)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v0 int32)
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix3fv(location int32, m mgl32.Mat3)
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	Enable(cap uint32)
	BlendFunc(sfactor, dfactor uint32)
	DepthFunc(fn uint32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)

	GetError() uint32
	GetString(name uint32) string
}

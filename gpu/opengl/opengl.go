// Package opengl implements gpu.API on top of the go-gl OpenGL 4.1 core bindings.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/bunnygl/gpu"
)

// GL forwards every gpu.API call to the current OpenGL context.
type GL struct{}

var _ gpu.API = (*GL)(nil)

// New loads the OpenGL function pointers. A context must be current on the
// calling thread.
func New() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	return &GL{}, nil
}

func (*GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (*GL) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (*GL) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (*GL) GetBufferSubData(target uint32, offset int, data []byte) {
	gl.GetBufferSubData(target, offset, len(data), ptr(data))
}

func (*GL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*GL) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (*GL) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (*GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (*GL) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, xtype, stride, gl.PtrOffset(offset))
}

func (*GL) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (*GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*GL) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (*GL) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*GL) CreateProgram() uint32 { return gl.CreateProgram() }

func (*GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*GL) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (*GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (*GL) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (*GL) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (*GL) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (*GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) Uniform1i(location, v0 int32) { gl.Uniform1i(location, v0) }

func (*GL) Uniform1f(location int32, v0 float32) { gl.Uniform1f(location, v0) }

func (*GL) Uniform2f(location int32, v0, v1 float32) { gl.Uniform2f(location, v0, v1) }

func (*GL) Uniform3f(location int32, v0, v1, v2 float32) { gl.Uniform3f(location, v0, v1, v2) }

func (*GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (*GL) UniformMatrix3fv(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (*GL) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*GL) Enable(cap uint32) { gl.Enable(cap) }

func (*GL) BlendFunc(sfactor, dfactor uint32) { gl.BlendFunc(sfactor, dfactor) }

func (*GL) DepthFunc(fn uint32) { gl.DepthFunc(fn) }

func (*GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*GL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*GL) Clear(mask uint32) { gl.Clear(mask) }

func (*GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (*GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, ptr(pixels))
}

func (*GL) GetError() uint32 { return gl.GetError() }

func (*GL) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}

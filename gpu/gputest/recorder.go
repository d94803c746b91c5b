// Package gputest provides an in-memory gpu.API for tests that must run
// without a graphics context.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/bunnygl/gpu"
)

// Attrib is the recorded state of one vertex attribute slot.
type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Integer    bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// DrawCall is one recorded DrawElements call.
type DrawCall struct {
	Mode        uint32
	Count       int32
	Type        uint32
	Offset      int
	VertexArray uint32
	IndexBuffer uint32
	Program     uint32
}

type shader struct {
	xtype    uint32
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	values   map[int32]any
}

var uniformRE = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// Recorder implements gpu.API by keeping every object in memory and
// recording the calls that affect drawing.
type Recorder struct {
	// CompileError, when set, returns the driver log for a failing source.
	// The default fails any source containing "#error".
	CompileError func(source string) string
	// LinkError, when set, returns the driver log for a failing program.
	LinkError func(vertexSource, fragmentSource string) string

	nextID uint32

	buffers map[uint32][]byte
	bound   map[uint32]uint32

	arrays       map[uint32]map[uint32]*Attrib
	arrayIndices map[uint32]uint32
	boundArray   uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	current  uint32

	// UniformQueries counts GetUniformLocation calls per uniform name.
	UniformQueries map[string]int

	Enabled    map[uint32]bool
	BlendSrc   uint32
	BlendDst   uint32
	Depth      uint32
	ViewportXY [4]int32
	ClearRGBA  [4]float32
	Clears     []uint32
	Draws      []DrawCall

	DeletedBuffers  []uint32
	DeletedArrays   []uint32
	DeletedShaders  []uint32
	DeletedPrograms []uint32

	err uint32
}

var _ gpu.API = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		buffers:        map[uint32][]byte{},
		bound:          map[uint32]uint32{},
		arrays:         map[uint32]map[uint32]*Attrib{},
		arrayIndices:   map[uint32]uint32{},
		shaders:        map[uint32]*shader{},
		programs:       map[uint32]*program{},
		UniformQueries: map[string]int{},
		Enabled:        map[uint32]bool{},
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.id()
	r.buffers[id] = nil
	return id
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	delete(r.buffers, buffer)
	r.DeletedBuffers = append(r.DeletedBuffers, buffer)
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.bound[target] = buffer
	if target == gpu.ElementArrayBuffer && r.boundArray != 0 {
		r.arrayIndices[r.boundArray] = buffer
	}
}

// Bound returns the buffer bound to target.
func (r *Recorder) Bound(target uint32) uint32 { return r.bound[target] }

func (r *Recorder) BufferData(target uint32, size int, data []byte, usage uint32) {
	buf := make([]byte, size)
	copy(buf, data)
	r.buffers[r.bound[target]] = buf
}

func (r *Recorder) BufferSubData(target uint32, offset int, data []byte) {
	buf := r.buffers[r.bound[target]]
	if offset+len(data) > len(buf) {
		r.err = 0x0501 // GL_INVALID_VALUE
		return
	}
	copy(buf[offset:], data)
}

func (r *Recorder) GetBufferSubData(target uint32, offset int, data []byte) {
	buf := r.buffers[r.bound[target]]
	if offset+len(data) > len(buf) {
		r.err = 0x0501
		return
	}
	copy(data, buf[offset:])
}

// BufferContents returns the stored bytes of buffer.
func (r *Recorder) BufferContents(buffer uint32) []byte { return r.buffers[buffer] }

// Live reports whether buffer has been generated and not deleted.
func (r *Recorder) Live(buffer uint32) bool {
	_, ok := r.buffers[buffer]
	return ok
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.id()
	r.arrays[id] = map[uint32]*Attrib{}
	return id
}

func (r *Recorder) DeleteVertexArray(array uint32) {
	delete(r.arrays, array)
	r.DeletedArrays = append(r.DeletedArrays, array)
}

func (r *Recorder) BindVertexArray(array uint32) { r.boundArray = array }

// BoundArray returns the bound vertex array.
func (r *Recorder) BoundArray() uint32 { return r.boundArray }

// Attribs returns the attribute slots recorded for array.
func (r *Recorder) Attribs(array uint32) map[uint32]*Attrib { return r.arrays[array] }

// IndexBinding returns the element buffer captured by array.
func (r *Recorder) IndexBinding(array uint32) uint32 { return r.arrayIndices[array] }

func (r *Recorder) attrib(index uint32) *Attrib {
	slots := r.arrays[r.boundArray]
	if slots == nil {
		slots = map[uint32]*Attrib{}
		r.arrays[r.boundArray] = slots
	}
	a, ok := slots[index]
	if !ok {
		a = &Attrib{}
		slots[index] = a
	}
	return a
}

func (r *Recorder) EnableVertexAttribArray(index uint32) { r.attrib(index).Enabled = true }

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	a := r.attrib(index)
	a.Size, a.Type, a.Normalized, a.Integer, a.Stride, a.Offset = size, xtype, normalized, false, stride, offset
	a.Buffer = r.bound[gpu.ArrayBuffer]
}

func (r *Recorder) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	a := r.attrib(index)
	a.Size, a.Type, a.Normalized, a.Integer, a.Stride, a.Offset = size, xtype, false, true, stride, offset
	a.Buffer = r.bound[gpu.ArrayBuffer]
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	id := r.id()
	r.shaders[id] = &shader{xtype: xtype}
	return id
}

func (r *Recorder) ShaderSource(id uint32, source string) { r.shaders[id].source = source }

func (r *Recorder) CompileShader(id uint32) {
	s := r.shaders[id]
	failure := r.CompileError
	if failure == nil {
		failure = defaultCompileError
	}
	s.log = failure(s.source)
	s.compiled = s.log == ""
}

func defaultCompileError(source string) string {
	if strings.Contains(source, "#error") {
		return "ERROR: 0:1: '#error' : user error directive"
	}
	return ""
}

func (r *Recorder) GetShaderiv(id, pname uint32) int32 {
	s, ok := r.shaders[id]
	if ok && pname == gpu.CompileStatus && s.compiled {
		return gpu.True
	}
	return gpu.False
}

func (r *Recorder) GetShaderInfoLog(id uint32) string {
	if s, ok := r.shaders[id]; ok {
		return s.log
	}
	return ""
}

func (r *Recorder) DeleteShader(id uint32) {
	delete(r.shaders, id)
	r.DeletedShaders = append(r.DeletedShaders, id)
}

// LiveShaders returns the number of shader stage objects not yet deleted.
func (r *Recorder) LiveShaders() int { return len(r.shaders) }

func (r *Recorder) CreateProgram() uint32 {
	id := r.id()
	r.programs[id] = &program{uniforms: map[string]int32{}, values: map[int32]any{}}
	return id
}

func (r *Recorder) AttachShader(prog, id uint32) {
	p := r.programs[prog]
	p.shaders = append(p.shaders, id)
}

func (r *Recorder) DetachShader(prog, id uint32) {
	p := r.programs[prog]
	for i, s := range p.shaders {
		if s == id {
			p.shaders = append(p.shaders[:i], p.shaders[i+1:]...)
			return
		}
	}
}

func (r *Recorder) LinkProgram(prog uint32) {
	p := r.programs[prog]
	var vs, fs string
	for _, id := range p.shaders {
		s := r.shaders[id]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("error: shader %v is not compiled", id)
			return
		}
		switch s.xtype {
		case gpu.VertexShader:
			vs = s.source
		case gpu.FragmentShader:
			fs = s.source
		}
	}
	if r.LinkError != nil {
		if p.log = r.LinkError(vs, fs); p.log != "" {
			return
		}
	}

	p.linked = true
	for _, src := range []string{vs, fs} {
		for _, m := range uniformRE.FindAllStringSubmatch(src, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = int32(len(p.uniforms))
			}
		}
	}
}

func (r *Recorder) ValidateProgram(prog uint32) {}

func (r *Recorder) GetProgramiv(prog, pname uint32) int32 {
	p, ok := r.programs[prog]
	if !ok {
		return gpu.False
	}
	switch pname {
	case gpu.LinkStatus, gpu.ValidateStatus:
		if p.linked {
			return gpu.True
		}
	}
	return gpu.False
}

func (r *Recorder) GetProgramInfoLog(prog uint32) string {
	if p, ok := r.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (r *Recorder) DeleteProgram(prog uint32) {
	delete(r.programs, prog)
	r.DeletedPrograms = append(r.DeletedPrograms, prog)
}

func (r *Recorder) UseProgram(prog uint32) { r.current = prog }

// CurrentProgram returns the program made current by UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

// LivePrograms returns the number of programs not yet deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

func (r *Recorder) GetUniformLocation(prog uint32, name string) int32 {
	r.UniformQueries[name]++
	p, ok := r.programs[prog]
	if !ok {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Uniform returns the last value uploaded to the named uniform of prog.
func (r *Recorder) Uniform(prog uint32, name string) any {
	p, ok := r.programs[prog]
	if !ok {
		return nil
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil
	}
	return p.values[loc]
}

func (r *Recorder) set(location int32, v any) {
	p, ok := r.programs[r.current]
	if !ok || location < 0 {
		r.err = 0x0502 // GL_INVALID_OPERATION
		return
	}
	p.values[location] = v
}

func (r *Recorder) Uniform1i(location, v0 int32) { r.set(location, v0) }

func (r *Recorder) Uniform1f(location int32, v0 float32) { r.set(location, v0) }

func (r *Recorder) Uniform2f(location int32, v0, v1 float32) {
	r.set(location, mgl32.Vec2{v0, v1})
}

func (r *Recorder) Uniform3f(location int32, v0, v1, v2 float32) {
	r.set(location, mgl32.Vec3{v0, v1, v2})
}

func (r *Recorder) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	r.set(location, mgl32.Vec4{v0, v1, v2, v3})
}

func (r *Recorder) UniformMatrix3fv(location int32, m mgl32.Mat3) { r.set(location, m) }

func (r *Recorder) UniformMatrix4fv(location int32, m mgl32.Mat4) { r.set(location, m) }

func (r *Recorder) Enable(cap uint32) { r.Enabled[cap] = true }

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) { r.BlendSrc, r.BlendDst = sfactor, dfactor }

func (r *Recorder) DepthFunc(fn uint32) { r.Depth = fn }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.ViewportXY = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.ClearRGBA = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask uint32) { r.Clears = append(r.Clears, mask) }

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.Draws = append(r.Draws, DrawCall{
		Mode:        mode,
		Count:       count,
		Type:        xtype,
		Offset:      offset,
		VertexArray: r.boundArray,
		IndexBuffer: r.arrayIndices[r.boundArray],
		Program:     r.current,
	})
}

// ReadPixels fills pixels with the current clear color.
func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	var px [4]byte
	for i, c := range r.ClearRGBA {
		px[i] = uint8(c*255 + 0.5)
	}
	for i := 0; i+4 <= len(pixels); i += 4 {
		copy(pixels[i:i+4], px[:])
	}
}

func (r *Recorder) GetError() uint32 {
	e := r.err
	r.err = gpu.NoError
	return e
}

func (r *Recorder) GetString(name uint32) string {
	switch name {
	case gpu.Vendor:
		return "gputest"
	case gpu.Renderer:
		return "recorder"
	case gpu.Version:
		return "4.1 gputest"
	}
	return ""
}

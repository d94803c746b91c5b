package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hack-pad/hackpadfs"

	"github.com/gmlewis/bunnygl/gpu"
)

// Shader is one linked GL program.
//
// Uniform locations are looked up once per name and cached for the life of
// the program, including the -1 of a uniform the program does not have.
// Setters for such a uniform do nothing.
type Shader struct {
	dev       *Device
	name      string
	id        uint32
	locations map[string]int32
	refs      refs
}

// NewShader compiles, links and validates a program from GLSL source.
// Driver diagnostics are logged and returned as a *ShaderError.
func NewShader(dev *Device, name, vertexSrc, fragmentSrc string) (*Shader, error) {
	id, err := newProgram(dev, name, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	s := &Shader{dev: dev, name: name, id: id, locations: map[string]int32{}}
	s.refs.init()
	return s, nil
}

// NewShaderFromFiles reads both stages from fsys and builds the program.
// The shader is named after vertexPath.
func NewShaderFromFiles(dev *Device, fsys hackpadfs.FS, vertexPath, fragmentPath string) (*Shader, error) {
	vs, err := hackpadfs.ReadFile(fsys, vertexPath)
	if err != nil {
		dev.log.Error("failed to load shader file", "path", vertexPath, "err", err)
		return nil, &ShaderError{Name: vertexPath, Stage: StageSource, Err: err}
	}
	fs, err := hackpadfs.ReadFile(fsys, fragmentPath)
	if err != nil {
		dev.log.Error("failed to load shader file", "path", fragmentPath, "err", err)
		return nil, &ShaderError{Name: fragmentPath, Stage: StageSource, Err: err}
	}
	return NewShader(dev, vertexPath, string(vs), string(fs))
}

func newProgram(dev *Device, name, vertexSrc, fragmentSrc string) (uint32, error) {
	if vertexSrc == "" || fragmentSrc == "" {
		dev.log.Error("empty shader source provided", "shader", name)
		return 0, &ShaderError{Name: name, Stage: StageSource, Err: errors.New("empty shader source")}
	}

	gl := dev.gl
	vertexShader, err := compileShader(dev, name, StageVertex, vertexSrc)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(dev, name, StageFragment, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	if program == 0 {
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		dev.log.Error("failed to create shader program", "shader", name)
		return 0, &ShaderError{Name: name, Stage: StageLink, Err: errors.New("glCreateProgram returned 0")}
	}

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	if gl.GetProgramiv(program, gpu.LinkStatus) == gpu.False {
		log := gl.GetProgramInfoLog(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		gl.DeleteProgram(program)

		dev.log.Error("failed to link shader program", "shader", name, "log", log)
		return 0, &ShaderError{Name: name, Stage: StageLink, Log: log}
	}

	gl.ValidateProgram(program)
	if gl.GetProgramiv(program, gpu.ValidateStatus) == gpu.False {
		dev.log.Warn("shader program failed validation", "shader", name, "log", gl.GetProgramInfoLog(program))
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(dev *Device, name string, stage Stage, source string) (uint32, error) {
	shaderType := uint32(gpu.VertexShader)
	if stage == StageFragment {
		shaderType = gpu.FragmentShader
	}

	gl := dev.gl
	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		dev.log.Error("failed to create shader object", "shader", name, "stage", stage)
		return 0, &ShaderError{Name: name, Stage: stage, Err: errors.New("glCreateShader returned 0")}
	}

	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if gl.GetShaderiv(shader, gpu.CompileStatus) == gpu.False {
		log := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)

		dev.log.Error("failed to compile shader", "shader", name, "stage", stage, "log", log)
		return 0, &ShaderError{Name: name, Stage: stage, Log: log}
	}

	return shader, nil
}

// Name returns the name given at construction.
func (s *Shader) Name() string { return s.name }

// ID returns the GL program name, or 0 once released or moved.
func (s *Shader) ID() uint32 {
	if s == nil {
		return 0
	}
	return s.id
}

// Valid reports whether s still owns a linked program.
func (s *Shader) Valid() bool { return s != nil && s.id != 0 }

// Bind makes the program current.
func (s *Shader) Bind() error {
	if !s.Valid() {
		return ErrInvalidShader
	}
	s.dev.gl.UseProgram(s.id)
	return nil
}

func (s *Shader) Unbind() {
	if s == nil {
		return
	}
	s.dev.gl.UseProgram(0)
}

// Move returns a Shader that takes over the program and location cache of s.
// s is left released with ID 0.
func (s *Shader) Move() *Shader {
	m := &Shader{dev: s.dev, name: s.name, id: s.id, locations: s.locations}
	m.refs.init()
	s.id = 0
	s.locations = map[string]int32{}
	return m
}

// Retain adds an owner and returns s.
func (s *Shader) Retain() *Shader {
	s.refs.retain()
	return s
}

// Release drops one owner, deleting the program after the last.
func (s *Shader) Release() {
	if s.refs.drop() && s.id != 0 {
		s.dev.gl.DeleteProgram(s.id)
		s.id = 0
	}
}

// Refs returns the number of owners.
func (s *Shader) Refs() int { return s.refs.count() }

// UniformLocation returns the cached location of the named uniform, querying
// the program the first time. A missing uniform is reported once and
// cached as -1. An invalid shader, nil included, reports -1 for every name.
func (s *Shader) UniformLocation(name string) int32 {
	if s == nil || s.id == 0 {
		return -1
	}
	if loc, ok := s.locations[name]; ok {
		return loc
	}

	loc := s.dev.gl.GetUniformLocation(s.id, name)
	s.locations[name] = loc
	if loc == -1 {
		s.dev.log.Warn(fmt.Sprintf("uniform %v not found in shader", name), "shader", s.name, "program", s.id)
	}
	return loc
}

func (s *Shader) SetUniform1i(name string, v int32) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.Uniform1i(loc, v)
	}
}

func (s *Shader) SetUniform1f(name string, v float32) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.Uniform1f(loc, v)
	}
}

func (s *Shader) SetUniform2f(name string, v0, v1 float32) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.Uniform2f(loc, v0, v1)
	}
}

func (s *Shader) SetUniform3f(name string, v0, v1, v2 float32) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.Uniform3f(loc, v0, v1, v2)
	}
}

func (s *Shader) SetUniform4f(name string, v0, v1, v2, v3 float32) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.Uniform4f(loc, v0, v1, v2, v3)
	}
}

func (s *Shader) SetUniformMat3f(name string, m mgl32.Mat3) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.UniformMatrix3fv(loc, m)
	}
}

func (s *Shader) SetUniformMat4f(name string, m mgl32.Mat4) {
	if loc := s.UniformLocation(name); loc != -1 {
		s.dev.gl.UniformMatrix4fv(loc, m)
	}
}

func (s *Shader) SetUniformVec2(name string, v mgl32.Vec2) { s.SetUniform2f(name, v[0], v[1]) }

func (s *Shader) SetUniformVec3(name string, v mgl32.Vec3) { s.SetUniform3f(name, v[0], v[1], v[2]) }

func (s *Shader) SetUniformVec4(name string, v mgl32.Vec4) {
	s.SetUniform4f(name, v[0], v[1], v[2], v[3])
}

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/gmlewis/bunnygl/gpu"
	"github.com/gmlewis/bunnygl/gpu/gputest"
	"github.com/gmlewis/bunnygl/logx"
)

const testVertexSrc = `#version 330 core
layout(location = 0) in vec3 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Transform;
void main() {
	gl_Position = u_ViewProjection * u_Transform * vec4(a_Position, 1.0);
}`

const testFragmentSrc = `#version 330 core
layout(location = 0) out vec4 color;
uniform vec4 u_Color;
uniform float u_Alpha;
void main() {
	color = vec4(u_Color.rgb, u_Alpha);
}`

type testEnv struct {
	dev *Device
	gl  *gputest.Recorder
	log *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	var buf bytes.Buffer
	profile := termenv.Ascii
	logger := logx.New(&buf, &logx.Options{Level: logx.LevelTrace, Profile: &profile})
	rec := gputest.New()
	return &testEnv{dev: NewDevice(rec, logger), gl: rec, log: &buf}
}

// lines returns the log lines containing substr.
func (e *testEnv) lines(substr string) []string {
	var out []string
	for _, line := range strings.Split(e.log.String(), "\n") {
		if strings.Contains(line, substr) {
			out = append(out, line)
		}
	}
	return out
}

func (e *testEnv) shader(t *testing.T) *Shader {
	t.Helper()
	s, err := NewShader(e.dev, "test", testVertexSrc, testFragmentSrc)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	return s
}

// quad returns a vertex array with one Float3 buffer and six indices.
func (e *testEnv) quad(t *testing.T) *VertexArray {
	t.Helper()
	vertices := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
		-0.5, 0.5, 0,
	}
	vb := NewVertexBuffer(e.dev, gpu.Bytes(vertices))
	vb.SetLayout(NewBufferLayout(Element(Float3, "a_Position")))
	ib := NewIndexBuffer(e.dev, []uint32{0, 1, 2, 2, 3, 0})

	va := NewVertexArray(e.dev)
	if err := va.AddVertexBuffer(vb); err != nil {
		t.Fatalf("AddVertexBuffer: %v", err)
	}
	if err := va.SetIndexBuffer(ib); err != nil {
		t.Fatalf("SetIndexBuffer: %v", err)
	}
	vb.Release()
	ib.Release()
	return va
}

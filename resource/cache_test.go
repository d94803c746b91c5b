package resource

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/bunnygl/gpu/gputest"
	"github.com/gmlewis/bunnygl/logx"
	"github.com/gmlewis/bunnygl/render"
)

const (
	basicVert = `#version 330 core
layout(location = 0) in vec3 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Transform;
void main() { gl_Position = u_ViewProjection * u_Transform * vec4(a_Position, 1.0); }`

	basicFrag = `#version 330 core
out vec4 color;
uniform vec4 u_Color;
void main() { color = u_Color; }`
)

type fixture struct {
	cache *Cache
	gl    *gputest.Recorder
	log   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.MkdirAll(fsys, "resources/shaders", 0o755))
	for name, src := range map[string]string{
		"Basic.vert":  basicVert,
		"Basic.frag":  basicFrag,
		"Broken.frag": "#version 330 core\n#error unfinished\n",
	} {
		require.NoError(t, hackpadfs.WriteFullFile(fsys, "resources/shaders/"+name, []byte(src), 0o644))
	}

	var buf bytes.Buffer
	profile := termenv.Ascii
	logger := logx.New(&buf, &logx.Options{Level: logx.LevelTrace, Profile: &profile})
	rec := gputest.New()
	dev := render.NewDevice(rec, logger)
	return &fixture{cache: New(dev, fsys, "resources/shaders"), gl: rec, log: &buf}
}

func (f *fixture) count(substr string) int {
	return strings.Count(f.log.String(), substr)
}

func TestLoadShader(t *testing.T) {
	f := newFixture(t)

	s, err := f.cache.LoadShader("basic", "Basic.vert", "Basic.frag")
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.True(t, f.cache.HasShader("basic"))

	got, err := f.cache.GetShader("basic")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestLoadShaderTwiceReturnsCached(t *testing.T) {
	f := newFixture(t)

	first, err := f.cache.LoadShader("basic", "Basic.vert", "Basic.frag")
	require.NoError(t, err)
	second, err := f.cache.LoadShader("basic", "Other.vert", "Other.frag")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, f.gl.LivePrograms())
	assert.Equal(t, 1, f.count("already loaded"))
}

func TestLoadShaderFailure(t *testing.T) {
	f := newFixture(t)

	s, err := f.cache.LoadShader("broken", "Basic.vert", "Broken.frag")
	assert.Nil(t, s)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "broken", le.Name)
	var se *render.ShaderError
	assert.ErrorAs(t, err, &se)
	assert.False(t, f.cache.HasShader("broken"))

	_, err = f.cache.LoadShader("missing", "Nope.vert", "Basic.frag")
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, f.count("failed to create shader"))
	assert.Empty(t, f.cache.LoadedShaders())
}

func TestGetShaderNotFound(t *testing.T) {
	f := newFixture(t)

	s, err := f.cache.GetShader("nope")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, f.cache.HasShader("nope"))
	assert.Equal(t, 1, f.count("shader not found in cache"))
}

func TestLoadedShadersSorted(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"planet", "basic", "grid"} {
		_, err := f.cache.LoadShader(name, "Basic.vert", "Basic.frag")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"basic", "grid", "planet"}, f.cache.LoadedShaders())
}

func TestClearAllReleasesShaders(t *testing.T) {
	f := newFixture(t)

	kept, err := f.cache.LoadShader("kept", "Basic.vert", "Basic.frag")
	require.NoError(t, err)
	kept.Retain()
	dropped, err := f.cache.LoadShader("dropped", "Basic.vert", "Basic.frag")
	require.NoError(t, err)
	droppedID := dropped.ID()

	f.cache.ClearAll()
	assert.Empty(t, f.cache.LoadedShaders())
	assert.Equal(t, []uint32{droppedID}, f.gl.DeletedPrograms)
	assert.True(t, kept.Valid())
	kept.Release()
	assert.False(t, kept.Valid())
}

func TestCacheConcurrentLookups(t *testing.T) {
	f := newFixture(t)
	_, err := f.cache.LoadShader("basic", "Basic.vert", "Basic.frag")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, f.cache.HasShader("basic"))
				_ = f.cache.LoadedShaders()
			}
		}()
	}
	wg.Wait()
}

// Package resource keeps GPU resources loaded from files, keyed by name, so
// scenes share one program per shader instead of compiling their own.
package resource

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"sync"

	"github.com/hack-pad/hackpadfs"

	"github.com/gmlewis/bunnygl/logx"
	"github.com/gmlewis/bunnygl/render"
)

// ErrNotFound is returned by GetShader for a name that was never loaded.
var ErrNotFound = errors.New("resource not found")

// LoadError reports a shader that could not be loaded under Name.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load shader %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cache is a name-keyed shader cache. It is safe for concurrent use, but
// shaders must still be loaded and used on the thread owning the GL context.
type Cache struct {
	dev  *render.Device
	fsys hackpadfs.FS
	dir  string
	log  *slog.Logger

	mu      sync.Mutex
	shaders map[string]*render.Shader
}

// New returns an empty cache reading shader sources below dir in fsys.
func New(dev *render.Device, fsys hackpadfs.FS, dir string) *Cache {
	return &Cache{
		dev:     dev,
		fsys:    fsys,
		dir:     dir,
		log:     dev.Logger().With(logx.ComponentKey, "resource"),
		shaders: map[string]*render.Shader{},
	}
}

// LoadShader builds the program for name from the two source files, which
// are relative to the cache directory. If name is already loaded the cached
// shader is returned and the files are not read.
//
// The cache owns the returned shader; callers that keep it beyond
// ClearShaders must Retain it.
func (c *Cache) LoadShader(name, vertexPath, fragmentPath string) (*render.Shader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.shaders[name]; ok {
		c.log.Warn("shader already loaded, returning cached version", "shader", name)
		return s, nil
	}

	s, err := render.NewShaderFromFiles(c.dev, c.fsys, c.path(vertexPath), c.path(fragmentPath))
	if err != nil {
		c.log.Error("failed to create shader", "shader", name, "err", err)
		return nil, &LoadError{Name: name, Err: err}
	}
	c.shaders[name] = s
	c.log.Debug("loaded shader", "shader", name, "program", s.ID())
	return s, nil
}

func (c *Cache) path(p string) string {
	if c.dir == "" || c.dir == "." {
		return p
	}
	return path.Join(c.dir, p)
}

// GetShader returns the shader loaded under name.
func (c *Cache) GetShader(name string) (*render.Shader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.shaders[name]; ok {
		return s, nil
	}
	c.log.Warn("shader not found in cache", "shader", name)
	return nil, fmt.Errorf("shader %q: %w", name, ErrNotFound)
}

func (c *Cache) HasShader(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.shaders[name]
	return ok
}

// LoadedShaders returns the names of all loaded shaders, sorted.
func (c *Cache) LoadedShaders() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.shaders))
	for name := range c.shaders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ClearShaders drops the cache's reference to every shader.
func (c *Cache) ClearShaders() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, s := range c.shaders {
		s.Release()
		delete(c.shaders, name)
	}
	c.log.Debug("cleared shaders")
}

// ClearAll releases every cached resource.
func (c *Cache) ClearAll() {
	c.ClearShaders()
}

// Package render is a thin rendering layer over OpenGL: vertex and index
// buffers described by a BufferLayout, vertex arrays, shader programs with
// cached uniform locations, low-level draw commands and a scene-level
// Renderer that submits objects under one camera transform.
//
// Every GPU object is bound to the context current on the thread that
// created its Device. Nothing in this package is safe for concurrent use.
package render

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gmlewis/bunnygl/gpu"
	"github.com/gmlewis/bunnygl/logx"
)

// Device pairs the GL entry points with the logger used for diagnostics.
type Device struct {
	gl  gpu.API
	log *slog.Logger
}

// NewDevice returns a Device that issues its calls through api.
// A nil logger falls back to slog.Default.
func NewDevice(api gpu.API, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	return &Device{gl: api, log: logger.With(logx.ComponentKey, "render")}
}

// API returns the GL entry points of the device.
func (d *Device) API() gpu.API { return d.gl }

// Logger returns the device logger.
func (d *Device) Logger() *slog.Logger { return d.log }

// Info returns the vendor, renderer and version strings of the context.
func (d *Device) Info() (vendor, renderer, version string) {
	return d.gl.GetString(gpu.Vendor), d.gl.GetString(gpu.Renderer), d.gl.GetString(gpu.Version)
}

// CheckError returns the pending GL error, if any, prefixed with where.
func (d *Device) CheckError(where string) error {
	if e := d.gl.GetError(); e != gpu.NoError {
		return fmt.Errorf("%v: GL error 0x%04x", where, e)
	}
	return nil
}

// refs counts the owners of a GPU object. The creator holds the first
// reference; release runs when the last one is dropped.
type refs struct {
	n atomic.Int32
}

func (r *refs) init() { r.n.Store(1) }

func (r *refs) retain() { r.n.Add(1) }

// drop returns true when the caller dropped the last reference.
func (r *refs) drop() bool {
	switch n := r.n.Add(-1); {
	case n == 0:
		return true
	case n < 0:
		r.n.Store(0)
	}
	return false
}

func (r *refs) count() int { return int(r.n.Load()) }

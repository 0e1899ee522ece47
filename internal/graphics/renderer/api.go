package renderer

import (
	"fmt"
	"strings"

	"render-e/internal/graphics"
)

// RenderMode is the polygon rasterization mode applied to the whole scene.
type RenderMode int

const (
	RenderModeFill RenderMode = iota
	RenderModeLine
	RenderModePoint
)

func (m RenderMode) String() string {
	switch m {
	case RenderModeLine:
		return "line"
	case RenderModePoint:
		return "point"
	default:
		return "fill"
	}
}

// ParseRenderMode accepts "fill", "line" or "point" in any case.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "":
		return RenderModeFill, nil
	case "line", "wireframe":
		return RenderModeLine, nil
	case "point", "points":
		return RenderModePoint, nil
	}
	return RenderModeFill, fmt.Errorf("unknown render mode %q", s)
}

// Next returns the mode after m in fill, line, point order, wrapping around.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % (RenderModePoint + 1)
}

func (m RenderMode) polygonMode() graphics.PolygonMode {
	switch m {
	case RenderModeLine:
		return graphics.PolygonLine
	case RenderModePoint:
		return graphics.PolygonPoint
	default:
		return graphics.PolygonFill
	}
}

// ShaderProvider resolves the built-in programs the driver needs.
// graphics.DefaultShaders implements it.
type ShaderProvider interface {
	ZOnly() (*graphics.Shader, error)
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithDoubleSpeedZOnlyRendering enables the depth-only prepass.
func WithDoubleSpeedZOnlyRendering(enabled bool) Option {
	return func(d *Driver) { d.doubleSpeedZOnly = enabled }
}

// WithSortByMaterial groups the draw list by material before the main pass.
func WithSortByMaterial(enabled bool) Option {
	return func(d *Driver) { d.sortByMaterial = enabled }
}

package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxVertices is the largest vertex count addressable by uint16 indices.
const MaxVertices = math.MaxUint16 + 1

// Data is an indexed triangle list. Normals, Colors and UVs are optional;
// when present they must have one entry per position.
type Data struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec4
	UVs       []mgl32.Vec2
	Indices   []uint16
}

var (
	ErrEmpty           = errors.New("mesh has no triangles")
	ErrTooManyVertices = errors.New("mesh exceeds 65536 vertices")
)

// Validate checks attribute lengths and index bounds.
func (d *Data) Validate() error {
	n := len(d.Positions)
	if n == 0 || len(d.Indices) == 0 {
		return ErrEmpty
	}
	if n > MaxVertices {
		return ErrTooManyVertices
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(d.Indices))
	}
	if len(d.Normals) != 0 && len(d.Normals) != n {
		return fmt.Errorf("%d normals for %d positions", len(d.Normals), n)
	}
	if len(d.Colors) != 0 && len(d.Colors) != n {
		return fmt.Errorf("%d colors for %d positions", len(d.Colors), n)
	}
	if len(d.UVs) != 0 && len(d.UVs) != n {
		return fmt.Errorf("%d uvs for %d positions", len(d.UVs), n)
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Interleave packs the vertices as position(3) normal(3) color(4) uv(2).
// Missing normals default to +Y, colours to opaque white, UVs to zero.
func (d *Data) Interleave() []float32 {
	out := make([]float32, 0, len(d.Positions)*12)
	for i, p := range d.Positions {
		normal := mgl32.Vec3{0, 1, 0}
		if len(d.Normals) > 0 {
			normal = d.Normals[i]
		}
		color := mgl32.Vec4{1, 1, 1, 1}
		if len(d.Colors) > 0 {
			color = d.Colors[i]
		}
		var uv mgl32.Vec2
		if len(d.UVs) > 0 {
			uv = d.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], normal[0], normal[1], normal[2],
			color[0], color[1], color[2], color[3], uv[0], uv[1])
	}
	return out
}

// Cube returns an axis-aligned cube of edge size centred on the origin with
// per-face normals and CCW front faces.
func Cube(size float32) *Data {
	h := size / 2
	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	d := &Data{}
	for _, f := range faces {
		base := uint16(len(d.Positions))
		for i, c := range f.corners {
			d.Positions = append(d.Positions, c)
			d.Normals = append(d.Normals, f.normal)
			d.UVs = append(d.UVs, quadUV[i])
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

var quadUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Plane returns a width x depth quad in the XZ plane facing +Y.
func Plane(width, depth float32) *Data {
	w, dd := width/2, depth/2
	return &Data{
		Positions: []mgl32.Vec3{{-w, 0, dd}, {w, 0, dd}, {w, 0, -dd}, {-w, 0, -dd}},
		Normals:   []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
}

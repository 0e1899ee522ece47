package scene

import (
	"render-e/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh submits previously uploaded geometry using the active model-view.
type Mesh interface {
	Render()
}

// Material activates shader, texture and parameter state for the draws that
// follow.
type Material interface {
	Bind()
}

// ModelBinder is implemented by materials that need per-draw state derived
// from the object's world matrix.
type ModelBinder interface {
	BindModel(model mgl32.Mat4)
}

// Texture is a device texture usable as a render target.
type Texture interface {
	ID() uint32
	Width() int
	Height() int
	Target() graphics.TextureTarget
}

type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
)

func (t LightType) String() string {
	if t == DirectionalLight {
		return "directional"
	}
	return "point"
}

// Light is a fixed-function light. A directional light uses the owning
// transform's position as its direction.
type Light struct {
	Type     LightType
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
}

// NewLight returns a white light of the given type.
func NewLight(t LightType) *Light {
	return &Light{
		Type:     t,
		Ambient:  mgl32.Vec4{0.1, 0.1, 0.1, 1},
		Diffuse:  mgl32.Vec4{1, 1, 1, 1},
		Specular: mgl32.Vec4{1, 1, 1, 1},
	}
}

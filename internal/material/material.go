// Package material binds fixed-function material state, an optional program
// and textures before draws.
package material

import (
	"render-e/internal/graphics"
	"render-e/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture units used by the built-in shadow receiver shader.
const (
	MainTextureUnit   = 0
	ShadowTextureUnit = 1
)

// Material is the state bound for the objects that reference it.
type Material struct {
	Name      string
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Shininess float32

	// Shader is optional; nil selects the fixed-function pipeline.
	Shader *graphics.Shader
	// Texture is optional.
	Texture scene.Texture

	dev           graphics.Device
	shadowCamera  *scene.Camera
	shadowTexture scene.Texture
}

// New returns a matte white material.
func New(dev graphics.Device, name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:   mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 0,
		dev:       dev,
	}
}

// SetShadow makes the material sample shadowTexture through the shadow
// matrix of camera. Both must be set together; nil camera disables it.
func (m *Material) SetShadow(camera *scene.Camera, shadowTexture scene.Texture) {
	m.shadowCamera = camera
	m.shadowTexture = shadowTexture
	if camera == nil {
		m.shadowTexture = nil
	}
}

func (m *Material) ShadowCamera() *scene.Camera { return m.shadowCamera }

// Bind activates the program, material colours and textures.
func (m *Material) Bind() {
	if m.Shader != nil {
		m.Shader.Bind()
	} else {
		m.dev.UseProgram(0)
	}
	m.dev.SetMaterial(graphics.MaterialState{
		Ambient:   m.Ambient,
		Diffuse:   m.Diffuse,
		Specular:  m.Specular,
		Shininess: m.Shininess,
	})

	if m.Texture != nil {
		m.dev.BindTexture(m.Texture.Target(), MainTextureUnit, m.Texture.ID())
	} else {
		m.dev.BindTexture(graphics.Texture2D, MainTextureUnit, 0)
	}

	if m.shadowTexture != nil {
		m.dev.BindTexture(graphics.Texture2D, ShadowTextureUnit, m.shadowTexture.ID())
	}
	if m.Shader != nil {
		m.Shader.SetInt("mainTexture", MainTextureUnit)
		if m.shadowTexture != nil {
			m.Shader.SetInt("shadowMap", ShadowTextureUnit)
		}
	}
}

// BindModel uploads the per-object shadow matrix when shadows are enabled.
func (m *Material) BindModel(model mgl32.Mat4) {
	if m.shadowCamera == nil || m.Shader == nil {
		return
	}
	m.Shader.SetMatrix4("shadowMatrix", m.shadowCamera.ShadowMatrix(model))
}

func (m *Material) String() string { return m.Name }

var (
	_ scene.Material    = (*Material)(nil)
	_ scene.ModelBinder = (*Material)(nil)
)

// Package graphicstest provides a recording graphics.Device for tests.
package graphicstest

import (
	"fmt"

	"render-e/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Native clear bits reported by ClearBits. They match the GL values so logs
// read the same as on a real context.
const (
	ColorBufferBit   uint32 = 0x4000
	DepthBufferBit   uint32 = 0x0100
	StencilBufferBit uint32 = 0x0400
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Name, c.Args) }

// Draw captures the state in effect when DrawMesh was called.
type Draw struct {
	Buffer      graphics.MeshBuffer
	ModelView   mgl32.Mat4
	Program     uint32
	ColorWrites bool
	Framebuffer uint32
}

// Recorder implements graphics.Device without a GL context. It keeps the
// subset of state the tests assert on and logs every call in order.
type Recorder struct {
	Calls []Call
	Draws []Draw

	// MaxLightCount is returned by MaxLights.
	MaxLightCount int
	// FramebufferErr is returned by CheckFramebuffer when set.
	FramebufferErr error
	// CompileErr is returned by CompileProgram when set.
	CompileErr error

	ColorWrites bool
	ModelView   mgl32.Mat4
	Program     uint32
	Framebuffer uint32
	Polygon     graphics.PolygonMode
	Depth       graphics.DepthFunc
	Lights      map[int]graphics.LightState
	Material    graphics.MaterialState
	Enabled     map[graphics.Capability]bool
	Uniforms    map[string]any

	LiveFramebuffers  map[uint32]bool
	LiveRenderbuffers map[uint32]bool
	LiveTextures      map[uint32]graphics.TextureSpec
	LiveMeshes        map[uint32]graphics.MeshBuffer

	nextID uint32
}

// NewRecorder returns a Recorder with eight light slots and colour writes on.
func NewRecorder() *Recorder {
	return &Recorder{
		MaxLightCount:     8,
		ColorWrites:       true,
		ModelView:         mgl32.Ident4(),
		Lights:            make(map[int]graphics.LightState),
		Enabled:           make(map[graphics.Capability]bool),
		Uniforms:          make(map[string]any),
		LiveFramebuffers:  make(map[uint32]bool),
		LiveRenderbuffers: make(map[uint32]bool),
		LiveTextures:      make(map[uint32]graphics.TextureSpec),
		LiveMeshes:        make(map[uint32]graphics.MeshBuffer),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) genID() uint32 {
	r.nextID++
	return r.nextID
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls with the given name.
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the call names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset drops the call log and draws but keeps the tracked state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

func (r *Recorder) Enable(c graphics.Capability) {
	r.Enabled[c] = true
	r.record("Enable", c)
}

func (r *Recorder) Disable(c graphics.Capability) {
	r.Enabled[c] = false
	r.record("Disable", c)
}

func (r *Recorder) EnableClientArray(a graphics.ClientArray) { r.record("EnableClientArray", a) }
func (r *Recorder) CullFace(f graphics.Face)                 { r.record("CullFace", f) }

func (r *Recorder) DepthFunc(f graphics.DepthFunc) {
	r.Depth = f
	r.record("DepthFunc", f)
}

func (r *Recorder) ShadeModel(m graphics.ShadeModel) { r.record("ShadeModel", m) }

func (r *Recorder) PolygonMode(m graphics.PolygonMode) {
	r.Polygon = m
	r.record("PolygonMode", m)
}

func (r *Recorder) ColorMask(write bool) {
	r.ColorWrites = write
	r.record("ColorMask", write)
}

func (r *Recorder) Viewport(x, y, width, height int) { r.record("Viewport", x, y, width, height) }
func (r *Recorder) ClearColor(c mgl32.Vec4)          { r.record("ClearColor", c) }

func (r *Recorder) ClearBits(mask graphics.BufferMask) uint32 {
	var bits uint32
	if mask&graphics.ColorBuffer != 0 {
		bits |= ColorBufferBit
	}
	if mask&graphics.DepthBuffer != 0 {
		bits |= DepthBufferBit
	}
	if mask&graphics.StencilBuffer != 0 {
		bits |= StencilBufferBit
	}
	return bits
}

func (r *Recorder) Clear(bits uint32) { r.record("Clear", bits) }

func (r *Recorder) Frustum(left, right, bottom, top, near, far float32) {
	r.record("Frustum", left, right, bottom, top, near, far)
}

func (r *Recorder) Ortho(left, right, bottom, top, near, far float32) {
	r.record("Ortho", left, right, bottom, top, near, far)
}

func (r *Recorder) LoadModelView(m mgl32.Mat4) {
	r.ModelView = m
	r.record("LoadModelView", m)
}

func (r *Recorder) MaxLights() int { return r.MaxLightCount }

func (r *Recorder) SetLight(index int, l graphics.LightState) {
	r.Lights[index] = l
	r.record("SetLight", index, l)
}

func (r *Recorder) DisableLight(index int) {
	delete(r.Lights, index)
	r.record("DisableLight", index)
}

func (r *Recorder) SetMaterial(m graphics.MaterialState) {
	r.Material = m
	r.record("SetMaterial", m)
}

func (r *Recorder) GenFramebuffer() uint32 {
	id := r.genID()
	r.LiveFramebuffers[id] = true
	r.record("GenFramebuffer", id)
	return id
}

func (r *Recorder) DeleteFramebuffer(id uint32) {
	delete(r.LiveFramebuffers, id)
	r.record("DeleteFramebuffer", id)
}

func (r *Recorder) BindFramebuffer(id uint32) {
	r.Framebuffer = id
	r.record("BindFramebuffer", id)
}

func (r *Recorder) FramebufferTexture(a graphics.Attachment, target graphics.TextureTarget, face int, texture uint32) {
	r.record("FramebufferTexture", a, target, face, texture)
}

func (r *Recorder) GenDepthRenderbuffer(width, height int) uint32 {
	id := r.genID()
	r.LiveRenderbuffers[id] = true
	r.record("GenDepthRenderbuffer", width, height)
	return id
}

func (r *Recorder) FramebufferRenderbuffer(a graphics.Attachment, renderbuffer uint32) {
	r.record("FramebufferRenderbuffer", a, renderbuffer)
}

func (r *Recorder) DeleteRenderbuffer(id uint32) {
	delete(r.LiveRenderbuffers, id)
	r.record("DeleteRenderbuffer", id)
}

func (r *Recorder) DisableColorBuffer() { r.record("DisableColorBuffer") }

func (r *Recorder) CheckFramebuffer() error {
	r.record("CheckFramebuffer")
	return r.FramebufferErr
}

func (r *Recorder) GenerateMipmap(target graphics.TextureTarget, texture uint32) {
	r.record("GenerateMipmap", target, texture)
}

func (r *Recorder) CreateTexture(spec graphics.TextureSpec) uint32 {
	id := r.genID()
	r.LiveTextures[id] = spec
	r.record("CreateTexture", spec.Target, spec.Format, spec.Width, spec.Height)
	return id
}

func (r *Recorder) BindTexture(target graphics.TextureTarget, unit int, texture uint32) {
	r.record("BindTexture", target, unit, texture)
}

func (r *Recorder) DeleteTexture(id uint32) {
	delete(r.LiveTextures, id)
	r.record("DeleteTexture", id)
}

func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	r.record("CompileProgram")
	if r.CompileErr != nil {
		return 0, r.CompileErr
	}
	return r.genID(), nil
}

func (r *Recorder) UseProgram(id uint32) {
	r.Program = id
	r.record("UseProgram", id)
}

func (r *Recorder) DeleteProgram(id uint32) { r.record("DeleteProgram", id) }

func (r *Recorder) UniformMat4(program uint32, name string, m mgl32.Mat4) {
	r.Uniforms[name] = m
	r.record("UniformMat4", program, name, m)
}

func (r *Recorder) UniformInt(program uint32, name string, v int32) {
	r.Uniforms[name] = v
	r.record("UniformInt", program, name, v)
}

func (r *Recorder) UploadMesh(vertices []float32, indices []uint16) graphics.MeshBuffer {
	b := graphics.MeshBuffer{VBO: r.genID(), IBO: r.genID(), Count: int32(len(indices))}
	r.LiveMeshes[b.VBO] = b
	r.record("UploadMesh", len(vertices), len(indices))
	return b
}

func (r *Recorder) DrawMesh(b graphics.MeshBuffer) {
	r.Draws = append(r.Draws, Draw{
		Buffer:      b,
		ModelView:   r.ModelView,
		Program:     r.Program,
		ColorWrites: r.ColorWrites,
		Framebuffer: r.Framebuffer,
	})
	r.record("DrawMesh", b.VBO)
}

func (r *Recorder) DeleteMesh(b graphics.MeshBuffer) {
	delete(r.LiveMeshes, b.VBO)
	r.record("DeleteMesh", b.VBO)
}

var _ graphics.Device = (*Recorder)(nil)

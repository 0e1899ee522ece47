package graphics

import "github.com/go-gl/mathgl/mgl32"

// BufferMask selects framebuffer planes. It is used both as a clear mask and
// as the render-to-texture target kind.
type BufferMask uint8

const (
	ColorBuffer BufferMask = 1 << iota
	DepthBuffer
	StencilBuffer
)

// Capability is a server-side feature toggled with Enable/Disable.
type Capability int

const (
	CapLighting Capability = iota
	CapTexture2D
	CapCullFace
	CapDepthTest
)

// ClientArray is a fixed-function vertex array slot.
type ClientArray int

const (
	ArrayVertex ClientArray = iota
	ArrayNormal
	ArrayColor
	ArrayTexCoord
)

type Face int

const (
	FaceBack Face = iota
	FaceFront
)

type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

type ShadeModel int

const (
	ShadeSmooth ShadeModel = iota
	ShadeFlat
)

// PolygonMode is the rasterization mode applied to front and back faces.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// Attachment is a framebuffer attachment point.
type Attachment int

const (
	AttachColor0 Attachment = iota
	AttachDepth
	AttachStencil
)

// TextureTarget is the texture binding target.
type TextureTarget int

const (
	Texture2D TextureTarget = iota
	TextureCubeMap
)

// CubeFaces is the number of faces of a cube map texture.
const CubeFaces = 6

// TextureFormat is the storage format of a texture created by the device.
type TextureFormat int

const (
	FormatRGBA TextureFormat = iota
	FormatDepth
)

// TextureSpec describes a texture to allocate. Pixels may be nil to allocate
// storage only (render targets).
type TextureSpec struct {
	Target  TextureTarget
	Format  TextureFormat
	Width   int
	Height  int
	Pixels  []byte
	Mipmaps bool
}

// LightState is the fixed-function state of one light slot.
type LightState struct {
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
	// W = 1 for positional lights, W = 0 for directions at infinity.
	Position mgl32.Vec4
}

// MaterialState is the fixed-function material applied to both faces.
type MaterialState struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Shininess float32
}

// Interleaved vertex layout used by mesh buffers:
// position(3) normal(3) color(4) texcoord(2).
const (
	VertexFloats   = 12
	VertexStride   = VertexFloats * 4
	NormalOffset   = 3 * 4
	ColorOffset    = 6 * 4
	TexCoordOffset = 10 * 4
)

// MeshBuffer is an uploaded, interleaved, indexed triangle list.
type MeshBuffer struct {
	VBO   uint32
	IBO   uint32
	Count int32
}

// Device is the slice of the GL state machine used by cameras, materials,
// meshes and the render driver. Every method must be called on the thread
// that owns the GL context.
type Device interface {
	Enable(c Capability)
	Disable(c Capability)
	EnableClientArray(a ClientArray)
	CullFace(f Face)
	DepthFunc(f DepthFunc)
	ShadeModel(m ShadeModel)
	PolygonMode(m PolygonMode)
	ColorMask(write bool)
	Viewport(x, y, width, height int)
	ClearColor(c mgl32.Vec4)
	// ClearBits converts an abstract mask to the backend clear bits.
	ClearBits(mask BufferMask) uint32
	Clear(bits uint32)

	// Frustum and Ortho replace the projection matrix.
	Frustum(left, right, bottom, top, near, far float32)
	Ortho(left, right, bottom, top, near, far float32)
	LoadModelView(m mgl32.Mat4)

	MaxLights() int
	SetLight(index int, l LightState)
	DisableLight(index int)
	SetMaterial(m MaterialState)

	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	// BindFramebuffer binds id as the draw framebuffer; 0 restores the window.
	BindFramebuffer(id uint32)
	// FramebufferTexture attaches a texture to the bound framebuffer. face
	// selects the cube face when target is TextureCubeMap.
	FramebufferTexture(a Attachment, target TextureTarget, face int, texture uint32)
	GenDepthRenderbuffer(width, height int) uint32
	FramebufferRenderbuffer(a Attachment, renderbuffer uint32)
	DeleteRenderbuffer(id uint32)
	// DisableColorBuffer turns off draw and read buffers of the bound framebuffer.
	DisableColorBuffer()
	CheckFramebuffer() error
	GenerateMipmap(target TextureTarget, texture uint32)

	CreateTexture(spec TextureSpec) uint32
	BindTexture(target TextureTarget, unit int, texture uint32)
	DeleteTexture(id uint32)

	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(id uint32)
	DeleteProgram(id uint32)
	UniformMat4(program uint32, name string, m mgl32.Mat4)
	UniformInt(program uint32, name string, v int32)

	UploadMesh(vertices []float32, indices []uint16) MeshBuffer
	DrawMesh(b MeshBuffer)
	DeleteMesh(b MeshBuffer)
}

package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// LegacyDevice issues OpenGL 2.1 compatibility-profile calls.
type LegacyDevice struct {
	maxLights int
}

// NewLegacyDevice loads the GL function pointers for the current context.
func NewLegacyDevice() (*LegacyDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	var maxLights int32
	gl.GetIntegerv(gl.MAX_LIGHTS, &maxLights)
	return &LegacyDevice{maxLights: int(maxLights)}, nil
}

func capabilityEnum(c Capability) uint32 {
	switch c {
	case CapLighting:
		return gl.LIGHTING
	case CapTexture2D:
		return gl.TEXTURE_2D
	case CapCullFace:
		return gl.CULL_FACE
	default:
		return gl.DEPTH_TEST
	}
}

func attachmentEnum(a Attachment) uint32 {
	switch a {
	case AttachDepth:
		return gl.DEPTH_ATTACHMENT
	case AttachStencil:
		return gl.STENCIL_ATTACHMENT
	default:
		return gl.COLOR_ATTACHMENT0
	}
}

func targetEnum(t TextureTarget) uint32 {
	if t == TextureCubeMap {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

func (d *LegacyDevice) Enable(c Capability)  { gl.Enable(capabilityEnum(c)) }
func (d *LegacyDevice) Disable(c Capability) { gl.Disable(capabilityEnum(c)) }

func (d *LegacyDevice) EnableClientArray(a ClientArray) {
	switch a {
	case ArrayVertex:
		gl.EnableClientState(gl.VERTEX_ARRAY)
	case ArrayNormal:
		gl.EnableClientState(gl.NORMAL_ARRAY)
	case ArrayColor:
		gl.EnableClientState(gl.COLOR_ARRAY)
	case ArrayTexCoord:
		gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	}
}

func (d *LegacyDevice) CullFace(f Face) {
	if f == FaceFront {
		gl.CullFace(gl.FRONT)
		return
	}
	gl.CullFace(gl.BACK)
}

func (d *LegacyDevice) DepthFunc(f DepthFunc) {
	if f == DepthLessEqual {
		gl.DepthFunc(gl.LEQUAL)
		return
	}
	gl.DepthFunc(gl.LESS)
}

func (d *LegacyDevice) ShadeModel(m ShadeModel) {
	if m == ShadeFlat {
		gl.ShadeModel(gl.FLAT)
		return
	}
	gl.ShadeModel(gl.SMOOTH)
}

func (d *LegacyDevice) PolygonMode(m PolygonMode) {
	switch m {
	case PolygonLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case PolygonPoint:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *LegacyDevice) ColorMask(write bool) { gl.ColorMask(write, write, write, write) }

func (d *LegacyDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *LegacyDevice) ClearColor(c mgl32.Vec4) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *LegacyDevice) ClearBits(mask BufferMask) uint32 {
	var bits uint32
	if mask&ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&StencilBuffer != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

func (d *LegacyDevice) Clear(bits uint32) { gl.Clear(bits) }

func (d *LegacyDevice) Frustum(left, right, bottom, top, near, far float32) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Frustum(float64(left), float64(right), float64(bottom), float64(top), float64(near), float64(far))
	gl.MatrixMode(gl.MODELVIEW)
}

func (d *LegacyDevice) Ortho(left, right, bottom, top, near, far float32) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(float64(left), float64(right), float64(bottom), float64(top), float64(near), float64(far))
	gl.MatrixMode(gl.MODELVIEW)
}

func (d *LegacyDevice) LoadModelView(m mgl32.Mat4) { gl.LoadMatrixf(&m[0]) }

func (d *LegacyDevice) MaxLights() int { return d.maxLights }

func (d *LegacyDevice) SetLight(index int, l LightState) {
	light := uint32(gl.LIGHT0 + index)
	gl.Enable(light)
	gl.Lightfv(light, gl.AMBIENT, &l.Ambient[0])
	gl.Lightfv(light, gl.DIFFUSE, &l.Diffuse[0])
	gl.Lightfv(light, gl.SPECULAR, &l.Specular[0])
	gl.Lightfv(light, gl.POSITION, &l.Position[0])
}

func (d *LegacyDevice) DisableLight(index int) {
	gl.Disable(uint32(gl.LIGHT0 + index))
}

func (d *LegacyDevice) SetMaterial(m MaterialState) {
	gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT, &m.Ambient[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.DIFFUSE, &m.Diffuse[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &m.Specular[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, m.Shininess)
}

func (d *LegacyDevice) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *LegacyDevice) DeleteFramebuffer(id uint32) {
	if id != 0 {
		gl.DeleteFramebuffers(1, &id)
	}
}

func (d *LegacyDevice) BindFramebuffer(id uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, id) }

func (d *LegacyDevice) FramebufferTexture(a Attachment, target TextureTarget, face int, texture uint32) {
	texTarget := uint32(gl.TEXTURE_2D)
	if target == TextureCubeMap {
		texTarget = uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X + face)
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachmentEnum(a), texTarget, texture, 0)
}

func (d *LegacyDevice) GenDepthRenderbuffer(width, height int) uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, id)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return id
}

func (d *LegacyDevice) FramebufferRenderbuffer(a Attachment, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachmentEnum(a), gl.RENDERBUFFER, renderbuffer)
}

func (d *LegacyDevice) DeleteRenderbuffer(id uint32) {
	if id != 0 {
		gl.DeleteRenderbuffers(1, &id)
	}
}

func (d *LegacyDevice) DisableColorBuffer() {
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
}

func (d *LegacyDevice) CheckFramebuffer() error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	return fmt.Errorf("framebuffer incomplete: %s", framebufferStatusString(status))
}

func framebufferStatusString(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	default:
		return fmt.Sprintf("status 0x%X", status)
	}
}

func (d *LegacyDevice) GenerateMipmap(target TextureTarget, texture uint32) {
	t := targetEnum(target)
	gl.BindTexture(t, texture)
	gl.GenerateMipmap(t)
	gl.BindTexture(t, 0)
}

func (d *LegacyDevice) CreateTexture(spec TextureSpec) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	target := targetEnum(spec.Target)
	gl.BindTexture(target, id)

	minFilter := int32(gl.LINEAR)
	if spec.Mipmaps {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	internal, format, xtype := int32(gl.RGBA), uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE)
	if spec.Format == FormatDepth {
		internal, format, xtype = gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.FLOAT
		gl.TexParameteri(target, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_R_TO_TEXTURE)
		gl.TexParameteri(target, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	}

	w, h := int32(spec.Width), int32(spec.Height)
	if spec.Target == TextureCubeMap {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
		for face := 0; face < CubeFaces; face++ {
			gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), 0, internal, w, h, 0, format, xtype, nil)
		}
	} else if spec.Pixels != nil {
		gl.TexImage2D(target, 0, internal, w, h, 0, format, xtype, gl.Ptr(spec.Pixels))
	} else {
		gl.TexImage2D(target, 0, internal, w, h, 0, format, xtype, nil)
	}
	if spec.Mipmaps {
		gl.GenerateMipmap(target)
	}
	gl.BindTexture(target, 0)
	return id
}

func (d *LegacyDevice) BindTexture(target TextureTarget, unit int, texture uint32) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
	gl.BindTexture(targetEnum(target), texture)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *LegacyDevice) DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

func (d *LegacyDevice) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

func (d *LegacyDevice) UseProgram(id uint32) { gl.UseProgram(id) }

func (d *LegacyDevice) DeleteProgram(id uint32) {
	if id != 0 {
		gl.DeleteProgram(id)
	}
}

func (d *LegacyDevice) UniformMat4(program uint32, name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(gl.GetUniformLocation(program, gl.Str(name+"\x00")), 1, false, &m[0])
}

func (d *LegacyDevice) UniformInt(program uint32, name string, v int32) {
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str(name+"\x00")), v)
}

func (d *LegacyDevice) UploadMesh(vertices []float32, indices []uint16) MeshBuffer {
	var b MeshBuffer
	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.IBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
	b.Count = int32(len(indices))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return b
}

// DrawMesh points the client arrays at the interleaved buffer and draws it
// with the current model-view matrix.
func (d *LegacyDevice) DrawMesh(b MeshBuffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IBO)

	gl.VertexPointer(3, gl.FLOAT, VertexStride, gl.PtrOffset(0))
	gl.NormalPointer(gl.FLOAT, VertexStride, gl.PtrOffset(NormalOffset))
	gl.ColorPointer(4, gl.FLOAT, VertexStride, gl.PtrOffset(ColorOffset))
	gl.TexCoordPointer(2, gl.FLOAT, VertexStride, gl.PtrOffset(TexCoordOffset))

	gl.DrawElements(gl.TRIANGLES, b.Count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

func (d *LegacyDevice) DeleteMesh(b MeshBuffer) {
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.IBO != 0 {
		gl.DeleteBuffers(1, &b.IBO)
	}
}

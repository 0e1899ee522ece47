package scene

import (
	"log"
	"math"

	"render-e/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraMode int

const (
	Orthographic CameraMode = iota
	Perspective
)

func (m CameraMode) String() string {
	if m == Perspective {
		return "perspective"
	}
	return "orthographic"
}

// biasMatrix maps the [-1,1] clip cube to [0,1] texture space.
var biasMatrix = mgl32.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 0.5, 0,
	0.5, 0.5, 0.5, 1,
}

// BiasMatrix returns the clip-to-texture mapping used by shadow matrices.
func BiasMatrix() mgl32.Mat4 { return biasMatrix }

// Camera owns projection parameters, clear configuration and an optional
// render-to-texture target. It must be attached to an Object before Setup.
type Camera struct {
	dev   graphics.Device
	owner *Object

	mode        CameraMode
	fieldOfView float32
	aspect      float32

	left, right, bottom, top float32
	near, far                float32

	clearMask  graphics.BufferMask
	clearBits  uint32
	clearColor mgl32.Vec4

	renderToTexture bool
	framebuffer     uint32
	renderbuffer    uint32
	target          Texture
	attachment      graphics.Attachment
	fboWidth        int
	fboHeight       int

	projection mgl32.Mat4
	view       mgl32.Mat4
	shadow     mgl32.Mat4
}

// NewCamera returns an orthographic camera over the unit cube that clears
// colour and depth to opaque black.
func NewCamera(dev graphics.Device) *Camera {
	c := &Camera{
		dev:        dev,
		mode:       Orthographic,
		left:       -1,
		right:      1,
		bottom:     -1,
		top:        1,
		near:       -1,
		far:        1,
		projection: mgl32.Ident4(),
		view:       mgl32.Ident4(),
		shadow:     mgl32.Ident4(),
	}
	c.SetClearMask(graphics.ColorBuffer | graphics.DepthBuffer)
	c.SetClearColor(mgl32.Vec4{0, 0, 0, 1})
	return c
}

func (c *Camera) Owner() *Object       { return c.owner }
func (c *Camera) Mode() CameraMode     { return c.mode }
func (c *Camera) FieldOfView() float32 { return c.fieldOfView }
func (c *Camera) Aspect() float32      { return c.aspect }
func (c *Camera) Near() float32        { return c.near }
func (c *Camera) Far() float32         { return c.far }

// Bounds returns the frustum or orthographic box as left, right, bottom, top.
func (c *Camera) Bounds() (left, right, bottom, top float32) {
	return c.left, c.right, c.bottom, c.top
}

// SetProjection switches to a symmetric perspective frustum. fieldOfView is
// in degrees. near must not be zero.
func (c *Camera) SetProjection(fieldOfView, aspect, near, far float32) {
	if near == 0 {
		panic("scene: perspective near plane must not be zero")
	}
	c.mode = Perspective
	c.fieldOfView = fieldOfView
	c.aspect = aspect
	c.near = near
	c.far = far

	c.top = near * float32(math.Tan(float64(mgl32.DegToRad(fieldOfView))))
	c.bottom = -c.top
	c.left = c.bottom * aspect
	c.right = c.top * aspect
}

// SetOrthographic switches to an orthographic box with the given bounds.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.mode = Orthographic
	c.left = left
	c.right = right
	c.bottom = bottom
	c.top = top
	c.near = near
	c.far = far
}

// SetClearMask selects the buffers cleared by Clear.
func (c *Camera) SetClearMask(mask graphics.BufferMask) {
	c.clearMask = mask
	c.clearBits = c.dev.ClearBits(mask)
}

func (c *Camera) ClearMask() graphics.BufferMask { return c.clearMask }

func (c *Camera) SetClearColor(rgba mgl32.Vec4) { c.clearColor = rgba }

func (c *Camera) ClearColor() mgl32.Vec4 { return c.clearColor }

func (c *Camera) RendersToTexture() bool { return c.renderToTexture }

// Target returns the render-to-texture target, or nil.
func (c *Camera) Target() Texture { return c.target }

// Attachment returns where the target texture is attached.
func (c *Camera) Attachment() graphics.Attachment { return c.attachment }

// Framebuffer returns the framebuffer name while rendering to texture.
func (c *Camera) Framebuffer() uint32 { return c.framebuffer }

// SetRenderToTexture redirects the camera into texture. A DepthBuffer target
// attaches texture as the depth buffer with no colour buffer; any other
// target attaches it as colour attachment 0 (every face of a cube map) and
// allocates a depth renderbuffer. It does nothing when enable matches the
// current state. An incomplete framebuffer is logged, not returned.
func (c *Camera) SetRenderToTexture(enable bool, target graphics.BufferMask, texture Texture) {
	if c.renderToTexture == enable {
		return
	}
	if !enable {
		c.releaseFramebuffer()
		return
	}
	if texture == nil {
		panic("scene: render to texture without a target texture")
	}

	c.renderToTexture = true
	c.target = texture
	c.fboWidth = texture.Width()
	c.fboHeight = texture.Height()
	c.framebuffer = c.dev.GenFramebuffer()

	if target == graphics.DepthBuffer {
		c.attachment = graphics.AttachDepth
		c.dev.BindFramebuffer(c.framebuffer)
		c.dev.FramebufferTexture(graphics.AttachDepth, graphics.Texture2D, 0, texture.ID())
		c.dev.DisableColorBuffer()
	} else {
		c.attachment = graphics.AttachColor0
		c.renderbuffer = c.dev.GenDepthRenderbuffer(c.fboWidth, c.fboHeight)
		c.dev.BindFramebuffer(c.framebuffer)
		if texture.Target() == graphics.TextureCubeMap {
			for face := 0; face < graphics.CubeFaces; face++ {
				c.dev.FramebufferTexture(graphics.AttachColor0, graphics.TextureCubeMap, face, texture.ID())
			}
		} else {
			c.dev.FramebufferTexture(graphics.AttachColor0, graphics.Texture2D, 0, texture.ID())
		}
		c.dev.FramebufferRenderbuffer(graphics.AttachDepth, c.renderbuffer)
	}

	if err := c.dev.CheckFramebuffer(); err != nil {
		log.Printf("camera %v: %v", c.owner, err)
	}
	c.dev.BindFramebuffer(0)
}

func (c *Camera) releaseFramebuffer() {
	c.dev.DeleteFramebuffer(c.framebuffer)
	if c.renderbuffer != 0 {
		c.dev.DeleteRenderbuffer(c.renderbuffer)
	}
	c.renderToTexture = false
	c.framebuffer = 0
	c.renderbuffer = 0
	c.target = nil
	c.fboWidth, c.fboHeight = 0, 0
}

// Release frees framebuffer resources. The camera stays usable.
func (c *Camera) Release() {
	c.SetRenderToTexture(false, graphics.ColorBuffer, nil)
}

// Setup binds the render target, loads projection and view, derives the
// shadow matrix when rendering to texture and clears. Panics when the camera
// has no owner.
func (c *Camera) Setup(viewportWidth, viewportHeight int) {
	if c.owner == nil {
		panic("scene: camera setup without an owning object")
	}

	if c.renderToTexture {
		c.dev.BindFramebuffer(c.framebuffer)
		c.dev.Viewport(0, 0, c.fboWidth, c.fboHeight)
		// depth capture only
		c.dev.ColorMask(false)
	} else {
		c.dev.Viewport(0, 0, viewportWidth, viewportHeight)
		c.dev.ColorMask(true)
	}
	c.dev.ClearColor(c.clearColor)

	cube := c.renderToTexture && c.target.Target() == graphics.TextureCubeMap
	if c.mode == Perspective || cube {
		c.dev.Frustum(c.left, c.right, c.bottom, c.top, c.near, c.far)
		c.projection = mgl32.Frustum(c.left, c.right, c.bottom, c.top, c.near, c.far)
	} else {
		c.dev.Ortho(c.left, c.right, c.bottom, c.top, c.near, c.far)
		c.projection = mgl32.Ortho(c.left, c.right, c.bottom, c.top, c.near, c.far)
	}

	c.view = c.owner.Transform().WorldMatrixInverse()
	c.dev.LoadModelView(c.view)

	if c.renderToTexture {
		c.shadow = biasMatrix.Mul4(c.projection).Mul4(c.view)
	}
	c.Clear()
}

// Clear clears the configured buffers of the bound target.
func (c *Camera) Clear() {
	c.dev.Clear(c.clearBits)
}

// TearDown restores the window framebuffer and regenerates the target's
// mipmaps. It does nothing unless rendering to texture.
func (c *Camera) TearDown() {
	if !c.renderToTexture {
		return
	}
	c.dev.BindFramebuffer(0)
	c.dev.GenerateMipmap(c.target.Target(), c.target.ID())
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }
func (c *Camera) ViewMatrix() mgl32.Mat4       { return c.view }

// ShadowMatrix returns bias * projection * view * model for the last Setup.
func (c *Camera) ShadowMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return c.shadow.Mul4(model)
}

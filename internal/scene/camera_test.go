package scene_test

import (
	"bytes"
	"errors"
	"log"
	"math"
	"testing"

	"render-e/internal/graphics"
	"render-e/internal/graphics/graphicstest"
	"render-e/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedCamera(rec *graphicstest.Recorder) (*scene.Object, *scene.Camera) {
	obj := scene.NewObject("camera")
	cam := scene.NewCamera(rec)
	obj.SetCamera(cam)
	return obj, cam
}

// near compares with an absolute tolerance; mgl32's relative comparison
// never accepts float noise against an exact zero.
func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func assertMatEqual(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.True(t, want.ApproxFuncEqual(got, near), "want\n%v\ngot\n%v", want, got)
}

func TestCameraDefaults(t *testing.T) {
	cam := scene.NewCamera(graphicstest.NewRecorder())

	assert.Equal(t, scene.Orthographic, cam.Mode())
	assert.Equal(t, graphics.ColorBuffer|graphics.DepthBuffer, cam.ClearMask())
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, cam.ClearColor())
	assert.False(t, cam.RendersToTexture())
	l, r, b, top := cam.Bounds()
	assert.Equal(t, [4]float32{-1, 1, -1, 1}, [4]float32{l, r, b, top})
}

func TestSetProjectionDerivesFrustum(t *testing.T) {
	cases := []struct {
		fov, aspect, near, far float32
	}{
		{45, 1.33, 0.1, 100},
		{30, 1.5, 1, 50},
		{60, 0.5, 0.01, 10},
		{10, 2, -0.5, 5},
	}
	for _, tc := range cases {
		rec := graphicstest.NewRecorder()
		_, cam := ownedCamera(rec)
		cam.SetProjection(tc.fov, tc.aspect, tc.near, tc.far)

		top := tc.near * float32(math.Tan(float64(tc.fov)*math.Pi/180))
		l, r, b, tp := cam.Bounds()
		assert.InDelta(t, top, tp, 1e-6)
		assert.InDelta(t, -top, b, 1e-6)
		assert.InDelta(t, -top*tc.aspect, l, 1e-6)
		assert.InDelta(t, top*tc.aspect, r, 1e-6)
		assert.Equal(t, scene.Perspective, cam.Mode())

		cam.Setup(800, 600)
		calls := rec.Find("Frustum")
		require.Len(t, calls, 1)
		assert.Equal(t, []any{l, r, b, tp, tc.near, tc.far}, calls[0].Args)
		assert.Zero(t, rec.Count("Ortho"))
	}
}

func TestSetProjectionZeroNearPanics(t *testing.T) {
	cam := scene.NewCamera(graphicstest.NewRecorder())
	assert.Panics(t, func() { cam.SetProjection(45, 1, 0, 100) })
}

func TestSetOrthographicIssuesExactBounds(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	cam.SetProjection(45, 1, 1, 10)
	cam.SetOrthographic(-3, 4, -5, 6, 0, 7)

	cam.Setup(640, 480)

	calls := rec.Find("Ortho")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{float32(-3), float32(4), float32(-5), float32(6), float32(0), float32(7)}, calls[0].Args)
	assert.Zero(t, rec.Count("Frustum"))
	assertMatEqual(t, mgl32.Ortho(-3, 4, -5, 6, 0, 7), cam.ProjectionMatrix())
}

func TestSetupWindowTarget(t *testing.T) {
	rec := graphicstest.NewRecorder()
	obj, cam := ownedCamera(rec)
	obj.Transform().SetPosition(mgl32.Vec3{1, 2, 3})
	cam.SetClearColor(mgl32.Vec4{0.1, 0.2, 0.3, 1})
	cam.SetClearMask(graphics.ColorBuffer | graphics.StencilBuffer)

	cam.Setup(1024, 768)

	assert.Equal(t, []any{0, 0, 1024, 768}, rec.Find("Viewport")[0].Args)
	assert.True(t, rec.ColorWrites)
	assert.Equal(t, []any{mgl32.Vec4{0.1, 0.2, 0.3, 1}}, rec.Find("ClearColor")[0].Args)
	assertMatEqual(t, mgl32.Translate3D(-1, -2, -3), rec.ModelView)
	assertMatEqual(t, mgl32.Translate3D(-1, -2, -3), cam.ViewMatrix())

	clears := rec.Find("Clear")
	require.Len(t, clears, 1)
	assert.Equal(t, graphicstest.ColorBufferBit|graphicstest.StencilBufferBit, clears[0].Args[0])
	assert.Zero(t, rec.Count("BindFramebuffer"))
}

func TestSetupWithoutOwnerPanics(t *testing.T) {
	cam := scene.NewCamera(graphicstest.NewRecorder())
	assert.Panics(t, func() { cam.Setup(10, 10) })
}

func TestRenderToTextureDepthTarget(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 512, 256, graphics.FormatDepth, graphics.Texture2D)

	cam.SetRenderToTexture(true, graphics.DepthBuffer, tex)

	require.True(t, cam.RendersToTexture())
	assert.Equal(t, graphics.AttachDepth, cam.Attachment())
	assert.Len(t, rec.LiveFramebuffers, 1)
	assert.Empty(t, rec.LiveRenderbuffers)
	attach := rec.Find("FramebufferTexture")
	require.Len(t, attach, 1)
	assert.Equal(t, []any{graphics.AttachDepth, graphics.Texture2D, 0, tex.ID()}, attach[0].Args)
	assert.Equal(t, 1, rec.Count("DisableColorBuffer"))
	assert.Equal(t, 1, rec.Count("CheckFramebuffer"))
	assert.Equal(t, uint32(0), rec.Framebuffer)

	rec.Reset()
	cam.Setup(800, 600)
	assert.Equal(t, cam.Framebuffer(), rec.Framebuffer)
	assert.Equal(t, []any{0, 0, 512, 256}, rec.Find("Viewport")[0].Args)
	assert.False(t, rec.ColorWrites)

	rec.Reset()
	cam.TearDown()
	assert.Equal(t, []string{"BindFramebuffer", "GenerateMipmap"}, rec.Names())
	assert.Equal(t, uint32(0), rec.Framebuffer)
}

func TestRenderToTextureColorTarget(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 128, 128, graphics.FormatRGBA, graphics.Texture2D)

	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)

	assert.Equal(t, graphics.AttachColor0, cam.Attachment())
	assert.Len(t, rec.LiveRenderbuffers, 1)
	assert.Equal(t, []any{128, 128}, rec.Find("GenDepthRenderbuffer")[0].Args)
	attach := rec.Find("FramebufferTexture")
	require.Len(t, attach, 1)
	assert.Equal(t, graphics.AttachColor0, attach[0].Args[0])
	assert.Equal(t, 1, rec.Count("FramebufferRenderbuffer"))
	assert.Zero(t, rec.Count("DisableColorBuffer"))
}

func TestRenderToTextureCubeMapAttachesEveryFace(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 64, 32, graphics.FormatRGBA, graphics.TextureCubeMap)
	require.Equal(t, 64, tex.Height())

	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)

	attach := rec.Find("FramebufferTexture")
	require.Len(t, attach, graphics.CubeFaces)
	for face, c := range attach {
		assert.Equal(t, []any{graphics.AttachColor0, graphics.TextureCubeMap, face, tex.ID()}, c.Args)
	}

	// cube targets always use a frustum, even in orthographic mode
	rec.Reset()
	cam.SetOrthographic(-1, 1, -1, 1, 1, 10)
	cam.Setup(10, 10)
	assert.Equal(t, 1, rec.Count("Frustum"))
	assert.Zero(t, rec.Count("Ortho"))
}

func TestRenderToTextureIsIdempotent(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 32, 32, graphics.FormatRGBA, graphics.Texture2D)

	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)
	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)

	assert.Equal(t, 1, rec.Count("GenFramebuffer"))
	assert.Equal(t, 1, rec.Count("GenDepthRenderbuffer"))

	cam.SetRenderToTexture(false, graphics.ColorBuffer, nil)
	cam.SetRenderToTexture(false, graphics.ColorBuffer, nil)
	assert.Equal(t, 1, rec.Count("DeleteFramebuffer"))
}

func TestRenderToTextureToggleRestoresState(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	cam.SetProjection(45, 1.33, 0.1, 100)
	cam.SetClearColor(mgl32.Vec4{1, 0, 1, 1})
	cam.SetClearMask(graphics.DepthBuffer)
	tex := graphics.NewRenderTexture(rec, 32, 32, graphics.FormatRGBA, graphics.Texture2D)

	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)
	cam.SetRenderToTexture(false, graphics.ColorBuffer, nil)

	assert.Equal(t, scene.Perspective, cam.Mode())
	assert.Equal(t, mgl32.Vec4{1, 0, 1, 1}, cam.ClearColor())
	assert.Equal(t, graphics.DepthBuffer, cam.ClearMask())
	assert.False(t, cam.RendersToTexture())
	assert.Nil(t, cam.Target())
	assert.Zero(t, cam.Framebuffer())
	assert.Empty(t, rec.LiveFramebuffers)
	assert.Empty(t, rec.LiveRenderbuffers)

	// window rendering again after release
	rec.Reset()
	cam.Setup(100, 100)
	assert.True(t, rec.ColorWrites)
	assert.Zero(t, rec.Count("BindFramebuffer"))
}

func TestRenderToTextureWithoutTexturePanics(t *testing.T) {
	_, cam := ownedCamera(graphicstest.NewRecorder())
	assert.Panics(t, func() { cam.SetRenderToTexture(true, graphics.DepthBuffer, nil) })
}

func TestIncompleteFramebufferIsLogged(t *testing.T) {
	var buf bytes.Buffer
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	}()

	rec := graphicstest.NewRecorder()
	rec.FramebufferErr = errors.New("framebuffer incomplete: missing attachment")
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 16, 16, graphics.FormatDepth, graphics.Texture2D)

	cam.SetRenderToTexture(true, graphics.DepthBuffer, tex)

	assert.True(t, cam.RendersToTexture())
	assert.Contains(t, buf.String(), "missing attachment")
	assert.Contains(t, buf.String(), "camera")
}

func TestReleaseFreesFramebuffer(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	tex := graphics.NewRenderTexture(rec, 16, 16, graphics.FormatRGBA, graphics.Texture2D)
	cam.SetRenderToTexture(true, graphics.ColorBuffer, tex)

	cam.Release()

	assert.Empty(t, rec.LiveFramebuffers)
	assert.Empty(t, rec.LiveRenderbuffers)
	// the target texture is borrowed, not owned
	assert.Contains(t, rec.LiveTextures, tex.ID())
}

func TestShadowMatrixComposition(t *testing.T) {
	rec := graphicstest.NewRecorder()
	obj, cam := ownedCamera(rec)
	obj.Transform().LookAt(mgl32.Vec3{3, 6, 2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	cam.SetProjection(40, 1, 0.5, 20)
	tex := graphics.NewRenderTexture(rec, 256, 256, graphics.FormatDepth, graphics.Texture2D)
	cam.SetRenderToTexture(true, graphics.DepthBuffer, tex)

	cam.Setup(800, 600)

	l, r, b, top := cam.Bounds()
	proj := mgl32.Frustum(l, r, b, top, 0.5, 20)
	view := obj.Transform().WorldMatrixInverse()
	model := mgl32.Translate3D(1, 0, -2).Mul4(mgl32.HomogRotate3DY(0.3))

	want := scene.BiasMatrix().Mul4(proj).Mul4(view).Mul4(model)
	assertMatEqual(t, want, cam.ShadowMatrix(model))
	assertMatEqual(t, proj, cam.ProjectionMatrix())
	assertMatEqual(t, view, cam.ViewMatrix())
}

func TestBiasMatrixMapsClipCubeToUnitCube(t *testing.T) {
	bias := scene.BiasMatrix()
	lo := bias.Mul4x1(mgl32.Vec4{-1, -1, -1, 1})
	hi := bias.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, lo)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, hi)
}

func TestShadowMatrixNotRecomputedWithoutRenderTarget(t *testing.T) {
	rec := graphicstest.NewRecorder()
	_, cam := ownedCamera(rec)
	cam.SetProjection(45, 1, 1, 10)
	cam.Setup(10, 10)

	assertMatEqual(t, mgl32.Ident4(), cam.ShadowMatrix(mgl32.Ident4()))
}

func TestSetCameraMovesOwnership(t *testing.T) {
	rec := graphicstest.NewRecorder()
	a, cam := ownedCamera(rec)
	b := scene.NewObject("b")

	b.SetCamera(cam)

	assert.Same(t, b, cam.Owner())
	assert.False(t, a.HasCamera())
	assert.True(t, b.HasCamera())

	b.SetCamera(nil)
	assert.Nil(t, cam.Owner())
	assert.Panics(t, func() { cam.Setup(1, 1) })
}

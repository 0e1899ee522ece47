package scene_test

import (
	"testing"

	"render-e/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMatrixOrder(t *testing.T) {
	tr := scene.NewTransform()
	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	tr.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	tr.SetScale(mgl32.Vec3{2, 2, 2})

	// x axis: scaled to 2, rotated onto -z, then translated
	p := tr.LocalMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, mgl32.Vec4{1, 2, 1, 1}.ApproxFuncEqual(p, near), "got %v", p)
}

func TestWorldMatrixChainsParents(t *testing.T) {
	root := scene.NewObject("root")
	mid := scene.NewObject("mid")
	leaf := scene.NewObject("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	root.Transform().SetPosition(mgl32.Vec3{10, 0, 0})
	mid.Transform().SetScale(mgl32.Vec3{2, 2, 2})
	leaf.Transform().SetPosition(mgl32.Vec3{0, 1, 0})

	assert.Equal(t, mgl32.Vec3{10, 2, 0}, leaf.Transform().WorldPosition())

	inv := leaf.Transform().WorldMatrixInverse()
	assertMatEqual(t, mgl32.Ident4(), inv.Mul4(leaf.Transform().WorldMatrix()))
}

func TestAddChildReparents(t *testing.T) {
	a := scene.NewObject("a")
	b := scene.NewObject("b")
	c := scene.NewObject("c")

	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Transform().Children())
	require.Len(t, b.Transform().Children(), 1)
	assert.Same(t, c, b.Transform().Children()[0].Object())
	assert.Same(t, b.Transform(), c.Transform().Parent())
}

func TestAddChildRejectsCycles(t *testing.T) {
	a := scene.NewObject("a")
	b := scene.NewObject("b")
	a.AddChild(b)

	assert.Panics(t, func() { b.AddChild(a) })
	assert.Panics(t, func() { a.AddChild(a) })
	assert.Panics(t, func() { a.Transform().AddChild(nil) })
}

func TestRemoveChild(t *testing.T) {
	a := scene.NewObject("a")
	b := scene.NewObject("b")
	a.AddChild(b)

	a.Transform().RemoveChild(b.Transform())
	a.Transform().RemoveChild(b.Transform())

	assert.Empty(t, a.Transform().Children())
	assert.Nil(t, b.Transform().Parent())
}

func TestChildrenReturnsCopy(t *testing.T) {
	a := scene.NewObject("a")
	a.AddChild(scene.NewObject("b"))

	kids := a.Transform().Children()
	kids[0] = nil

	assert.NotNil(t, a.Transform().Children()[0])
}

func TestLookAtMatchesViewMatrix(t *testing.T) {
	eye := mgl32.Vec3{4, 3, 5}
	tr := scene.NewTransform()
	tr.LookAt(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	want := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertMatEqual(t, want, tr.WorldMatrixInverse())
	assert.Equal(t, eye, tr.Position())
}

func TestMatrixToleranceAcceptsNoiseAroundZero(t *testing.T) {
	noisy := mgl32.Ident4()
	noisy[13] = -1e-7
	assertMatEqual(t, mgl32.Ident4(), noisy)
	assert.False(t, mgl32.Ident4().ApproxFuncEqual(mgl32.Translate3D(0, 1e-3, 0), near))
}

func TestObjectString(t *testing.T) {
	assert.Equal(t, "<unnamed>", scene.NewObject("").String())
	assert.Equal(t, "cube", scene.NewObject("cube").String())
}

func TestLightTypeString(t *testing.T) {
	assert.Equal(t, "point", scene.PointLight.String())
	assert.Equal(t, "directional", scene.DirectionalLight.String())
}

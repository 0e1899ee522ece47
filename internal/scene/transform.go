package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a node in the transform hierarchy. Its local matrix is
// translation * rotation * scale; the world matrix chains the parents.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	parent   *Transform
	children []*Transform
	owner    *Object
}

func NewTransform() *Transform {
	return &Transform{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) Position() mgl32.Vec3     { return t.position }
func (t *Transform) SetPosition(p mgl32.Vec3) { t.position = p }
func (t *Transform) Rotation() mgl32.Quat     { return t.rotation }
func (t *Transform) SetRotation(q mgl32.Quat) { t.rotation = q.Normalize() }
func (t *Transform) Scale() mgl32.Vec3        { return t.scale }
func (t *Transform) SetScale(s mgl32.Vec3)    { t.scale = s }
func (t *Transform) Parent() *Transform       { return t.parent }
func (t *Transform) Object() *Object          { return t.owner }

// LookAt places the transform at eye, facing center.
func (t *Transform) LookAt(eye, center, up mgl32.Vec3) {
	world := mgl32.LookAtV(eye, center, up).Inv()
	t.position = eye
	t.rotation = mgl32.Mat4ToQuat(world).Normalize()
}

// LocalMatrix returns translation * rotation * scale.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	sc := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return tr.Mul4(t.rotation.Mat4()).Mul4(sc)
}

// WorldMatrix returns the local matrix composed with every ancestor.
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	m := t.LocalMatrix()
	for p := t.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldMatrixInverse is the view matrix of a camera placed at t.
func (t *Transform) WorldMatrixInverse() mgl32.Mat4 {
	return t.WorldMatrix().Inv()
}

// WorldPosition returns the origin of t in world space.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.WorldMatrix().Col(3).Vec3()
}

// Children returns a copy of the ordered child list.
func (t *Transform) Children() []*Transform {
	return slices.Clone(t.children)
}

// AddChild reparents c under t. Attaching an ancestor of t panics.
func (t *Transform) AddChild(c *Transform) {
	if c == nil {
		panic("scene: nil child transform")
	}
	for p := t; p != nil; p = p.parent {
		if p == c {
			panic("scene: transform cycle")
		}
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = t
	t.children = append(t.children, c)
}

// RemoveChild detaches c if it is a direct child of t.
func (t *Transform) RemoveChild(c *Transform) {
	i := slices.Index(t.children, c)
	if i < 0 {
		return
	}
	t.children = slices.Delete(t.children, i, i+1)
	c.parent = nil
}

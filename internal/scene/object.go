package scene

// Object is a scene graph node: a required transform plus optional camera,
// light, mesh and material slots.
type Object struct {
	Name string

	transform *Transform
	camera    *Camera
	light     *Light
	mesh      Mesh
	material  Material
}

func NewObject(name string) *Object {
	o := &Object{Name: name, transform: NewTransform()}
	o.transform.owner = o
	return o
}

func (o *Object) Transform() *Transform { return o.transform }

// AddChild parents child's transform under o's transform.
func (o *Object) AddChild(child *Object) {
	o.transform.AddChild(child.transform)
}

func (o *Object) Camera() *Camera    { return o.camera }
func (o *Object) Light() *Light      { return o.light }
func (o *Object) Mesh() Mesh         { return o.mesh }
func (o *Object) Material() Material { return o.material }

func (o *Object) HasCamera() bool   { return o.camera != nil }
func (o *Object) HasLight() bool    { return o.light != nil }
func (o *Object) HasMesh() bool     { return o.mesh != nil }
func (o *Object) HasMaterial() bool { return o.material != nil }

// SetCamera attaches c and makes o its owner. A camera previously attached
// to o is detached; nil clears the slot.
func (o *Object) SetCamera(c *Camera) {
	if o.camera != nil {
		o.camera.owner = nil
	}
	o.camera = c
	if c != nil {
		if c.owner != nil && c.owner != o {
			c.owner.camera = nil
		}
		c.owner = o
	}
}

func (o *Object) SetLight(l *Light)      { o.light = l }
func (o *Object) SetMesh(m Mesh)         { o.mesh = m }
func (o *Object) SetMaterial(m Material) { o.material = m }

func (o *Object) String() string {
	if o.Name == "" {
		return "<unnamed>"
	}
	return o.Name
}

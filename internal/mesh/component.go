package mesh

import (
	"render-e/internal/graphics"
)

// Component owns a device buffer built from Data and draws it with the
// active model-view matrix.
type Component struct {
	dev      graphics.Device
	buffer   graphics.MeshBuffer
	uploaded bool
}

func NewComponent(dev graphics.Device) *Component {
	return &Component{dev: dev}
}

// NewComponentFromData uploads d into a new component.
func NewComponentFromData(dev graphics.Device, d *Data) (*Component, error) {
	c := NewComponent(dev)
	if err := c.SetMesh(d); err != nil {
		return nil, err
	}
	return c, nil
}

// SetMesh validates d and replaces the uploaded geometry.
func (c *Component) SetMesh(d *Data) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.Release()
	c.buffer = c.dev.UploadMesh(d.Interleave(), d.Indices)
	c.uploaded = true
	return nil
}

// Render draws the uploaded geometry. It does nothing before SetMesh.
func (c *Component) Render() {
	if !c.uploaded {
		return
	}
	c.dev.DrawMesh(c.buffer)
}

// Buffer returns the device buffer, zero before SetMesh.
func (c *Component) Buffer() graphics.MeshBuffer { return c.buffer }

// Release frees the device buffer.
func (c *Component) Release() {
	if !c.uploaded {
		return
	}
	c.dev.DeleteMesh(c.buffer)
	c.buffer = graphics.MeshBuffer{}
	c.uploaded = false
}

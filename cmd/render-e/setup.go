package main

import (
	"log"
	"math"

	"render-e/internal/config"
	"render-e/internal/graphics"
	"render-e/internal/graphics/renderer"
	"render-e/internal/material"
	"render-e/internal/mesh"
	"render-e/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// demoScene is a textured ground plane with a spinning cube and its orbiting
// child, lit by one light that also renders the shadow map.
type demoScene struct {
	title string

	lightObj  *scene.Object
	root      *scene.Object
	spinner   *scene.Object
	cameraObj *scene.Object

	camera       *scene.Camera
	shadowCamera *scene.Camera
	settings     config.CameraSettings

	meshes   []*mesh.Component
	textures []*graphics.Texture
	// loaded image textures, shared between materials
	cache *graphics.TextureCache

	// viewer orbit around the camera target
	target   mgl32.Vec3
	yaw      float32
	distance float32
	height   float32

	angle  float32
	paused bool
}

func vec3(v [3]float32) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }
func vec4(v [4]float32) mgl32.Vec4 { return mgl32.Vec4{v[0], v[1], v[2], v[3]} }

func buildScene(dev graphics.Device, shaders *graphics.DefaultShaders, s config.Settings) (*demoScene, error) {
	d := &demoScene{title: s.Window.Title, settings: s.Camera, cache: graphics.NewTextureCache(dev)}

	// Light, optionally rendering depth from its position.
	d.lightObj = scene.NewObject("light")
	lightType := scene.PointLight
	if s.Light.Type == "directional" {
		lightType = scene.DirectionalLight
	}
	light := scene.NewLight(lightType)
	light.Ambient = vec4(s.Light.Ambient)
	light.Diffuse = vec4(s.Light.Diffuse)
	light.Specular = vec4(s.Light.Specular)
	d.lightObj.SetLight(light)
	lightPos := vec3(s.Light.Position)
	d.lightObj.Transform().LookAt(lightPos, mgl32.Vec3{}, upFor(lightPos))

	var shadowMap *graphics.Texture
	if s.Shadow.Enabled {
		shadowMap = graphics.NewRenderTexture(dev, s.Shadow.Size, s.Shadow.Size, graphics.FormatDepth, graphics.Texture2D)
		d.textures = append(d.textures, shadowMap)

		d.shadowCamera = scene.NewCamera(dev)
		e := s.Shadow.Extent
		d.shadowCamera.SetOrthographic(-e, e, -e, e, s.Shadow.Near, s.Shadow.Far)
		d.shadowCamera.SetClearMask(graphics.DepthBuffer)
		d.lightObj.SetCamera(d.shadowCamera)
		d.shadowCamera.SetRenderToTexture(true, graphics.DepthBuffer, shadowMap)
	}

	ground, err := d.newMaterial(dev, shaders, "ground", s.Render.Texture, shadowMap)
	if err != nil {
		return nil, err
	}
	ground.Diffuse = mgl32.Vec4{0.7, 0.75, 0.7, 1}
	red, err := d.newMaterial(dev, shaders, "red", "", shadowMap)
	if err != nil {
		return nil, err
	}
	red.Diffuse = mgl32.Vec4{0.9, 0.2, 0.2, 1}
	red.Specular = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	red.Shininess = 32

	// Meshes.
	planeMesh, err := d.newMesh(dev, mesh.Plane(20, 20))
	if err != nil {
		return nil, err
	}
	cubeMesh, err := d.newMesh(dev, mesh.Cube(1))
	if err != nil {
		return nil, err
	}

	d.root = scene.NewObject("ground")
	d.root.SetMesh(planeMesh)
	d.root.SetMaterial(ground)

	d.spinner = scene.NewObject("cube")
	d.spinner.SetMesh(cubeMesh)
	d.spinner.SetMaterial(red)
	d.spinner.Transform().SetPosition(mgl32.Vec3{0, 1, 0})
	d.root.AddChild(d.spinner)

	moon := scene.NewObject("moon")
	moon.SetMesh(cubeMesh)
	moon.SetMaterial(ground)
	moon.Transform().SetPosition(mgl32.Vec3{2, 0.5, 0})
	moon.Transform().SetScale(mgl32.Vec3{0.4, 0.4, 0.4})
	d.spinner.AddChild(moon)

	// Viewer.
	d.cameraObj = scene.NewObject("main camera")
	d.camera = scene.NewCamera(dev)
	d.camera.SetProjection(s.Camera.FieldOfView, s.Aspect(), s.Camera.Near, s.Camera.Far)
	d.camera.SetClearColor(vec4(s.Camera.ClearColor))
	d.cameraObj.SetCamera(d.camera)
	d.target = vec3(s.Camera.Target)
	offset := vec3(s.Camera.Position).Sub(d.target)
	d.height = offset.Y()
	d.distance = mgl32.Vec2{offset.X(), offset.Z()}.Len()
	d.yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	d.placeViewer()

	return d, nil
}

// upFor picks an up vector that is not parallel to the view direction.
func upFor(eye mgl32.Vec3) mgl32.Vec3 {
	if dir := eye.Normalize(); math.Abs(float64(dir.Y())) > 0.99 {
		return mgl32.Vec3{0, 0, -1}
	}
	return mgl32.Vec3{0, 1, 0}
}

func (d *demoScene) newMaterial(dev graphics.Device, shaders *graphics.DefaultShaders, name, texturePath string, shadowMap *graphics.Texture) (*material.Material, error) {
	m := material.New(dev, name)
	if texturePath != "" {
		tex, err := d.cache.Get(texturePath)
		if err != nil {
			return nil, err
		}
		m.Texture = tex
	}
	if shadowMap == nil {
		return m, nil
	}

	shader, err := shaders.ShadowReceiver()
	if err != nil {
		log.Printf("shadows disabled for %s: %v", name, err)
		return m, nil
	}
	m.Shader = shader
	if m.Texture == nil {
		white := graphics.White(dev)
		d.textures = append(d.textures, white)
		m.Texture = white
	}
	m.SetShadow(d.shadowCamera, shadowMap)
	return m, nil
}

func (d *demoScene) newMesh(dev graphics.Device, data *mesh.Data) (*mesh.Component, error) {
	c, err := mesh.NewComponentFromData(dev, data)
	if err != nil {
		return nil, err
	}
	d.meshes = append(d.meshes, c)
	return c, nil
}

// Register adds the scene so the shadow camera renders before the viewer.
func (d *demoScene) Register(driver *renderer.Driver) {
	driver.AddSceneObject(d.lightObj)
	driver.AddSceneObject(d.root)
	driver.AddSceneObject(d.cameraObj)
}

// SetAspect re-derives the viewer frustum after a resize.
func (d *demoScene) SetAspect(aspect float32) {
	d.camera.SetProjection(d.settings.FieldOfView, aspect, d.settings.Near, d.settings.Far)
}

// Orbit turns the viewer around its target by yaw radians and moves it
// toward the target by zoom units.
func (d *demoScene) Orbit(yaw, zoom float32) {
	const minDistance = 1
	d.yaw += yaw
	d.distance = max(d.distance+zoom*4, minDistance)
	d.placeViewer()
}

func (d *demoScene) placeViewer() {
	sin, cos := math.Sincos(float64(d.yaw))
	eye := d.target.Add(mgl32.Vec3{float32(sin) * d.distance, d.height, float32(cos) * d.distance})
	d.cameraObj.Transform().LookAt(eye, d.target, upFor(eye.Sub(d.target)))
}

// Update spins the cube; its child orbits with it.
func (d *demoScene) Update(dt float64) {
	if d.paused {
		return
	}
	d.angle += float32(dt) * 0.8
	d.spinner.Transform().SetRotation(mgl32.QuatRotate(d.angle, mgl32.Vec3{0, 1, 0}))
}

func (d *demoScene) Release() {
	if d.shadowCamera != nil {
		d.shadowCamera.Release()
	}
	for _, m := range d.meshes {
		m.Release()
	}
	for _, t := range d.textures {
		t.Release()
	}
	d.cache.Release()
}

package renderer

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"render-e/internal/graphics"
	"render-e/internal/profiling"
	"render-e/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Driver renders registered scene objects once per Display call. It keeps
// three non-owning registries: every object, the camera-bearing subset and
// the light-bearing subset. A Driver is not safe for concurrent use; all
// calls must come from the thread owning the GL context.
type Driver struct {
	dev     graphics.Device
	shaders ShaderProvider

	swapBuffers func()

	sceneObjects []*scene.Object
	cameras      []*scene.Object
	lights       []*scene.Object
	registered   map[*scene.Object]struct{}

	doubleSpeedZOnly bool
	sortByMaterial   bool
	zOnlyShader      *graphics.Shader
	zOnlyFailed      bool

	viewportWidth  int
	viewportHeight int
	lastCamera     *scene.Object
	lightsWarned   bool
	// light slots enabled by the previous frame
	enabledLights int
}

// New returns a driver issuing calls on dev. shaders may be nil when the
// Z-only prepass is never enabled.
func New(dev graphics.Device, shaders ShaderProvider, opts ...Option) *Driver {
	d := &Driver{
		dev:        dev,
		shaders:    shaders,
		registered: make(map[*scene.Object]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init stores the buffer-swap callback and establishes the global
// fixed-function state.
func (d *Driver) Init(swapBuffers func()) {
	d.swapBuffers = swapBuffers

	d.dev.EnableClientArray(graphics.ArrayNormal)
	d.dev.EnableClientArray(graphics.ArrayVertex)
	d.dev.EnableClientArray(graphics.ArrayColor)
	d.dev.EnableClientArray(graphics.ArrayTexCoord)
	d.dev.CullFace(graphics.FaceBack)
	d.dev.Enable(graphics.CapCullFace)
	d.dev.Enable(graphics.CapDepthTest)
	d.dev.Enable(graphics.CapLighting)
	d.dev.Enable(graphics.CapTexture2D)
}

// Reshape records the window size used by cameras that render to the
// window and reapplies the depth function for the prepass setting.
func (d *Driver) Reshape(width, height int) {
	d.viewportWidth = width
	d.viewportHeight = height
	d.applyDepthFunc()
	// force Setup so the new viewport is applied
	d.lastCamera = nil
}

// Viewport returns the size last passed to Reshape.
func (d *Driver) Viewport() (width, height int) {
	return d.viewportWidth, d.viewportHeight
}

func (d *Driver) applyDepthFunc() {
	if d.doubleSpeedZOnly {
		// the main pass redraws the depth written by the prepass
		d.dev.DepthFunc(graphics.DepthLessEqual)
		d.resolveZOnlyShader()
	} else {
		d.dev.DepthFunc(graphics.DepthLess)
	}
}

func (d *Driver) resolveZOnlyShader() *graphics.Shader {
	if d.zOnlyShader != nil || d.zOnlyFailed {
		return d.zOnlyShader
	}
	if d.shaders == nil {
		d.zOnlyFailed = true
		log.Printf("renderer: z-only prepass enabled without a shader provider")
		return nil
	}
	s, err := d.shaders.ZOnly()
	if err != nil {
		d.zOnlyFailed = true
		log.Printf("renderer: z-only prepass disabled: %v", err)
		return nil
	}
	d.zOnlyShader = s
	return s
}

// SetDoubleSpeedZOnlyRendering toggles the depth-only prepass.
func (d *Driver) SetDoubleSpeedZOnlyRendering(enabled bool) {
	d.doubleSpeedZOnly = enabled
	d.applyDepthFunc()
}

func (d *Driver) DoubleSpeedZOnlyRendering() bool { return d.doubleSpeedZOnly }

// SetSortByMaterial groups the main pass by material, keeping the order in
// which materials first appear and the order of objects sharing one.
func (d *Driver) SetSortByMaterial(enabled bool) { d.sortByMaterial = enabled }

func (d *Driver) SortByMaterial() bool { return d.sortByMaterial }

// SetRenderMode applies mode to front and back faces.
func (d *Driver) SetRenderMode(mode RenderMode) {
	d.dev.PolygonMode(mode.polygonMode())
}

// AddSceneObject registers obj and every object reachable through its
// transform's children. Objects already registered are not added again, but
// their children are still visited so late-attached children get picked up.
func (d *Driver) AddSceneObject(obj *scene.Object) {
	if obj == nil {
		panic("renderer: nil scene object")
	}
	if _, ok := d.registered[obj]; !ok {
		d.registered[obj] = struct{}{}
		d.sceneObjects = append(d.sceneObjects, obj)
		if obj.HasCamera() {
			d.cameras = append(d.cameras, obj)
		}
		if obj.HasLight() {
			d.lights = append(d.lights, obj)
		}
	}
	for _, child := range obj.Transform().Children() {
		if co := child.Object(); co != nil {
			d.AddSceneObject(co)
		}
	}
}

// DeleteSceneObject removes obj and its descendants from every registry.
// Unregistered objects are ignored.
func (d *Driver) DeleteSceneObject(obj *scene.Object) {
	if obj == nil {
		return
	}
	if _, ok := d.registered[obj]; ok {
		delete(d.registered, obj)
		d.sceneObjects = removeObject(d.sceneObjects, obj)
		d.cameras = removeObject(d.cameras, obj)
		d.lights = removeObject(d.lights, obj)
		if d.lastCamera == obj {
			d.lastCamera = nil
		}
	}
	for _, child := range obj.Transform().Children() {
		if co := child.Object(); co != nil {
			d.DeleteSceneObject(co)
		}
	}
}

func removeObject(list []*scene.Object, obj *scene.Object) []*scene.Object {
	if i := slices.Index(list, obj); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// SceneObjects returns a copy of the full registry in registration order.
func (d *Driver) SceneObjects() []*scene.Object { return slices.Clone(d.sceneObjects) }

// Cameras returns a copy of the camera registry.
func (d *Driver) Cameras() []*scene.Object { return slices.Clone(d.cameras) }

// Lights returns a copy of the light registry.
func (d *Driver) Lights() []*scene.Object { return slices.Clone(d.lights) }

// Display renders one frame: lights, then every camera in registration
// order, then the buffer swap. Panics if Init was not given a callback.
func (d *Driver) Display() {
	if d.swapBuffers == nil {
		panic("renderer: Display without a swap buffers callback")
	}
	stop := profiling.Track("renderer.Display")

	// light positions are transformed by the model-view current at submit
	d.dev.LoadModelView(d.lightingView())
	d.setupLights()

	for _, obj := range d.cameras {
		cam := obj.Camera()
		if cam == nil {
			// component removed after registration
			continue
		}
		// Framebuffer cameras are unbound by TearDown, so they always
		// need Setup to rebind.
		if obj != d.lastCamera || cam.RendersToTexture() {
			d.lastCamera = obj
			cam.Setup(d.viewportWidth, d.viewportHeight)
			profiling.Count("renderer.cameraSetup")
		} else {
			cam.Clear()
		}
		view := obj.Transform().WorldMatrixInverse()
		d.renderScene(view, !cam.RendersToTexture())
		cam.TearDown()
	}

	stop()
	d.swapBuffers()
}

// lightingView is the view of the first camera drawing to the window, or
// identity when there is none.
func (d *Driver) lightingView() mgl32.Mat4 {
	for _, obj := range d.cameras {
		if cam := obj.Camera(); cam != nil && !cam.RendersToTexture() {
			return obj.Transform().WorldMatrixInverse()
		}
	}
	return mgl32.Ident4()
}

func (d *Driver) setupLights() {
	limit := d.dev.MaxLights()
	index := 0
	for _, obj := range d.lights {
		light := obj.Light()
		if light == nil {
			continue
		}
		if index >= limit {
			if !d.lightsWarned {
				d.lightsWarned = true
				log.Printf("renderer: %d lights registered, device supports %d; extra lights ignored", len(d.lights), limit)
			}
			break
		}
		var w float32
		if light.Type == scene.PointLight {
			w = 1
		}
		d.dev.SetLight(index, graphics.LightState{
			Ambient:  light.Ambient,
			Diffuse:  light.Diffuse,
			Specular: light.Specular,
			Position: obj.Transform().WorldPosition().Vec4(w),
		})
		index++
	}
	// slots left over from deleted lights would stay lit
	for i := index; i < d.enabledLights; i++ {
		d.dev.DisableLight(i)
	}
	d.enabledLights = index
}

// RenderScene draws every registered object against cameraMatrix with
// colour writes enabled.
func (d *Driver) RenderScene(cameraMatrix mgl32.Mat4) {
	d.renderScene(cameraMatrix, true)
}

func (d *Driver) renderScene(cameraMatrix mgl32.Mat4, colorWrites bool) {
	defer profiling.Track("renderer.RenderScene")()

	objects := d.sceneObjects
	if d.sortByMaterial {
		objects = groupByMaterial(objects)
	}

	// A depth-only target gains nothing from a prepass.
	if d.doubleSpeedZOnly && colorWrites {
		if zOnly := d.resolveZOnlyShader(); zOnly != nil {
			d.depthPrepass(objects, cameraMatrix, zOnly)
		}
	}

	var lastMaterial scene.Material
	for _, obj := range objects {
		material := obj.Material()
		if material != lastMaterial {
			if material != nil {
				material.Bind()
				profiling.Count("renderer.materialBind")
			}
			lastMaterial = material
		}
		mesh := obj.Mesh()
		if mesh == nil {
			continue
		}
		model := obj.Transform().WorldMatrix()
		d.dev.LoadModelView(cameraMatrix.Mul4(model))
		if binder, ok := material.(scene.ModelBinder); ok {
			binder.BindModel(model)
		}
		mesh.Render()
		profiling.Count("renderer.draw")
	}
}

// depthPrepass fills the depth buffer with colour writes off and flat
// shading, then restores both.
func (d *Driver) depthPrepass(objects []*scene.Object, cameraMatrix mgl32.Mat4, zOnly *graphics.Shader) {
	d.dev.ShadeModel(graphics.ShadeFlat)
	d.dev.ColorMask(false)
	zOnly.Bind()
	for _, obj := range objects {
		mesh := obj.Mesh()
		if mesh == nil {
			continue
		}
		d.dev.LoadModelView(cameraMatrix.Mul4(obj.Transform().WorldMatrix()))
		mesh.Render()
		profiling.Count("renderer.depthDraw")
	}
	d.dev.ShadeModel(graphics.ShadeSmooth)
	d.dev.ColorMask(true)
	d.dev.UseProgram(0)
}

// groupByMaterial returns objects stably ordered by the position at which
// their material first appears.
func groupByMaterial(objects []*scene.Object) []*scene.Object {
	first := make(map[scene.Material]int)
	for i, obj := range objects {
		if _, ok := first[obj.Material()]; !ok {
			first[obj.Material()] = i
		}
	}
	out := slices.Clone(objects)
	slices.SortStableFunc(out, func(a, b *scene.Object) int {
		return first[a.Material()] - first[b.Material()]
	})
	return out
}

// DebugString lists the registries with each object's transform.
func (d *Driver) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scene objects: %d\n", len(d.sceneObjects))
	for _, obj := range d.sceneObjects {
		t := obj.Transform()
		p, q, s := t.Position(), t.Rotation(), t.Scale()
		fmt.Fprintf(&b, "%v\n", obj)
		fmt.Fprintf(&b, "Position %g %g %g\n", p.X(), p.Y(), p.Z())
		fmt.Fprintf(&b, "Rotation %g %g %g %g\n", q.V.X(), q.V.Y(), q.V.Z(), q.W)
		fmt.Fprintf(&b, "Scale %g %g %g\n", s.X(), s.Y(), s.Z())
	}
	fmt.Fprintf(&b, "Camera objects: %d\n", len(d.cameras))
	for _, obj := range d.cameras {
		fmt.Fprintf(&b, "%v\n", obj)
	}
	fmt.Fprintf(&b, "Light objects: %d\n", len(d.lights))
	for _, obj := range d.lights {
		fmt.Fprintf(&b, "%v\n", obj)
	}
	return b.String()
}

package main

import (
	"log"

	"render-e/internal/config"
	"render-e/internal/graphics/renderer"
	"render-e/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, driver *renderer.Driver, demo *demoScene) *input.Manager {
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			// minimized
			return
		}
		driver.Reshape(width, height)
		demo.SetAspect(float32(width) / float32(height))
	})

	im := input.NewManager()
	im.Attach(window)
	return im
}

// toggledWireframe flips between line and fill. Point mode goes to line.
func toggledWireframe(mode renderer.RenderMode) renderer.RenderMode {
	if mode == renderer.RenderModeLine {
		return renderer.RenderModeFill
	}
	return renderer.RenderModeLine
}

// applyRenderMode switches the driver to next and keeps the runtime
// wireframe flag in step with it
func applyRenderMode(driver *renderer.Driver, mode *renderer.RenderMode, next renderer.RenderMode) {
	*mode = next
	driver.SetRenderMode(next)
	config.SetWireframe(next == renderer.RenderModeLine)
}

// handleActions applies the actions triggered since the previous frame
func handleActions(im *input.Manager, window *glfw.Window, driver *renderer.Driver, demo *demoScene, mode *renderer.RenderMode, dt float64) {
	if im.JustPressed(input.ActionQuit) {
		window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionPause) {
		demo.paused = !demo.paused
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		applyRenderMode(driver, mode, toggledWireframe(*mode))
	}
	if im.JustPressed(input.ActionCycleRenderMode) {
		applyRenderMode(driver, mode, mode.Next())
		log.Printf("render mode: %v", *mode)
	}
	if im.JustPressed(input.ActionToggleZPrepass) {
		driver.SetDoubleSpeedZOnlyRendering(config.ToggleZPrepass())
		log.Printf("z-only prepass: %v", driver.DoubleSpeedZOnlyRendering())
	}
	if im.JustPressed(input.ActionToggleMaterialSort) {
		driver.SetSortByMaterial(!driver.SortByMaterial())
		log.Printf("sort by material: %v", driver.SortByMaterial())
	}
	if im.JustPressed(input.ActionDumpScene) {
		log.Print(driver.DebugString())
	}

	var yaw, zoom float32
	if im.IsActive(input.ActionOrbitLeft) {
		yaw--
	}
	if im.IsActive(input.ActionOrbitRight) {
		yaw++
	}
	if im.IsActive(input.ActionZoomIn) {
		zoom--
	}
	if im.IsActive(input.ActionZoomOut) {
		zoom++
	}
	if yaw != 0 || zoom != 0 {
		demo.Orbit(yaw*float32(dt), zoom*float32(dt))
	}

	im.PostUpdate()
}

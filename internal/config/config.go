package config

import "sync"

// RenderSettings holds render toggles changed at runtime from input handlers
type RenderSettings struct {
	mu        sync.RWMutex
	wireframe bool
	zPrepass  bool
}

var globalRenderSettings = &RenderSettings{}

// ApplyRenderSettings seeds the runtime toggles from loaded settings
func ApplyRenderSettings(s Settings) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = s.Render.Mode == "line"
	globalRenderSettings.zPrepass = s.Render.ZPrepass
}

// Wireframe reports whether the scene is drawn as lines
func Wireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframe flips wireframe mode and returns the new value
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// SetWireframe records whether the scene is drawn as lines
func SetWireframe(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = enabled
}

// ZPrepass reports whether the depth-only prepass is on
func ZPrepass() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.zPrepass
}

// ToggleZPrepass flips the depth-only prepass and returns the new value
func ToggleZPrepass() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.zPrepass = !globalRenderSettings.zPrepass
	return globalRenderSettings.zPrepass
}

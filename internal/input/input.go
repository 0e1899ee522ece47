package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer command, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionPause
	ActionToggleWireframe
	ActionCycleRenderMode
	ActionToggleZPrepass
	ActionToggleMaterialSort
	ActionDumpScene
	ActionOrbitLeft
	ActionOrbitRight
	ActionZoomIn
	ActionZoomOut
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionQuit:               "quit",
	ActionPause:              "pause",
	ActionToggleWireframe:    "toggle_wireframe",
	ActionCycleRenderMode:    "cycle_render_mode",
	ActionToggleZPrepass:     "toggle_z_prepass",
	ActionToggleMaterialSort: "toggle_material_sort",
	ActionDumpScene:          "dump_scene",
	ActionOrbitLeft:          "orbit_left",
	ActionOrbitRight:         "orbit_right",
	ActionZoomIn:             "zoom_in",
	ActionZoomOut:            "zoom_out",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Manager maps physical keys to actions and tracks per-frame edges.
// Key events arrive from GLFW callbacks; queries come from the frame loop.
type Manager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with the default viewer bindings
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.Bind(glfw.KeyEscape, ActionQuit)
	m.Bind(glfw.KeySpace, ActionPause)
	m.Bind(glfw.KeyF, ActionToggleWireframe)
	m.Bind(glfw.KeyR, ActionCycleRenderMode)
	m.Bind(glfw.KeyZ, ActionToggleZPrepass)
	m.Bind(glfw.KeyM, ActionToggleMaterialSort)
	m.Bind(glfw.KeyP, ActionDumpScene)
	m.Bind(glfw.KeyA, ActionOrbitLeft)
	m.Bind(glfw.KeyLeft, ActionOrbitLeft)
	m.Bind(glfw.KeyD, ActionOrbitRight)
	m.Bind(glfw.KeyRight, ActionOrbitRight)
	m.Bind(glfw.KeyW, ActionZoomIn)
	m.Bind(glfw.KeyUp, ActionZoomIn)
	m.Bind(glfw.KeyS, ActionZoomOut)
	m.Bind(glfw.KeyDown, ActionZoomOut)

	return m
}

// Bind adds action to the actions triggered by key
func (m *Manager) Bind(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// Unbind removes all action bindings for a key
func (m *Manager) Unbind(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// HandleKeyEvent updates action state for one GLFW key event
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		// detect edges when the event arrives so short taps between
		// frames are not lost
		if pressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = pressed
	}
}

// Attach installs the key callback on window
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the edge flags. Call once at the end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
}

// IsActive reports whether the action is held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed reports whether the action was pressed since the last PostUpdate
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether the action was released since the last PostUpdate
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

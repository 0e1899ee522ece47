package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestEdgesSurviveUntilPostUpdate(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	m.HandleKeyEvent(glfw.KeyZ, glfw.Release)

	// a tap between frames still registers once
	assert.True(t, m.JustPressed(ActionToggleZPrepass))
	assert.True(t, m.JustReleased(ActionToggleZPrepass))
	assert.False(t, m.IsActive(ActionToggleZPrepass))

	m.PostUpdate()
	assert.False(t, m.JustPressed(ActionToggleZPrepass))
	assert.False(t, m.JustReleased(ActionToggleZPrepass))
}

func TestRepeatKeepsActionHeld(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	m.PostUpdate()
	m.HandleKeyEvent(glfw.KeyA, glfw.Repeat)

	assert.True(t, m.IsActive(ActionOrbitLeft))
	assert.False(t, m.JustPressed(ActionOrbitLeft), "repeat is not a new press")
}

func TestMultipleKeysShareAction(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	assert.True(t, m.IsActive(ActionZoomIn))

	m.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.True(t, m.IsActive(ActionZoomIn))
}

func TestBindAndUnbind(t *testing.T) {
	m := NewManager()
	m.Bind(glfw.KeyX, ActionQuit)
	m.Bind(glfw.KeyX, ActionCount)

	m.HandleKeyEvent(glfw.KeyX, glfw.Press)
	assert.True(t, m.JustPressed(ActionQuit))

	m.PostUpdate()
	m.Unbind(glfw.KeyX)
	m.HandleKeyEvent(glfw.KeyX, glfw.Release)
	assert.True(t, m.IsActive(ActionQuit), "unbound key events are ignored")
}

func TestOutOfRangeActions(t *testing.T) {
	m := NewManager()
	assert.False(t, m.IsActive(ActionCount))
	assert.False(t, m.JustPressed(-1))
	assert.Equal(t, "unknown", ActionCount.String())
	assert.Equal(t, "toggle_z_prepass", ActionToggleZPrepass.String())
}

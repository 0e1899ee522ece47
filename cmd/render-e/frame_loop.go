package main

import (
	"fmt"
	"log"
	"time"

	"render-e/internal/graphics/renderer"
	"render-e/internal/input"
	"render-e/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const slowFrame = 16 * time.Millisecond

// FrameLoop drives input, animation and Display until the window closes
type FrameLoop struct {
	window  *glfw.Window
	driver  *renderer.Driver
	demo    *demoScene
	input   *input.Manager
	limiter *FPSLimiter
	mode    renderer.RenderMode

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func NewFrameLoop(window *glfw.Window, driver *renderer.Driver, demo *demoScene, im *input.Manager, limiter *FPSLimiter, mode renderer.RenderMode) *FrameLoop {
	now := time.Now()
	return &FrameLoop{
		window:           window,
		driver:           driver,
		demo:             demo,
		input:            im,
		limiter:          limiter,
		mode:             mode,
		lastFPSCheckTime: now,
		lastTime:         now,
	}
}

func (l *FrameLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *FrameLoop) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(l.lastTime).Seconds()
	l.lastTime = start

	glfw.PollEvents()
	handleActions(l.input, l.window, l.driver, l.demo, &l.mode, dt)
	l.demo.Update(dt)
	l.driver.Display()

	if d := time.Since(start); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s (%s)", d, profiling.TopN(5), profiling.CounterSummary())
	}

	l.frames++
	if since := time.Since(l.lastFPSCheckTime); since >= time.Second {
		l.window.SetTitle(l.demo.title + " - " + formatFPS(float64(l.frames)/since.Seconds()))
		l.frames = 0
		l.lastFPSCheckTime = time.Now()
	}

	l.limiter.Wait(l.demo.paused)
}

func formatFPS(fps float64) string {
	return fmt.Sprintf("%.0f FPS", fps)
}

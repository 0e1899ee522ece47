package main

import (
	"flag"
	"log"
	"runtime"

	"render-e/internal/config"
	"render-e/internal/graphics"
	"render-e/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "render-e.toml", "path to the TOML settings file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	config.ApplyRenderSettings(settings)

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(settings.Window)
	if err != nil {
		log.Fatal(err)
	}

	dev, err := graphics.NewLegacyDevice()
	if err != nil {
		log.Fatal(err)
	}
	shaders := graphics.NewDefaultShaders(dev)
	defer shaders.Release()

	mode, err := renderer.ParseRenderMode(settings.Render.Mode)
	if err != nil {
		log.Fatal(err)
	}

	driver := renderer.New(dev, shaders,
		renderer.WithDoubleSpeedZOnlyRendering(settings.Render.ZPrepass),
		renderer.WithSortByMaterial(settings.Render.SortByMaterial),
	)
	driver.Init(window.SwapBuffers)
	driver.SetRenderMode(mode)

	width, height := window.GetFramebufferSize()
	driver.Reshape(width, height)

	demo, err := buildScene(dev, shaders, settings)
	if err != nil {
		log.Fatal(err)
	}
	defer demo.Release()
	demo.Register(driver)

	im := setupInputHandlers(window, driver, demo)

	loop := NewFrameLoop(window, driver, demo, im, NewFPSLimiter(settings.Window.FPSLimit), mode)
	loop.Run()
}

func setupWindow(s config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the demo configuration file.
type Settings struct {
	Window WindowSettings `toml:"window"`
	Render RenderOptions  `toml:"render"`
	Camera CameraSettings `toml:"camera"`
	Shadow ShadowSettings `toml:"shadow"`
	Light  LightSettings  `toml:"light"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
	// FPSLimit caps the frame rate; 0 leaves it to vsync.
	FPSLimit int `toml:"fps_limit"`
}

type RenderOptions struct {
	// Mode is "fill", "line" or "point".
	Mode           string `toml:"mode"`
	ZPrepass       bool   `toml:"z_prepass"`
	SortByMaterial bool   `toml:"sort_by_material"`
	Texture        string `toml:"texture"`
}

type CameraSettings struct {
	FieldOfView float32    `toml:"field_of_view"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Position    [3]float32 `toml:"position"`
	Target      [3]float32 `toml:"target"`
	ClearColor  [4]float32 `toml:"clear_color"`
}

type ShadowSettings struct {
	Enabled bool `toml:"enabled"`
	Size    int  `toml:"size"`
	// Extent is the half-size of the orthographic light box.
	Extent float32 `toml:"extent"`
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
}

type LightSettings struct {
	// Type is "point" or "directional".
	Type     string     `toml:"type"`
	Position [3]float32 `toml:"position"`
	Ambient  [4]float32 `toml:"ambient"`
	Diffuse  [4]float32 `toml:"diffuse"`
	Specular [4]float32 `toml:"specular"`
}

var renderModes = []string{"fill", "line", "point"}

// Default returns settings that render the demo scene at 900x600.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: 900, Height: 600, Title: "render-e", VSync: true},
		Render: RenderOptions{Mode: "fill"},
		Camera: CameraSettings{
			FieldOfView: 30,
			Near:        0.1,
			Far:         100,
			Position:    [3]float32{6, 5, 8},
			ClearColor:  [4]float32{0.53, 0.81, 0.92, 1},
		},
		Shadow: ShadowSettings{Enabled: true, Size: 1024, Extent: 6, Near: 0.5, Far: 30},
		Light: LightSettings{
			Type:     "point",
			Position: [3]float32{0, 5, 0},
			Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
			Diffuse:  [4]float32{1, 1, 1, 1},
			Specular: [4]float32{1, 1, 1, 1},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML into s, keeping fields the document does not set, and
// validates the result.
func Parse(data []byte, s *Settings) error {
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return s.Validate()
}

// Validate rejects settings the renderer cannot honour.
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height))
	}
	if s.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps limit %d must not be negative", s.Window.FPSLimit))
	}
	if !slices.Contains(renderModes, s.Render.Mode) {
		errs = append(errs, fmt.Errorf("render mode %q must be one of %v", s.Render.Mode, renderModes))
	}
	if s.Camera.Near == 0 {
		errs = append(errs, errors.New("camera near plane must not be zero"))
	}
	if s.Camera.Far <= s.Camera.Near {
		errs = append(errs, fmt.Errorf("camera far plane %g must exceed near plane %g", s.Camera.Far, s.Camera.Near))
	}
	if s.Shadow.Enabled && s.Shadow.Size <= 0 {
		errs = append(errs, fmt.Errorf("shadow size %d must be positive", s.Shadow.Size))
	}
	if s.Light.Type != "point" && s.Light.Type != "directional" {
		errs = append(errs, fmt.Errorf("light type %q must be point or directional", s.Light.Type))
	}
	return errors.Join(errs...)
}

// Aspect returns the window aspect ratio.
func (s Settings) Aspect() float32 {
	return float32(s.Window.Width) / float32(s.Window.Height)
}

// Package config loads the renderer's startup settings from an optional TOML file
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/lixenwraith/donut/geometry"
	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/toml"
	"github.com/lixenwraith/donut/vmath"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete startup configuration
type Config struct {
	Torus    TorusConfig    `toml:"torus"`
	Render   RenderConfig   `toml:"render"`
	Scene    SceneConfig    `toml:"scene"`
	Rotation RotationConfig `toml:"rotation"`
}

type TorusConfig struct {
	N1 int     `toml:"n1"`
	N2 int     `toml:"n2"`
	R1 float64 `toml:"r1"`
	R2 float64 `toml:"r2"`
}

type RenderConfig struct {
	Palette string `toml:"palette"`
	// Caption is drawn on two rows; empty disables it
	Caption      string `toml:"caption"`
	FrameDelayMs int    `toml:"frame_delay_ms"`
}

// SceneConfig positions are world space
type SceneConfig struct {
	Camera [3]float64 `toml:"camera"`
	Light  [3]float64 `toml:"light"`
}

// RotationConfig holds the per-frame angles in radians
type RotationConfig struct {
	Spin  float64 `toml:"spin"`
	Roll  float64 `toml:"roll"`
	Pitch float64 `toml:"pitch"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Torus: TorusConfig{
			N1: parameter.TorusMajorSteps,
			N2: parameter.TorusMinorSteps,
			R1: parameter.TorusMajorRadius,
			R2: parameter.TorusMinorRadius,
		},
		Render: RenderConfig{
			Palette:      parameter.Palette,
			Caption:      parameter.Caption,
			FrameDelayMs: int(parameter.FrameDelay / time.Millisecond),
		},
		Scene: SceneConfig{
			Camera: parameter.DefaultCamera,
			Light:  parameter.DefaultLight,
		},
		Rotation: RotationConfig{
			Spin:  parameter.SpinAngle,
			Roll:  parameter.TumbleRoll,
			Pitch: parameter.TumblePitch,
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field, each wrapping ErrInvalid
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Torus.N1 < 1 {
		fail("torus.n1 must be at least 1, got %d", c.Torus.N1)
	}
	if c.Torus.N2 < 1 {
		fail("torus.n2 must be at least 1, got %d", c.Torus.N2)
	}
	if !positive(c.Torus.R1) {
		fail("torus.r1 must be positive, got %g", c.Torus.R1)
	}
	if !positive(c.Torus.R2) {
		fail("torus.r2 must be positive, got %g", c.Torus.R2)
	}
	if c.Render.Palette == "" {
		fail("render.palette must not be empty")
	}
	if c.Render.FrameDelayMs < 0 {
		fail("render.frame_delay_ms must not be negative, got %d", c.Render.FrameDelayMs)
	}
	if !finite(c.Scene.Camera) {
		fail("scene.camera must be finite, got %v", c.Scene.Camera)
	}
	if !finite(c.Scene.Light) || vmath.V3FMagSq(vec(c.Scene.Light)) == 0 {
		fail("scene.light must be a finite non-zero vector, got %v", c.Scene.Light)
	}
	for _, a := range []float64{c.Rotation.Spin, c.Rotation.Roll, c.Rotation.Pitch} {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			fail("rotation angles must be finite, got %+v", c.Rotation)
			break
		}
	}

	return errors.Join(errs...)
}

// Geometry returns the torus sampling grid
func (c Config) Geometry() geometry.Torus {
	return geometry.Torus{
		R1: c.Torus.R1,
		R2: c.Torus.R2,
		N1: c.Torus.N1,
		N2: c.Torus.N2,
	}
}

func (c Config) Camera() vmath.Vec3F {
	return vec(c.Scene.Camera)
}

// LightDir is the unnormalized light direction
func (c Config) LightDir() vmath.Vec3F {
	return vec(c.Scene.Light)
}

func (c Config) FrameDelay() time.Duration {
	return time.Duration(c.Render.FrameDelayMs) * time.Millisecond
}

func vec(a [3]float64) vmath.Vec3F {
	return vmath.Vec3F{X: a[0], Y: a[1], Z: a[2]}
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

func finite(a [3]float64) bool {
	for _, f := range a {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

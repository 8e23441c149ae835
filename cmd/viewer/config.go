package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type config struct {
	Window     window_config     `toml:"window"`
	Projection projection_config `toml:"projection"`
	Controls   control_config    `toml:"controls"`
	Texture    texture_config    `toml:"texture"`
}

type window_config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Vsync  bool   `toml:"vsync"`
}

type projection_config struct {
	// vertical field of view in degrees
	FovY float `toml:"fov_y"`
	Near float `toml:"near"`
	Far  float `toml:"far"`
}

// control_config scales raw input deltas before they reach the camera.
// Angles are radians per pixel (or per frame for keys), distances are
// fractions of the current camera distance.
type control_config struct {
	RotateSpeed float `toml:"rotate_speed"`
	RollSpeed   float `toml:"roll_speed"`
	PanSpeed    float `toml:"pan_speed"`
	ZoomSpeed   float `toml:"zoom_speed"`
	MoveSpeed   float `toml:"move_speed"`
	MinDistance float `toml:"min_distance"`
}

type texture_config struct {
	Size         int `toml:"size"`
	Subdivisions int `toml:"subdivisions"`
}

func default_config() config {
	return config{
		Window: window_config{
			Title:  "viewer",
			Width:  1024,
			Height: 768,
			Vsync:  true,
		},
		Projection: projection_config{
			FovY: 45,
			Near: 0.1,
			Far:  1000,
		},
		Controls: control_config{
			RotateSpeed: 0.01,
			RollSpeed:   0.02,
			PanSpeed:    0.002,
			ZoomSpeed:   0.1,
			MoveSpeed:   0.02,
			MinDistance: 0.05,
		},
		Texture: texture_config{
			Size:         128,
			Subdivisions: 8,
		},
	}
}

// load_config reads a TOML file over the defaults. An empty path returns
// the defaults.
func load_config(path string) (config, error) {
	cfg := default_config()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := decode_config(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func decode_config(data []byte, cfg *config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return fmt.Errorf("bad config: %w", err)
	}

	return cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Projection.FovY <= 0 || c.Projection.FovY >= 180:
		return fmt.Errorf("fov_y %v must be within (0, 180)", c.Projection.FovY)
	case c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near:
		return fmt.Errorf("near %v / far %v must satisfy 0 < near < far", c.Projection.Near, c.Projection.Far)
	case c.Controls.MinDistance <= 0:
		return fmt.Errorf("min_distance %v must be positive", c.Controls.MinDistance)
	case c.Texture.Size <= 0 || c.Texture.Subdivisions <= 0 || c.Texture.Size%c.Texture.Subdivisions != 0:
		return fmt.Errorf("texture size %d must be a positive multiple of subdivisions %d", c.Texture.Size, c.Texture.Subdivisions)
	}
	return nil
}

package main

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/thedaneeffect/ebiten-model-viewer/camera"
)

// input_state is one frame of user input, already reduced to deltas.
type input_state struct {
	// left button drag, pixels
	orbit_x, orbit_y float
	// right button drag, pixels
	pan_x, pan_y float
	wheel        float
	// -1, 0 or 1 per frame a key is held
	roll    float
	forward float
	strafe  float
	reset   bool
}

func (in input_state) empty() bool {
	return in == input_state{}
}

type mouse_drag struct {
	x, y     int
	dragging bool
}

// delta returns the cursor movement since the previous frame the button
// was held. The first frame of a drag reports zero so the camera does
// not snap.
func (d *mouse_drag) delta(pressed bool, cx, cy int) (float, float) {
	if !pressed {
		d.dragging = false
		return 0, 0
	}

	var dx, dy float
	if d.dragging {
		dx = float(cx - d.x)
		dy = float(cy - d.y)
	}
	d.dragging = true
	d.x = cx
	d.y = cy
	return dx, dy
}

type controls struct {
	config control_config
	home   camera.Manipulator

	orbit mouse_drag
	pan   mouse_drag
}

func key_axis(negative, positive ebiten.Key) float {
	var v float
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	return v
}

// poll reads ebiten's input state for the current frame.
func (c *controls) poll() input_state {
	var in input_state

	cx, cy := ebiten.CursorPosition()
	in.orbit_x, in.orbit_y = c.orbit.delta(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), cx, cy)
	in.pan_x, in.pan_y = c.pan.delta(ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight), cx, cy)

	_, yoff := ebiten.Wheel()
	in.wheel = float(yoff)

	in.roll = key_axis(ebiten.KeyQ, ebiten.KeyE)
	in.forward = key_axis(ebiten.KeyS, ebiten.KeyW)
	in.strafe = key_axis(ebiten.KeyA, ebiten.KeyD)
	in.reset = inpututil.IsKeyJustPressed(ebiten.KeyR)

	return in
}

// apply drives cam with one frame of input. When the result would leave
// the camera degenerate the frame is discarded and the error returned.
func (c *controls) apply(cam *camera.Manipulator, in input_state) error {
	if in.reset {
		*cam = c.home
		return nil
	}
	if in.empty() {
		return nil
	}

	cfg := c.config
	previous := *cam

	if in.orbit_x != 0 {
		cam.Yaw(-in.orbit_x * cfg.RotateSpeed)
	}
	if in.orbit_y != 0 {
		cam.Pitch(-in.orbit_y * cfg.RotateSpeed)
	}
	if in.roll != 0 {
		cam.Roll(in.roll * cfg.RollSpeed)
	}

	dist := cam.Distance()

	if in.pan_x != 0 || in.pan_y != 0 {
		k := cfg.PanSpeed * dist
		cam.MoveRelative(vec3{-in.pan_x * k, in.pan_y * k, 0})
	}

	if in.forward != 0 || in.strafe != 0 {
		k := cfg.MoveSpeed * dist
		cam.MoveRelative(vec3{in.strafe * k, 0, in.forward * k})
	}

	if in.wheel != 0 {
		delta := -in.wheel * cfg.ZoomSpeed * dist
		// zooming in stops at min_distance but never pushes the eye back out
		if delta < 0 && dist+delta < cfg.MinDistance {
			delta = min(0, cfg.MinDistance-dist)
		}
		cam.Dolly(delta)
	}

	if err := cam.Validate(); err != nil {
		*cam = previous
		slog.Debug("camera input rejected", "err", err)
		return err
	}

	return nil
}

package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Epsilon is the length below which Validate treats a vector as zero.
const Epsilon = 1e-6

var (
	// ErrNonFinite is returned when a component of the rig is NaN or infinite.
	ErrNonFinite = errors.New("camera: non-finite component")

	// ErrCoincident is returned when the eye sits on the target.
	ErrCoincident = errors.New("camera: position coincides with target")

	// ErrParallelUp is returned when up has zero length or lies along the
	// view direction.
	ErrParallelUp = errors.New("camera: up is parallel to view direction")
)

// Validate reports whether the rig is in a state the operators can work
// with. It returns nil for a usable rig and one of ErrNonFinite,
// ErrCoincident or ErrParallelUp, wrapped with detail, otherwise.
func (m *Manipulator) Validate() error {
	names := [...]string{"position", "target", "up"}
	for i, v := range [...]vec3{m.position, m.target, m.up} {
		if !finite(v) {
			return fmt.Errorf("%s %v: %w", names[i], v, ErrNonFinite)
		}
	}

	if dist := m.Distance(); dist <= Epsilon {
		return fmt.Errorf("distance %g: %w", dist, ErrCoincident)
	}

	if m.up.Len() <= Epsilon {
		return fmt.Errorf("up has zero length: %w", ErrParallelUp)
	}

	if n := m.ViewDirection().Cross(m.up.Normalize()).Len(); n <= Epsilon {
		return fmt.Errorf("|view x up| = %g: %w", n, ErrParallelUp)
	}

	return nil
}

func finite(v vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

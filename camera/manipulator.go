// Package camera implements a look-at camera rig that can be rolled,
// pitched, yawed, dollied and panned around its target.
//
// The rig is a plain value: it owns no renderer resources and hands its
// state to a renderer as a ViewTransform.
package camera

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

type vec3 = mgl.Vec3

// Manipulator holds an eye position, a look-at target and an up vector in
// a single world frame.
//
// Position and target must never coincide and up must never be parallel
// to the view direction. The operators do not check either condition;
// use Validate after applying untrusted input.
type Manipulator struct {
	position vec3
	target   vec3
	up       vec3
}

// New returns a manipulator looking from position at target. up is
// normalized; it does not have to be orthogonal to the view direction.
func New(position, target, up vec3) Manipulator {
	return Manipulator{
		position: position,
		target:   target,
		up:       up.Normalize(),
	}
}

// LookAt replaces the whole rig state, same as New.
func (m *Manipulator) LookAt(position, target, up vec3) {
	*m = New(position, target, up)
}

// Position is the eye point.
func (m *Manipulator) Position() vec3 { return m.position }

// Target is the point the eye looks at.
func (m *Manipulator) Target() vec3 { return m.target }

// Up is the unit up vector. It is not necessarily orthogonal to the view
// direction.
func (m *Manipulator) Up() vec3 { return m.up }

// ViewDirection is the unit vector from the eye towards the target.
func (m *Manipulator) ViewDirection() vec3 {
	return m.target.Sub(m.position).Normalize()
}

// Distance is the length between the eye and the target.
func (m *Manipulator) Distance() float32 {
	return m.target.Sub(m.position).Len()
}

// Right is the unit vector cross(ViewDirection, Up).
func (m *Manipulator) Right() vec3 {
	return m.ViewDirection().Cross(m.up).Normalize()
}

// Roll rotates up around the view direction. Position and target are
// left untouched.
func (m *Manipulator) Roll(radians float32) {
	viewdir := m.ViewDirection()
	m.up = rotation(radians, viewdir).Mul3x1(m.up).Normalize()
}

// Yaw swings the eye around the target about the up axis, keeping the
// distance to the target.
func (m *Manipulator) Yaw(radians float32) {
	view := m.target.Sub(m.position)
	dist := view.Len()

	viewdir := rotation(radians, m.up).Mul3x1(view.Normalize()).Normalize()

	m.position = m.target.Sub(viewdir.Mul(dist))
}

// Pitch swings the eye around the target about the right axis, keeping
// the distance to the target. Up is rotated along with the view
// direction.
func (m *Manipulator) Pitch(radians float32) {
	view := m.target.Sub(m.position)
	dist := view.Len()

	viewdir := view.Normalize()
	xform := rotation(radians, viewdir.Cross(m.up))

	viewdir = xform.Mul3x1(viewdir).Normalize()
	m.up = xform.Mul3x1(m.up).Normalize()

	m.position = m.target.Sub(viewdir.Mul(dist))
}

// MoveRelative translates eye and target together along the rig's local
// axes: dir[0] along cross(ViewDirection, Up), dir[1] along Up and dir[2]
// along ViewDirection. The first axis is not normalized, so it matches
// Right only while up is orthogonal to the view direction.
func (m *Manipulator) MoveRelative(dir vec3) {
	viewdir := m.ViewDirection()
	bivector := viewdir.Cross(m.up)

	delta := bivector.Mul(dir[0]).
		Add(m.up.Mul(dir[1])).
		Add(viewdir.Mul(dir[2]))

	m.position = m.position.Add(delta)
	m.target = m.target.Add(delta)
}

// Dolly moves the eye along the view axis so that the distance to the
// target changes by delta. Negative values move closer. The caller must
// keep Distance()+delta above zero.
func (m *Manipulator) Dolly(delta float32) {
	view := m.target.Sub(m.position)
	dist := view.Len()
	m.position = m.target.Sub(view.Normalize().Mul(dist + delta))
}

// ViewTransform returns the current eye, target and up triple.
func (m *Manipulator) ViewTransform() ViewTransform {
	return ViewTransform{
		Eye:    m.position,
		Target: m.target,
		Up:     m.up,
	}
}

// ViewTransform is the look-at triple a renderer consumes once per frame.
type ViewTransform struct {
	Eye    vec3
	Target vec3
	Up     vec3
}

// Matrix returns the right-handed look-at view matrix.
func (vt ViewTransform) Matrix() mgl.Mat4 {
	return mgl.LookAtV(vt.Eye, vt.Target, vt.Up)
}

// rotation builds a right-handed rotation of radians around axis. The
// axis is normalized first so the rotation angle never depends on its
// length.
func rotation(radians float32, axis vec3) mgl.Mat3 {
	return mgl.HomogRotate3D(radians, axis.Normalize()).Mat3()
}

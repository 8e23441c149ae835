package main

import (
	"math"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterMesh(t *testing.T) {
	mesh := &mesh_t{points: []vec3{
		{9, 1, -3},
		{11, 3, -1},
		{10, 2, -2},
	}}

	radius := center_mesh(mesh)

	assert.InDelta(t, math.Sqrt(3), radius, 1e-4)
	assert.True(t, mesh.points[0].ApproxEqual(vec3{-1, -1, -1}), "%v", mesh.points[0])
	assert.True(t, mesh.points[1].ApproxEqual(vec3{1, 1, 1}), "%v", mesh.points[1])
	assert.True(t, mesh.points[2].ApproxEqual(vec3{}), "%v", mesh.points[2])
}

func TestHomeCameraFramesOrigin(t *testing.T) {
	mesh := &mesh_t{points: []vec3{{4, 5, 6}, {6, 7, 8}}}
	radius := center_mesh(mesh)

	home := home_camera(radius, 90)
	require.NoError(t, home.Validate())

	assert.Equal(t, vec3{}, home.Target())
	assert.True(t, home.Up().ApproxEqual(vec3{0, 1, 0}))
	// tan(45 degrees) is 1, so the eye sits one radius out on +Z
	assert.True(t, home.Position().ApproxEqualThreshold(vec3{0, 0, radius}, 1e-4), "%v", home.Position())

	// the sphere fits the field of view exactly
	half := mgl.DegToRad(90) / 2
	assert.InDelta(t, radius, home.Distance()*float(math.Tan(float64(half))), 1e-4)
}

func TestHomeCameraSinglePoint(t *testing.T) {
	mesh := &mesh_t{points: []vec3{{2, -3, 7}}}

	radius := center_mesh(mesh)
	assert.Zero(t, radius)
	assert.Equal(t, vec3{}, mesh.points[0])

	// a zero radius falls back to a unit sphere
	home := home_camera(radius, 90)
	require.NoError(t, home.Validate())
	assert.InDelta(t, 1, home.Distance(), 1e-4)
}

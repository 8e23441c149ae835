package main

import (
	"bytes"
	"math"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedaneeffect/ebiten-model-viewer/camera"
)

func test_context() *render_context {
	ctx := &render_context{shading: true, ambient: 0.25}
	ctx.set_viewport(200, 100)
	return ctx
}

func view_project(cam camera.Manipulator) mat4 {
	proj := mgl.Perspective(mgl.DegToRad(45), 2, 0.1, 100)
	return proj.Mul4(cam.ViewTransform().Matrix())
}

func TestPushTriangleCulling(t *testing.T) {
	ctx := test_context()
	front := vertex{pos: vec4{-0.5, -0.5, 0, 1}}
	right := vertex{pos: vec4{0.5, -0.5, 0, 1}}
	top := vertex{pos: vec4{0, 0.5, 0, 1}}

	ctx.push_triangle(front, right, top)
	require.Len(t, ctx.vertices, 3)
	assert.Equal(t, []uint16{0, 1, 2}, ctx.indices)

	// ndc (-0.5, -0.5) lands a quarter into the 200x100 viewport, y flipped
	assert.InDelta(t, 50, ctx.vertices[0].DstX, 1e-4)
	assert.InDelta(t, 75, ctx.vertices[0].DstY, 1e-4)

	// clockwise winding faces away
	ctx.push_triangle(front, top, right)
	assert.Len(t, ctx.vertices, 3)
}

func TestPushTriangleClipped(t *testing.T) {
	ctx := test_context()
	ctx.push_triangle(
		vertex{pos: vec4{0, -0.5, 0, 1}},
		vertex{pos: vec4{2, 0, 0, 1}},
		vertex{pos: vec4{0, 0.5, 0, 1}},
	)

	// the clipped quad is emitted as two triangles inside the viewport
	require.Len(t, ctx.vertices, 6)
	for _, v := range ctx.vertices {
		assert.LessOrEqual(t, v.DstX, float(200)+1e-3)
		assert.GreaterOrEqual(t, v.DstX, float(0))
	}
}

func TestPushMeshCube(t *testing.T) {
	mesh, err := load_obj(bytes.NewReader(cube_obj))
	require.NoError(t, err)

	cam := camera.Frame(vec3{}, float(math.Sqrt(3)), mgl.DegToRad(45))
	ctx := test_context()
	headlight := cam.Position().Sub(cam.Target()).Normalize()

	ctx.push_mesh(mesh, view_project(cam), headlight, 1)

	// looking straight at +Z only the front face survives culling
	assert.Len(t, ctx.vertices, 6)
	assert.Empty(t, ctx.clip_space_points)

	// the front face is lit head on, so its colour is the full texture
	// colour once the shader undoes the 1/w scaling
	for _, v := range ctx.vertices {
		assert.InDelta(t, 1, v.ColorR/v.Custom3, 1e-4)
	}

	// orbiting a little brings a side face into view
	cam.Yaw(0.5)
	ctx.vertices = ctx.vertices[:0]
	ctx.indices = ctx.indices[:0]
	ctx.push_mesh(mesh, view_project(cam), headlight, 1)
	assert.Len(t, ctx.vertices, 12)
}

func TestFlushWithoutTarget(t *testing.T) {
	ctx := test_context()
	ctx.push_triangle(
		vertex{pos: vec4{-0.5, -0.5, 0, 1}},
		vertex{pos: vec4{0.5, -0.5, 0, 1}},
		vertex{pos: vec4{0, 0.5, 0, 1}},
	)
	ctx.flush()
	assert.Equal(t, 1, ctx.drawn_triangles)
	assert.Empty(t, ctx.vertices)
	assert.Empty(t, ctx.indices)
}

func TestFull(t *testing.T) {
	ctx := test_context()
	assert.False(t, ctx.full())
	ctx.vertices = make([]ebiten.Vertex, 1<<16-3*7)
	assert.True(t, ctx.full())
}

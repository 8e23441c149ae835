package main

import (
	"github.com/hajimehoshi/ebiten/v2"
)

var shader_src = `
//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, rgba vec4, custom vec4) vec4 {
	src_origin := imageSrc0Origin()

	// atlas -> texture space
	texel := src - src_origin

	// perspective divide
	if custom.w != 0.0 {
		texel /= custom.w
		rgba /= custom.w
	}

	// tile uvs outside [0, 1] and scale to pixels
	texel = fract(texel) * imageSrc0Size()

	// move back to atlas space
	texel += src_origin

	return imageSrc0At(texel) * vec4(rgba.rgb, 1.0)
}
`

type vertex struct {
	pos  vec4
	rgba vec4
	uv   vec2
}

type viewport struct {
	w      int
	h      int
	w_half int
	h_half int
}

type screen_triangle struct {
	v1, v2, v3 vertex
}

// render_context turns meshes into ebiten triangles. The slices are kept
// between frames to avoid reallocating them.
type render_context struct {
	shader   *ebiten.Shader
	viewport viewport
	clipper  clipper

	// shade faces by the headlight; plain texture otherwise
	shading bool
	ambient float

	// set by begin for the duration of a frame
	texture *ebiten.Image
	target  *ebiten.Image

	drawn_triangles int

	triangle_buffer   []screen_triangle
	clip_space_points []vec4
	vertices          []ebiten.Vertex
	indices           []uint16
}

// begin starts a frame drawing texture onto target.
func (ctx *render_context) begin(texture, target *ebiten.Image) {
	ctx.texture = texture
	ctx.target = target
	ctx.drawn_triangles = 0
	ctx.set_viewport(target.Bounds().Dx(), target.Bounds().Dy())
}

func (ctx *render_context) set_viewport(w, h int) {
	ctx.viewport.w = w
	ctx.viewport.h = h
	ctx.viewport.w_half = w / 2
	ctx.viewport.h_half = h / 2
}

// push_mesh projects mesh with view_project and queues its visible
// triangles. light_dir points from the surface towards the light.
func (ctx *render_context) push_mesh(mesh *mesh_t, view_project mat4, light_dir vec3, radius float) {
	for _, point := range mesh.points {
		ctx.clip_space_points = append(ctx.clip_space_points, view_project.Mul4x1(point.Vec4(1)))
	}

	for _, tri := range mesh.triangles {
		var verts [3]vertex

		shade := float(1)
		if ctx.shading {
			n := face_normal(mesh.points[tri.v[0]], mesh.points[tri.v[1]], mesh.points[tri.v[2]])
			shade = lambert(n, light_dir, ctx.ambient)
		}

		for i := range verts {
			verts[i].pos = ctx.clip_space_points[tri.v[i]]
			verts[i].rgba = vec4{shade, shade, shade, 1}
			if t := tri.t[i]; t >= 0 {
				verts[i].uv = mesh.uvs[t]
			} else {
				verts[i].uv = planar_uv(mesh.points[tri.v[i]], radius)
			}
		}

		ctx.push_triangle(verts[0], verts[1], verts[2])
	}

	ctx.clip_space_points = ctx.clip_space_points[:0]
}

func (ctx *render_context) push_triangle(v1, v2, v3 vertex) {
	if ctx.full() {
		ctx.flush()
	}

	if !out_of_bounds(v1.pos) && !out_of_bounds(v2.pos) && !out_of_bounds(v3.pos) {
		ctx.triangle_buffer = append(ctx.triangle_buffer, screen_triangle{v1, v2, v3})
	} else {
		points := ctx.clipper.clip(v1.pos, v2.pos, v3.pos)

		p1 := v1.pos.Vec3()
		p2 := v2.pos.Vec3()
		p3 := v3.pos.Vec3()

		for i := 2; i < len(points); i++ {
			b1 := barycentric(p1, p2, p3, points[0].Vec3())
			b2 := barycentric(p1, p2, p3, points[i-1].Vec3())
			b3 := barycentric(p1, p2, p3, points[i].Vec3())

			ctx.triangle_buffer = append(ctx.triangle_buffer, screen_triangle{
				v1: interpolate_vertex(v1, v2, v3, b1),
				v2: interpolate_vertex(v1, v2, v3, b2),
				v3: interpolate_vertex(v1, v2, v3, b3),
			})
		}
	}

	for _, t := range ctx.triangle_buffer {
		ctx.emit(t)
	}
	ctx.triangle_buffer = ctx.triangle_buffer[:0]
}

// emit converts a clipped triangle to screen space, culling back faces.
func (ctx *render_context) emit(t screen_triangle) {
	var r [3]ebiten.Vertex
	var inv_w [3]float

	for i, v := range [3]vertex{t.v1, t.v2, t.v3} {
		// perspective divide (clip -> ndc)
		inv_w[i] = 1.0 / v.pos.W()
		r[i].DstX = v.pos.X() * inv_w[i]
		r[i].DstY = v.pos.Y() * inv_w[i]
	}

	// 2d cross product
	dx12 := r[1].DstX - r[0].DstX
	dy12 := r[1].DstY - r[0].DstY
	dx13 := r[2].DstX - r[0].DstX
	dy13 := r[2].DstY - r[0].DstY

	// back-face culling
	if dx12*dy13-dx13*dy12 <= 0 {
		return
	}

	w_half := float(ctx.viewport.w_half)
	h_half := float(ctx.viewport.h_half)
	h := float(ctx.viewport.h)

	for i, v := range [3]vertex{t.v1, t.v2, t.v3} {
		// ndc to screen space
		r[i].DstX = viewport_transform(r[i].DstX, w_half)
		r[i].DstY = h - viewport_transform(r[i].DstY, h_half)

		// perspective correction, undone per pixel in the shader
		r[i].ColorR = v.rgba.X() * inv_w[i]
		r[i].ColorG = v.rgba.Y() * inv_w[i]
		r[i].ColorB = v.rgba.Z() * inv_w[i]
		r[i].ColorA = v.rgba.W() * inv_w[i]
		r[i].SrcX = v.uv.X() * inv_w[i]
		r[i].SrcY = v.uv.Y() * inv_w[i]
		r[i].Custom3 = inv_w[i]
	}

	first_index := uint16(len(ctx.vertices))
	ctx.vertices = append(ctx.vertices, r[0], r[1], r[2])
	ctx.indices = append(ctx.indices, first_index, first_index+1, first_index+2)
}

// full reports whether a clipped triangle (up to seven output triangles)
// could overflow the uint16 index buffer.
func (ctx *render_context) full() bool {
	return len(ctx.vertices)+3*7 > 1<<16-1
}

// flush draws the queued triangles; push_triangle calls it early when the
// index buffer fills up.
func (ctx *render_context) flush() {
	if len(ctx.vertices) > 0 && ctx.target != nil {
		ctx.target.DrawTrianglesShader(ctx.vertices, ctx.indices, ctx.shader, &ebiten.DrawTrianglesShaderOptions{
			Images: [4]*ebiten.Image{
				ctx.texture,
			},
		})
	}
	ctx.drawn_triangles += len(ctx.vertices) / 3
	ctx.vertices = ctx.vertices[:0]
	ctx.indices = ctx.indices[:0]
}

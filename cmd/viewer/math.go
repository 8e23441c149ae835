package main

import mgl "github.com/go-gl/mathgl/mgl32"

func interpolate_vec4(v1, v2, v3 vec4, f vec3) (result vec4) {
	result = result.Add(v1.Mul(f.X()))
	result = result.Add(v2.Mul(f.Y()))
	result = result.Add(v3.Mul(f.Z()))
	return
}

func interpolate_vec2(v1, v2, v3 vec2, f vec3) (result vec2) {
	result = result.Add(v1.Mul(f.X()))
	result = result.Add(v2.Mul(f.Y()))
	result = result.Add(v3.Mul(f.Z()))
	return
}

func interpolate_vertex(v1, v2, v3 vertex, f vec3) (result vertex) {
	result.pos = interpolate_vec4(v1.pos, v2.pos, v3.pos, f)
	result.rgba = interpolate_vec4(v1.rgba, v2.rgba, v3.rgba, f)
	result.uv = interpolate_vec2(v1.uv, v2.uv, v3.uv, f)
	return
}

// face_normal is the unit normal of a counter-clockwise triangle.
func face_normal(p1, p2, p3 vec3) vec3 {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return n
}

// lambert returns a grey level for a surface facing normal lit from
// light_dir, never darker than ambient.
func lambert(normal, light_dir vec3, ambient float) float {
	return ambient + (1-ambient)*mgl.Clamp(normal.Dot(light_dir), 0, 1)
}

// planar_uv maps a point of a mesh centered at the origin onto the
// texture when the mesh carries no texcoords.
func planar_uv(p vec3, radius float) vec2 {
	if radius <= 0 {
		radius = 1
	}
	s := 1 / (2 * radius)
	return vec2{(p.X()+p.Z())*s + 0.5, 0.5 - p.Y()*s}
}

func out_of_bounds(a vec4) bool {
	x, y, z, w := a.X(), a.Y(), a.Z(), a.W()
	return x < -w || x > w || y < -w || y > w || z < -w || z > w
}

func viewport_transform(ndc, dimension_half float) float {
	return dimension_half*ndc + dimension_half
}

type plane struct {
	origin vec4
	normal vec4
}

// test determines if `v` is in front of the plane.
func (p plane) test(v vec4) bool {
	return v.Sub(p.origin).Dot(p.normal) > 0
}

// intersection returns the point of contact of a line segment between a->b to our plane.
func (p plane) intersection(a, b vec4) vec4 {
	u := b.Sub(a)
	w := a.Sub(p.origin)
	d := p.normal.Dot(u)
	n := -p.normal.Dot(w)
	return a.Add(u.Mul(n / d))
}

var clip_planes = [...]plane{
	{origin: vec4{1, 0, 0, 1}, normal: vec4{-1, 0, 0, 1}}, // right
	{origin: vec4{-1, 0, 0, 1}, normal: vec4{1, 0, 0, 1}}, // left
	{origin: vec4{0, 1, 0, 1}, normal: vec4{0, -1, 0, 1}}, // bottom
	{origin: vec4{0, -1, 0, 1}, normal: vec4{0, 1, 0, 1}}, // top
	{origin: vec4{0, 0, 1, 1}, normal: vec4{0, 0, -1, 1}}, // front
	{origin: vec4{0, 0, -1, 1}, normal: vec4{0, 0, 1, 1}}, // back
}

// clipper owns the scratch polygons used while clipping so a render
// context can clip without allocating.
type clipper struct {
	// a triangle clipped by six planes never exceeds nine points
	in  [9]vec4
	out [9]vec4
}

// clip runs Sutherland-Hodgman against the clip space volume. The returned
// slice aliases the clipper and is valid until the next call.
func (c *clipper) clip(p1, p2, p3 vec4) []vec4 {
	output := append(c.out[:0], p1, p2, p3)
	for _, plane := range clip_planes {
		n := copy(c.in[:], output)
		input := c.in[:n]
		output = c.out[:0]
		if len(input) == 0 {
			return nil
		}
		prev_point := input[len(input)-1]
		for _, point := range input {
			if plane.test(point) {
				if !plane.test(prev_point) {
					output = append(output, plane.intersection(prev_point, point))
				}
				output = append(output, point)
			} else if plane.test(prev_point) {
				output = append(output, plane.intersection(prev_point, point))
			}
			prev_point = point
		}
	}
	return output
}

// https://en.wikipedia.org/wiki/Barycentric_coordinate_system
func barycentric(p1, p2, p3, p vec3) vec3 {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p1)
	v2 := p.Sub(p1)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	d := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / d
	w := (d00*d21 - d01*d20) / d
	u := 1 - v - w
	return vec3{u, v, w}
}

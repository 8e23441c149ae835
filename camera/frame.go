package camera

import (
	"github.com/chewxy/math32"
)

// Frame returns a manipulator on the +Z side of center, looking at it with
// +Y up, far enough away that a sphere of the given radius fills a
// vertical field of view of fovY radians.
func Frame(center vec3, radius, fovY float32) Manipulator {
	if radius <= 0 {
		radius = 1
	}
	dist := radius / math32.Tan(fovY/2)
	return New(
		center.Add(vec3{0, 0, dist}),
		center,
		vec3{0, 1, 0},
	)
}

// BoundingSphere returns the center and radius of the sphere around the
// axis aligned box of points. It returns a zero center and radius for an
// empty slice.
func BoundingSphere(points []vec3) (center vec3, radius float32) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for i := range p {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}

	center = lo.Add(hi).Mul(0.5)
	radius = hi.Sub(lo).Len() / 2
	return
}

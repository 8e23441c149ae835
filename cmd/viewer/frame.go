package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/thedaneeffect/ebiten-model-viewer/camera"
)

// center_mesh moves the mesh so its bounding sphere sits at the origin and
// returns the sphere's radius.
func center_mesh(mesh *mesh_t) float {
	center, radius := camera.BoundingSphere(mesh.points)
	for i, p := range mesh.points {
		mesh.points[i] = p.Sub(center)
	}
	return radius
}

// home_camera frames a sphere of radius at the origin for a vertical field
// of view of fov_y degrees.
func home_camera(radius, fov_y float) camera.Manipulator {
	return camera.Frame(vec3{}, radius, mgl.DegToRad(fov_y))
}

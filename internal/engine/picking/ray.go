// Package picking provides ray casting against terrain collision meshes.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrastream/internal/engine/terrain"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// Down returns a ray pointing straight down from (x, y, z).
func Down(x, y, z float32) Ray {
	return Ray{Origin: [3]float32{x, y, z}, Direction: [3]float32{0, -1, 0}}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := range 3 {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) from either side.
// Returns the distance along the ray and whether it hit.
func (r Ray) IntersectTriangle(a, b, c [3]float32) (t float32, hit bool) {
	const epsilon = 1e-7

	origin := mgl32.Vec3(r.Origin)
	dir := mgl32.Vec3(r.Direction)
	v0 := mgl32.Vec3(a)
	edge1 := mgl32.Vec3(b).Sub(v0)
	edge2 := mgl32.Vec3(c).Sub(v0)

	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false // Parallel to the triangle plane
	}
	inv := 1 / det

	s := origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// RaycastMesh returns the nearest hit of the ray against mesh placed with its
// local origin at offset.
func RaycastMesh(r Ray, mesh *terrain.Mesh, offset [3]float32) (t float32, hit bool) {
	if mesh == nil || len(mesh.Indices) < 3 {
		return 0, false
	}

	// Work in mesh-local space
	local := r
	for i := range 3 {
		local.Origin[i] -= offset[i]
	}

	if _, ok := local.IntersectAABB(AABB(mesh.Bounds)); !ok {
		return 0, false
	}

	best := float32(gomath.MaxFloat32)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position
		if d, ok := local.IntersectTriangle(a, b, c); ok && d < best {
			best = d
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

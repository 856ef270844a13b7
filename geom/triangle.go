package geom

import "github.com/turner-renderer/renderer/types"

// Triangle is the geometric and material payload the radiosity core
// operates on: vertices, area, normal, midpoint and the two material
// channels relevant to diffuse transport.
type Triangle struct {
	Vertices [3]types.Vec3
	Normal   types.Vec3
	Area     float32

	// Diffuse is the reflectance ρ (one value per channel, 0..1).
	Diffuse Color
	// Emissive is the emitted radiosity E (one value per channel, >= 0).
	Emissive Color
}

// NewTriangle builds a Triangle from its three corners (any winding; the
// normal follows the right-hand rule of (v1-v0) x (v2-v0)) and a material.
func NewTriangle(v0, v1, v2 types.Vec3, diffuse, emissive Color) Triangle {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	cross := e1.Cross(e2)
	area := cross.Len() * 0.5

	return Triangle{
		Vertices: [3]types.Vec3{v0, v1, v2},
		Normal:   cross.Normalize(),
		Area:     area,
		Diffuse:  diffuse,
		Emissive: emissive,
	}
}

// Midpoint returns the triangle's centroid.
func (t Triangle) Midpoint() types.Vec3 {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Mul(1.0 / 3.0)
}

// BBox returns the axis-aligned bounding box of the triangle, used by the
// BVH visibility oracle in mesh/accel.
func (t Triangle) BBox() (min, max types.Vec3) {
	min = t.Vertices[0]
	max = t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		min = types.MinVec3(min, v)
		max = types.MaxVec3(max, v)
	}
	return min, max
}

// Subdivide4 performs a uniform-barycentric (midpoint) four-way split of
// the triangle into its four children, tiling the parent exactly. Child
// ordering is fixed: the three corner children first (around v0, v1, v2 in
// that order), then the central child. This is the same ordering and the
// same midpoints the default mesh.MeshRefiner implementation in mesh/subdiv
// computes on its own; this is the pure-geometry half of that operation, so
// it can be unit tested without a half-edge mesh.
func (t Triangle) Subdivide4() [4]Triangle {
	v0, v1, v2 := t.Vertices[0], t.Vertices[1], t.Vertices[2]
	m01 := v0.Add(v1).Mul(0.5)
	m12 := v1.Add(v2).Mul(0.5)
	m20 := v2.Add(v0).Mul(0.5)

	return [4]Triangle{
		NewTriangle(v0, m01, m20, t.Diffuse, t.Emissive),
		NewTriangle(m01, v1, m12, t.Diffuse, t.Emissive),
		NewTriangle(m20, m12, v2, t.Diffuse, t.Emissive),
		NewTriangle(m01, m12, m20, t.Diffuse, t.Emissive),
	}
}

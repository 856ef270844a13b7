// Package mesh defines the external collaborators the radiosity core
// consumes: a source of input triangles, a visibility oracle backed by a
// ray-triangle accelerator, and a mesh refiner that performs the four-way
// midpoint subdivision of a face. Concrete implementations live in
// mesh/accel (BVH) and mesh/subdiv (half-edge mesh); the core package
// (radiosity) only ever imports the interfaces declared here.
package mesh

import "github.com/turner-renderer/renderer/geom"

// FaceHandle identifies a face in a MeshRefiner-managed mesh. Root faces
// are handles 0..N-1, matching the root triangle/patch numbering; handles
// produced by Subdivide4 are never reused.
type FaceHandle uint32

// TriangleSource is the triangle accelerator collaborator: the scene's flat
// list of input triangles plus per-triangle material channels.
type TriangleSource interface {
	NumTriangles() int
	Triangle(i int) geom.Triangle
}

// VisibilityOracle is the ray-triangle accelerator's visibility surface,
// used by geom.FormFactor to discount occluded samples. ignore names the
// two faces the query originates from/targets so the oracle does not
// report a patch as self-occluding against its own root triangle.
type VisibilityOracle interface {
	Occluded(a, b geom.Vec3, ignore [2]FaceHandle) bool
}

// Vec3 aliases geom.Vec3 so callers implementing VisibilityOracle don't need
// to import the types package directly.
type Vec3 = geom.Vec3

// MeshRefiner performs the half-edge mesh's four-way midpoint subdivision
// of a face and exposes the three corner vertices of any face it manages.
// Child ordering must be stable across runs.
type MeshRefiner interface {
	Subdivide4(face FaceHandle) [4]FaceHandle
	Corners(face FaceHandle) [3]geom.Vec3
}

// Package subdiv provides the default mesh.MeshRefiner implementation: a
// half-edge mesh that performs the four-way midpoint subdivision the
// radiosity quadtree relies on. Vertex/face naming follows the usual
// half-edge vocabulary, simplified to what a triangle-only, welding-free
// mesh needs: each subdivision only ever touches one root triangle's own
// face tree, so there is no cross-triangle adjacency to maintain.
package subdiv

import (
	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/mesh"
)

type vertexID int32

// face is one triangular half-edge face: the three corner vertex ids, in
// winding order.
type face struct {
	corners [3]vertexID
}

// Mesh is a half-edge mesh over triangular faces that supports only the
// two operations the radiosity core's mesh refiner contract needs:
// midpoint subdivision and corner lookup. It owns every vertex and face it
// creates; handles are never reused or invalidated.
type Mesh struct {
	vertices []geom.Vec3
	faces    []face
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddRootFace registers a root triangle as a face with its own, unshared
// corner vertices and returns its handle. Root faces must be added in
// root-triangle-id order so that the returned handle equals that id.
func (m *Mesh) AddRootFace(t geom.Triangle) mesh.FaceHandle {
	corners := [3]vertexID{
		m.addVertex(t.Vertices[0]),
		m.addVertex(t.Vertices[1]),
		m.addVertex(t.Vertices[2]),
	}
	return m.addFace(corners)
}

func (m *Mesh) addVertex(p geom.Vec3) vertexID {
	id := vertexID(len(m.vertices))
	m.vertices = append(m.vertices, p)
	return id
}

func (m *Mesh) addFace(corners [3]vertexID) mesh.FaceHandle {
	id := mesh.FaceHandle(len(m.faces))
	m.faces = append(m.faces, face{corners: corners})
	return id
}

// Corners implements mesh.MeshRefiner.
func (m *Mesh) Corners(f mesh.FaceHandle) [3]geom.Vec3 {
	c := m.faces[f].corners
	return [3]geom.Vec3{m.vertices[c[0]], m.vertices[c[1]], m.vertices[c[2]]}
}

// Subdivide4 implements mesh.MeshRefiner: it introduces three new
// midpoint vertices (one per edge) and four new faces that tile the parent
// exactly. Ordering is fixed and stable across runs: the three corner
// children around v0, v1, v2 in that order, then the center child. This is
// the same ordering geom.Triangle.Subdivide4 uses, so the two subdivision
// halves (mesh topology and pure-geometry triangle) never disagree.
func (m *Mesh) Subdivide4(f mesh.FaceHandle) [4]mesh.FaceHandle {
	c := m.faces[f].corners
	v0, v1, v2 := c[0], c[1], c[2]

	m01 := m.addVertex(midpoint(m.vertices[v0], m.vertices[v1]))
	m12 := m.addVertex(midpoint(m.vertices[v1], m.vertices[v2]))
	m20 := m.addVertex(midpoint(m.vertices[v2], m.vertices[v0]))

	return [4]mesh.FaceHandle{
		m.addFace([3]vertexID{v0, m01, m20}),
		m.addFace([3]vertexID{m01, v1, m12}),
		m.addFace([3]vertexID{m20, m12, v2}),
		m.addFace([3]vertexID{m01, m12, m20}),
	}
}

func midpoint(a, b geom.Vec3) geom.Vec3 {
	return a.Add(b).Mul(0.5)
}

// NumFaces reports the total number of faces created so far, including
// subdivided ones. Exposed for tests.
func (m *Mesh) NumFaces() int { return len(m.faces) }

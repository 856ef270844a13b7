package radiosity

import (
	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/mesh"
)

// Mesh returns the (possibly subdivided) mesh refiner backing this forest.
func (s *Solver) Mesh() mesh.MeshRefiner { return s.refiner }

// Triangles returns every leaf patch's geometry in depth-first order.
// Repeated calls against the same solved instance return identical
// sequences.
func (s *Solver) Triangles() []geom.Triangle {
	ids := s.leafIDs()
	out := make([]geom.Triangle, len(ids))
	for i, id := range ids {
		out[i] = s.triangleOf(id)
	}
	return out
}

// Radiosity returns each leaf's current shooting radiosity, in the same
// DFS order as Triangles.
func (s *Solver) Radiosity() []geom.Color {
	ids := s.leafIDs()
	out := make([]geom.Color, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id].radShoot
	}
	return out
}

// TriangleIndex maps a leaf's patch id (its nodeID) to its position in the
// Triangles()/Radiosity() DFS order.
func (s *Solver) TriangleIndex() map[uint32]int {
	ids := s.leafIDs()
	index := make(map[uint32]int, len(ids))
	for i, id := range ids {
		index[uint32(id)] = i
	}
	return index
}

// RadiosityAtVertices expands each leaf's radiosity to its three corners:
// flat per-triangle shading, duplicated without any vertex-adjacency
// smoothing. Smoothing across shared corners is left entirely to the
// caller.
func (s *Solver) RadiosityAtVertices(rad []geom.Color) []geom.Color {
	out := make([]geom.Color, 0, len(rad)*3)
	for _, c := range rad {
		out = append(out, c, c, c)
	}
	return out
}

// Stats reports solve-loop statistics collected during Compute, rendered
// by the CLI as a table.
type Stats struct {
	Sweeps          int
	RefinementPasses int
	LeafCount       int
	TotalPower      geom.Color
}

// Stats returns a snapshot of the statistics gathered by the most recent
// Compute call.
func (s *Solver) Stats() Stats {
	st := s.stats
	st.LeafCount = 0
	st.TotalPower = geom.Black
	s.walkLeaves(func(id nodeID) {
		st.LeafCount++
		tri := s.triangleOf(id)
		st.TotalPower = st.TotalPower.Add(s.nodes[id].radShoot.Mul(tri.Area))
	})
	return st
}

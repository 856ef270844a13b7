package radiosity

import (
	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/mesh"
)

// visibilityFor adapts the Solver's shared mesh.VisibilityOracle into the
// narrower geom.Visibility interface FormFactor expects, binding in the two
// root triangles that must never occlude themselves.
type visibilityFor struct {
	oracle mesh.VisibilityOracle
	ignore [2]mesh.FaceHandle
}

func (v visibilityFor) Occluded(a, b geom.Vec3) bool {
	return v.oracle.Occluded(a, b, v.ignore)
}

// accurateFormFactor computes F_pq with the full, visibility-checked
// integrator, clamping into [0, 1) and logging a warning the first time a
// clamp fires rather than asserting.
func (s *Solver) accurateFormFactor(p, q nodeID) float32 {
	triP := s.triangleOf(p)
	triQ := s.triangleOf(q)

	vis := visibilityFor{oracle: s.oracle, ignore: [2]mesh.FaceHandle{mesh.FaceHandle(s.nodes[p].rootTriID), mesh.FaceHandle(s.nodes[q].rootTriID)}}
	f := geom.FormFactor(triP, triQ, vis)

	if f >= 1 {
		if !s.clampedWarned {
			s.logger.Warningf("form factor %.4f >= 1 between nodes %d and %d; clamping", f, p, q)
			s.clampedWarned = true
		}
		f = 1 - floatEpsilon
	}
	return f
}

// installLink appends a gather-link p -> q (p gathers from q) to p's link
// list, carrying the accurate form factor. A given (p, q) pair appears at
// most once in p's list; callers are responsible for not calling
// installLink twice for the same pair (refine visits each pair of its
// decomposition once, and refineLinks installs only links to or from the
// children returned by subdivide, after dropping the coarser link).
func (s *Solver) installLink(p, q nodeID) {
	f := s.accurateFormFactor(p, q)
	s.nodes[p].links = append(s.nodes[p].links, link{shooter: q, formFactor: f})
}

const floatEpsilon = 1e-6

package radiosity

import "github.com/turner-renderer/renderer/geom"

// refineLinks re-examines every link in the forest in post-order (children
// before parent) and replaces any link whose carried energy exceeds BF_eps
// with links on finer children; a link whose chosen side cannot be
// subdivided (area floor) is kept. It returns true if at least one link was
// replaced.
func (s *Solver) refineLinks() bool {
	refined := false
	total := len(s.roots)
	for i, root := range s.roots {
		if s.refineLinksAt(root) {
			refined = true
		}
		s.progress.Report("refining links", i+1, total)
	}
	return refined
}

// refineLinksAt processes node id's subtree post-order and then id's own
// link list, returning whether anything was refined.
func (s *Solver) refineLinksAt(id nodeID) bool {
	refined := false

	if !s.nodes[id].isLeaf() {
		for _, c := range s.nodes[id].children {
			if s.refineLinksAt(c) {
				refined = true
			}
		}
	}

	// Post-order link processing: only indices below the list size
	// captured at entry are candidates for removal in this pass. Links
	// appended during this pass (by a successful subdivision below) are
	// examined on the next outer solve/refine-links iteration instead.
	links := s.nodes[id].links
	highWater := len(links)
	i := 0
	for i < highWater {
		if s.refineLink(id, i) {
			links = s.nodes[id].links
			links = append(links[:i], links[i+1:]...)
			s.nodes[id].links = links
			highWater--
			refined = true
			continue
		}
		i++
	}

	return refined
}

// refineLink examines the link at index i of node p's link list and, if its
// oracle exceeds BF_eps, replaces it with finer links. It returns true if
// the link at index i was removed (and finer links installed in its
// place).
func (s *Solver) refineLink(p nodeID, i int) bool {
	l := s.nodes[p].links[i]
	q := l.shooter

	triP := s.triangleOf(p)
	triQ := s.triangleOf(q)

	oracle := s.nodes[q].radShoot.Mul(triQ.Area * l.formFactor)
	if !geom.ExceedsAny(oracle, s.opts.BFEps) {
		return false
	}

	fPQ := l.formFactor
	fQP := fPQ * triP.Area / triQ.Area

	if fPQ < fQP {
		if children, ok := s.subdivide(p); ok {
			for _, child := range children {
				s.installLink(child, q)
			}
			return true
		}
	} else {
		if children, ok := s.subdivide(q); ok {
			for _, child := range children {
				s.installLink(p, child)
			}
			return true
		}
	}

	return false
}

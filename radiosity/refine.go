package radiosity

import "github.com/turner-renderer/renderer/geom"

type pair struct{ p, q nodeID }

// refine decides, for two quadnodes drawn from different root triangles,
// whether to install a link between them or recurse into one side's
// children. It uses an explicit stack rather than the call stack, since
// refinement depth can exceed what's safe to recurse over on large scenes.
func (s *Solver) refine(p, q nodeID) {
	stack := []pair{{p, q}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p, q := top.p, top.q

		triP := s.triangleOf(p)
		triQ := s.triangleOf(q)

		fPQ := geom.EstimateFormFactor(triP, triQ)
		fQP := geom.EstimateFormFactor(triQ, triP)

		if fPQ < s.opts.FEps && fQP < s.opts.FEps {
			s.installLink(p, q)
			continue
		}

		// Subdivide the larger contributor's peer: strict < on the
		// first branch, <= on the second, so an exact tie subdivides
		// the receiver.
		if fQP < fPQ {
			if children, ok := s.subdivide(q); ok {
				for _, child := range children {
					stack = append(stack, pair{p, child})
				}
				continue
			}
		} else {
			if children, ok := s.subdivide(p); ok {
				for _, child := range children {
					stack = append(stack, pair{child, q})
				}
				continue
			}
		}

		// Subdivision failed (area floor): install at current
		// resolution.
		s.installLink(p, q)
	}
}

// refineAll performs the initial pairwise refinement pass over every pair
// of roots drawn from different triangles, reporting progress exactly like
// the original solve's "Refine Nodes" phase.
func (s *Solver) refineAll() {
	total := len(s.roots)
	for i, p := range s.roots {
		for _, q := range s.roots {
			if s.nodes[p].rootTriID == s.nodes[q].rootTriID {
				continue
			}
			s.refine(p, q)
		}
		s.progress.Report("refine nodes", i+1, total)
	}
}

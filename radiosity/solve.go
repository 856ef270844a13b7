package radiosity

import "github.com/turner-renderer/renderer/geom"

// gather computes rad_gather for every node of the tree rooted at root,
// internal nodes included. Links exist at mixed levels, not only on
// leaves, so every node must gather.
func (s *Solver) gather(root nodeID) {
	stack := []nodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &s.nodes[id]
		sum := geom.Black
		for _, l := range n.links {
			contribution := s.nodes[l.shooter].radShoot
			sum = sum.Add(contribution.Mul(l.formFactor))
		}
		n.radGather = n.diffuse.MulVec(sum)

		if n.isLeaf() {
			continue
		}
		for _, c := range n.children {
			stack = append(stack, c)
		}
	}
}

// pushPull implements the recursive push-pull traversal: a leaf absorbs
// emission, its gathered radiosity, and whatever an ancestor pushed down.
// An internal node passes its own gather plus the inherited radDown to
// every child and becomes the unweighted average of their returned
// shooting radiosity (unweighted is correct since full subdivision makes
// every child equal-area). Recursion depth is bounded by log4(area0/AEps),
// so this stays recursive rather than moving to an explicit accumulator.
func (s *Solver) pushPull(id nodeID, radDown geom.Color) geom.Color {
	n := &s.nodes[id]
	if n.isLeaf() {
		n.radShoot = n.emissive.Add(n.radGather).Add(radDown)
		return n.radShoot
	}

	down := n.radGather.Add(radDown)
	children := n.children
	sum := geom.Black
	for _, c := range children {
		sum = sum.Add(s.pushPull(c, down))
	}

	n = &s.nodes[id]
	n.radShoot = sum.Mul(0.25)
	return n.radShoot
}

// solveSystem runs up to MaxIterations gather/push-pull sweeps over every
// root, stopping early if Delta is set and the maximum per-leaf change in
// shooting radiosity drops below it.
func (s *Solver) solveSystem() {
	for i := 0; i < s.opts.MaxIterations; i++ {
		var maxDelta float32
		trackDelta := s.opts.Delta > 0

		var before map[nodeID]geom.Color
		if trackDelta {
			before = s.snapshotLeafShoot()
		}

		for _, root := range s.roots {
			s.gather(root)
		}
		for _, root := range s.roots {
			s.pushPull(root, geom.Black)
		}

		s.progress.Report("solving system", i+1, s.opts.MaxIterations)
		s.stats.Sweeps++

		if trackDelta {
			maxDelta = s.maxLeafShootDelta(before)
			if maxDelta < s.opts.Delta {
				break
			}
		}
	}
}

func (s *Solver) snapshotLeafShoot() map[nodeID]geom.Color {
	out := make(map[nodeID]geom.Color)
	s.walkLeaves(func(id nodeID) {
		out[id] = s.nodes[id].radShoot
	})
	return out
}

func (s *Solver) maxLeafShootDelta(before map[nodeID]geom.Color) float32 {
	var maxDelta float32
	s.walkLeaves(func(id nodeID) {
		prev, ok := before[id]
		if !ok {
			maxDelta = s.opts.Delta // newly created leaf: force another sweep
			return
		}
		d := s.nodes[id].radShoot.Sub(prev)
		abs := geom.RGB(absF(d[0]), absF(d[1]), absF(d[2]))
		if m := abs.MaxChannel(); m > maxDelta {
			maxDelta = m
		}
	})
	return maxDelta
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

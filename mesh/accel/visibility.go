package accel

import (
	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/mesh"
)

// Occluded implements mesh.VisibilityOracle: it reports whether the segment
// between a and b is blocked by any triangle in the accelerator other than
// the two the query names in ignore (a link's own receiver/shooter root
// triangles must never occlude themselves).
func (b *BVH) Occluded(a, c geom.Vec3, ignore [2]mesh.FaceHandle) bool {
	if len(b.nodes) == 0 {
		return false
	}

	delta := c.Sub(a)
	maxT := delta.Len()
	if maxT < 1e-9 {
		return false
	}
	dir := delta.Mul(1.0 / maxT)

	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := b.nodes[idx]
		if !segmentIntersectsBox(a, dir, maxT, n.min, n.max) {
			continue
		}

		if n.isLeaf() {
			for i := n.start; i < n.start+n.count; i++ {
				triIdx := b.primIndex[i]
				if mesh.FaceHandle(triIdx) == ignore[0] || mesh.FaceHandle(triIdx) == ignore[1] {
					continue
				}
				if segmentHitsTriangle(a, dir, maxT, b.triangles[triIdx]) {
					return true
				}
			}
			continue
		}

		stack = append(stack, n.left, n.right)
	}

	return false
}

// segmentIntersectsBox is a slab test against the segment's parametric
// range [0, maxT], used to prune BVH subtrees during the occlusion walk.
func segmentIntersectsBox(origin, dir geom.Vec3, maxT float32, min, max geom.Vec3) bool {
	tMin, tMax := float32(0), maxT
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < min[axis] || origin[axis] > max[axis] {
				return false
			}
			continue
		}
		inv := 1.0 / dir[axis]
		t0 := (min[axis] - origin[axis]) * inv
		t1 := (max[axis] - origin[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

// segmentHitsTriangle tests the segment origin+[0,maxT]*dir against t using
// the triangle's plane followed by three edge-side tests, run in pure Go
// since the visibility oracle runs on the CPU solver thread.
func segmentHitsTriangle(origin, dir geom.Vec3, maxT float32, t geom.Triangle) bool {
	denom := t.Normal.Dot(dir)
	if denom > -1e-9 && denom < 1e-9 {
		return false
	}

	d := t.Normal.Dot(t.Vertices[0])
	tHit := (d - t.Normal.Dot(origin)) / denom
	if tHit < 1e-4 || tHit > maxT-1e-4 {
		return false
	}

	p := origin.Add(dir.Mul(tHit))

	e0 := t.Vertices[1].Sub(t.Vertices[0])
	e1 := t.Vertices[2].Sub(t.Vertices[1])
	e2 := t.Vertices[0].Sub(t.Vertices[2])

	c0 := e0.Cross(p.Sub(t.Vertices[0])).Dot(t.Normal)
	c1 := e1.Cross(p.Sub(t.Vertices[1])).Dot(t.Normal)
	c2 := e2.Cross(p.Sub(t.Vertices[2])).Dot(t.Normal)

	return (c0 >= 0 && c1 >= 0 && c2 >= 0) || (c0 <= 0 && c1 <= 0 && c2 <= 0)
}

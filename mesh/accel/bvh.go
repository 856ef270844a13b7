// Package accel provides the default mesh.VisibilityOracle /
// mesh.TriangleSource implementation: a surface-area-heuristic BVH over the
// scene's triangles with a segment/triangle intersection test used to
// answer occlusion queries for the geometry kernel's form factor
// integration.
//
// Partition candidates are scored in parallel goroutines per depth level
// using the usual surface-area-heuristic formula, and a leaf is forced
// once a work list shrinks to minLeafItems or fewer. The node encoding and the
// intersection test are plain: there is no GPU upload buffer to pack
// indices into, since this is a CPU-only occlusion oracle.
package accel

import (
	"math"
	"time"

	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/log"
	"github.com/turner-renderer/renderer/types"
)

const (
	minLeafItems  = 4
	minSideLength = 1e-3
	minSplitStep  = 1e-5
)

// node is a plain (unpacked) BVH node: either an interior node with two
// children, or a leaf referencing a contiguous run of primIndex entries.
type node struct {
	min, max geom.Vec3

	left, right int32 // child node indices; -1 if this is a leaf
	start, count int32 // primIndex[start:start+count] for leaves
}

func (n node) isLeaf() bool { return n.left < 0 }

// BVH is a static bounding volume hierarchy over a fixed triangle list,
// usable both as a mesh.TriangleSource and a mesh.VisibilityOracle.
type BVH struct {
	triangles []geom.Triangle
	nodes     []node
	primIndex []int32
	logger    log.Logger
}

// Build partitions triangles into a BVH. The input slice is retained (not
// copied) and indexed by mesh.FaceHandle for root faces 0..len(triangles)-1.
func Build(triangles []geom.Triangle) *BVH {
	b := &BVH{
		triangles: triangles,
		logger:    log.New("accel"),
	}

	primIndex := make([]int32, len(triangles))
	for i := range primIndex {
		primIndex[i] = int32(i)
	}

	start := time.Now()
	b.partition(primIndex)
	b.logger.Debugf("built BVH over %d triangles (%d nodes) in %d ms",
		len(triangles), len(b.nodes), time.Since(start).Nanoseconds()/1e6)

	return b
}

// NumTriangles implements mesh.TriangleSource.
func (b *BVH) NumTriangles() int { return len(b.triangles) }

// Triangle implements mesh.TriangleSource.
func (b *BVH) Triangle(i int) geom.Triangle { return b.triangles[i] }

func bboxOf(t geom.Triangle) (min, max geom.Vec3) { return t.BBox() }

func centerOf(t geom.Triangle) geom.Vec3 {
	min, max := t.BBox()
	return min.Add(max).Mul(0.5)
}

type splitScore struct {
	axis                  int
	splitPoint            float32
	leftCount, rightCount int32
	score                 float32
}

// partition recursively builds the tree over the triangle indices in
// primIndex (leaves copy their run into b.primIndex) and returns the node
// index.
func (b *BVH) partition(primIndex []int32) int32 {
	n := node{
		min: geom.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		max: geom.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, idx := range primIndex {
		min, max := bboxOf(b.triangles[idx])
		n.min = types.MinVec3(n.min, min)
		n.max = types.MaxVec3(n.max, max)
	}

	if len(primIndex) <= minLeafItems {
		return b.createLeaf(n, primIndex)
	}

	side := n.max.Sub(n.min)
	bestScore := scorePartition(b.triangles, primIndex)
	var best *splitScore

	scoreChan := make(chan splitScore)
	pending := 0
	for axis := 0; axis < 3; axis++ {
		if side[axis] < minSideLength {
			continue
		}
		splitStep := side[axis] / 1024.0
		if splitStep < minSplitStep {
			continue
		}
		for splitPoint := n.min[axis]; splitPoint < n.max[axis]; splitPoint += splitStep {
			pending++
			go func(axis int, splitPoint float32) {
				l, r, score := scoreSplit(b.triangles, primIndex, axis, splitPoint)
				scoreChan <- splitScore{axis, splitPoint, l, r, score}
			}(axis, splitPoint)
		}
	}
	for ; pending > 0; pending-- {
		cand := <-scoreChan
		if cand.score < bestScore {
			bestScore = cand.score
			c := cand
			best = &c
		}
	}

	if best == nil {
		return b.createLeaf(n, primIndex)
	}

	left := make([]int32, 0, best.leftCount)
	right := make([]int32, 0, best.rightCount)
	for _, idx := range primIndex {
		if centerOf(b.triangles[idx])[best.axis] < best.splitPoint {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, n)

	leftIdx := b.partition(left)
	rightIdx := b.partition(right)
	b.nodes[nodeIndex].left = leftIdx
	b.nodes[nodeIndex].right = rightIdx

	return nodeIndex
}

func (b *BVH) createLeaf(n node, primIndex []int32) int32 {
	n.left = -1
	n.start = int32(len(b.primIndex))
	n.count = int32(len(primIndex))
	b.primIndex = append(b.primIndex, primIndex...)

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return nodeIndex
}

func scorePartition(tris []geom.Triangle, primIndex []int32) float32 {
	if len(primIndex) == 0 {
		return math.MaxFloat32
	}
	min := geom.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := geom.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, idx := range primIndex {
		tmin, tmax := bboxOf(tris[idx])
		min = types.MinVec3(min, tmin)
		max = types.MaxVec3(max, tmax)
	}
	side := max.Sub(min)
	return float32(len(primIndex)) * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

func scoreSplit(tris []geom.Triangle, primIndex []int32, axis int, splitPoint float32) (leftCount, rightCount int32, score float32) {
	lmin := geom.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	rmin := geom.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	lmax := geom.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	rmax := geom.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	for _, idx := range primIndex {
		tri := tris[idx]
		center := centerOf(tri)
		tmin, tmax := bboxOf(tri)
		if center[axis] < splitPoint {
			leftCount++
			lmin = types.MinVec3(lmin, tmin)
			lmax = types.MaxVec3(lmax, tmax)
		} else {
			rightCount++
			rmin = types.MinVec3(rmin, tmin)
			rmax = types.MaxVec3(rmax, tmax)
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return leftCount, rightCount, math.MaxFloat32
	}

	lside := lmax.Sub(lmin)
	rside := rmax.Sub(rmin)
	score = float32(leftCount)*(lside[0]*lside[1]+lside[1]*lside[2]+lside[0]*lside[2]) +
		float32(rightCount)*(rside[0]*rside[1]+rside[1]*rside[2]+rside[0]*rside[2])
	return leftCount, rightCount, score
}

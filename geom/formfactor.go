package geom

import (
	"github.com/chewxy/math32"

	"github.com/turner-renderer/renderer/types"
)

// Visibility is the minimal visibility collaborator the geometry kernel
// needs from the ray-triangle accelerator named in the external interfaces:
// it only has to answer "is the straight segment between these two points
// blocked by something else in the scene". mesh/accel.BVH (and any adapter
// wrapping it to ignore the two endpoints' own faces) satisfies it.
type Visibility interface {
	Occluded(a, b types.Vec3) bool
}

// samplePoints are fixed barycentric offsets used to integrate the form
// factor over a patch without committing to a particular random source;
// this keeps FormFactor deterministic and keeps the reciprocity property
// testable exactly rather than only statistically. Every sample carries the
// same weight in the average.
var samplePoints = [5][3]float32{
	{1.0 / 3, 1.0 / 3, 1.0 / 3}, // centroid
	{0.6, 0.2, 0.2},
	{0.2, 0.6, 0.2},
	{0.2, 0.2, 0.6},
	{0.4, 0.3, 0.3},
}

func pointAt(t Triangle, bary [3]float32) types.Vec3 {
	return t.Vertices[0].Mul(bary[0]).
		Add(t.Vertices[1].Mul(bary[1])).
		Add(t.Vertices[2].Mul(bary[2]))
}

// EstimateFormFactor is the cheap, visibility-free upper bound used only to
// drive subdivision decisions. It must never yield NaN: cosθ<=0 collapses
// to a hard 0 before the solid angle is ever evaluated.
func EstimateFormFactor(p, q Triangle) float32 {
	mp, mq := p.Midpoint(), q.Midpoint()
	dir := mq.Sub(mp).Normalize()
	cosTheta := p.Normal.Dot(dir)
	if cosTheta <= 0 {
		return 0
	}
	omega := SolidAngle(mp, q)
	factor := cosTheta * omega / math32.Pi
	if factor < 0 {
		return 0
	}
	return factor
}

// FormFactor computes the accurate, visibility-checked form factor F_pq
// used when a link is actually installed. It averages the point-to-point
// radiative kernel cosθp·cosθq/(π·r²) over a handful of sample pairs on p
// and q, gated by the visibility oracle, and scales by area(q). F_pq is
// always >= 0; F_pq·area(p) ≈ F_qp·area(q) within sampling tolerance
// (exact to floating point when FormFactor(q, p) is evaluated against the
// same sample pairing); a fully occluded pair yields 0.
func FormFactor(p, q Triangle, vis Visibility) float32 {
	if p.Area <= 0 || q.Area <= 0 {
		return 0
	}

	var kernelSum float32
	for _, bary := range samplePoints {
		xp := pointAt(p, bary)
		xq := pointAt(q, bary)

		r := xq.Sub(xp)
		r2 := r.Dot(r)
		if r2 < floatEpsilon {
			continue
		}
		dir := r.Mul(1.0 / math32.Sqrt(r2))

		cosP := p.Normal.Dot(dir)
		cosQ := q.Normal.Dot(dir.Mul(-1))
		if cosP <= 0 || cosQ <= 0 {
			continue
		}
		if vis != nil && vis.Occluded(xp, xq) {
			continue
		}

		kernelSum += cosP * cosQ / (math32.Pi * r2)
	}

	f := q.Area * kernelSum / float32(len(samplePoints))
	if f < 0 {
		return 0
	}
	return f
}

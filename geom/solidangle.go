package geom

import (
	"github.com/chewxy/math32"

	"github.com/turner-renderer/renderer/types"
)

// SolidAngle returns the solid angle subtended by triangle t as seen from
// point x, using the Van Oosterom & Strackee closed form (the spherical
// excess formula driven off the unit vectors from x to each corner). The
// result lies in [0, 2π]. If x lies in the plane of t the projection is
// degenerate and SolidAngle returns 0, per the geometry kernel contract.
func SolidAngle(x types.Vec3, t Triangle) float32 {
	a := t.Vertices[0].Sub(x)
	b := t.Vertices[1].Sub(x)
	c := t.Vertices[2].Sub(x)

	la, lb, lc := a.Len(), b.Len(), c.Len()
	if la < floatEpsilon || lb < floatEpsilon || lc < floatEpsilon {
		return 0
	}

	numerator := math32.Abs(a.Dot(b.Cross(c)))
	denominator := la*lb*lc + a.Dot(b)*lc + a.Dot(c)*lb + b.Dot(c)*la

	if numerator < floatEpsilon {
		// x lies in (or extremely close to) the plane of t.
		return 0
	}

	omega := 2 * math32.Atan2(numerator, denominator)
	if omega < 0 {
		omega += 2 * math32.Pi
	}
	return omega
}

const floatEpsilon float32 = 1e-7

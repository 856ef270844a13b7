package geom

import "github.com/turner-renderer/renderer/types"

// Color is a three channel (RGB) radiometric quantity: radiosity, emission,
// or reflectance, depending on context. It carries no alpha channel; callers
// that need one (e.g. image export) add it at the export boundary.
type Color = types.Vec3

// Black is the zero-energy color.
var Black = Color{0, 0, 0}

// RGB builds a color from its channels.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// ExceedsAny reports whether any channel of c is strictly greater than
// threshold. Used by the link-refinement oracle test against BF_eps.
func ExceedsAny(c Color, threshold float32) bool {
	return c[0] > threshold || c[1] > threshold || c[2] > threshold
}

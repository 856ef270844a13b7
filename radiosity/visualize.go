package radiosity

import (
	"image"
	"image/color"

	"github.com/thomaso-mirodin/intmath/intgr"

	"github.com/turner-renderer/renderer/geom"
)

// Camera is the narrow projection collaborator VisualizeLinks needs.
// Camera/raster projection is left to the caller; this interface is the
// whole surface the solver asks of it.
type Camera interface {
	Project(p geom.Vec3) (x, y int, visible bool)
}

// VisualizeLinks overlays a line segment between the midpoints of every
// linked patch pair onto img, using an integer Bresenham rasterizer: a
// single DFS over every root's subtree, drawing one line per link found
// along the way.
func (s *Solver) VisualizeLinks(cam Camera, img *image.RGBA, lineColor color.Color) {
	var stack []nodeID
	for _, root := range s.roots {
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := &s.nodes[id]
			if len(n.links) > 0 {
				toX, toY, toVisible := cam.Project(s.triangleOf(id).Midpoint())
				if toVisible {
					for _, l := range n.links {
						fromX, fromY, fromVisible := cam.Project(s.triangleOf(l.shooter).Midpoint())
						if fromVisible {
							bresenham(img, fromX, fromY, toX, toY, lineColor)
						}
					}
				}
			}

			if n.isLeaf() {
				continue
			}
			stack = append(stack, n.children[:]...)
		}
	}
}

// bresenham draws a line from (x0,y0) to (x1,y1) onto img, clipping any
// point that falls outside its bounds.
func bresenham(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := intgr.Abs(x1 - x0)
	dy := intgr.Abs(y1 - y0)

	sx := 1
	if x1 < x0 {
		sx = -1
	}
	sy := 1
	if y1 < y0 {
		sy = -1
	}

	err := dx - dy
	x, y := x0, y0
	bounds := img.Bounds()
	for {
		if image.Pt(x, y).In(bounds) {
			img.Set(x, y, c)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

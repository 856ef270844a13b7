package geom

import (
	"testing"

	"github.com/turner-renderer/renderer/types"
)

func unitSquareHalf() Triangle {
	return NewTriangle(
		types.XYZ(0, 0, 0),
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
		RGB(0.5, 0.5, 0.5),
		Black,
	)
}

func TestNewTriangleArea(t *testing.T) {
	tri := unitSquareHalf()
	if tri.Area < 0.499 || tri.Area > 0.501 {
		t.Fatalf("expected area ~0.5, got %f", tri.Area)
	}
}

func TestSubdivide4ConservesArea(t *testing.T) {
	tri := unitSquareHalf()
	children := tri.Subdivide4()

	var sum float32
	for _, c := range children {
		sum += c.Area
	}
	if diff := sum - tri.Area; diff > 1e-5 || diff < -1e-5 {
		t.Fatalf("expected children's area to sum to parent area %f, got %f", tri.Area, sum)
	}
	for _, c := range children {
		if diff := c.Area - tri.Area/4; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("expected each child to have a quarter of the parent area, got %f want %f", c.Area, tri.Area/4)
		}
	}
}

func TestSubdivide4InheritsMaterial(t *testing.T) {
	tri := unitSquareHalf()
	for _, c := range tri.Subdivide4() {
		if c.Diffuse != tri.Diffuse || c.Emissive != tri.Emissive {
			t.Fatalf("expected child to inherit parent material, got diffuse %v emissive %v", c.Diffuse, c.Emissive)
		}
	}
}

func TestMidpoint(t *testing.T) {
	tri := unitSquareHalf()
	m := tri.Midpoint()
	want := types.XYZ(1.0/3, 1.0/3, 0)
	if m.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected midpoint %v, got %v", want, m)
	}
}

func TestBBox(t *testing.T) {
	tri := NewTriangle(types.XYZ(-1, 0, 2), types.XYZ(3, -2, 2), types.XYZ(0, 4, -1), Black, Black)
	min, max := tri.BBox()
	wantMin := types.XYZ(-1, -2, -1)
	wantMax := types.XYZ(3, 4, 2)
	if min != wantMin {
		t.Fatalf("expected min %v, got %v", wantMin, min)
	}
	if max != wantMax {
		t.Fatalf("expected max %v, got %v", wantMax, max)
	}
}

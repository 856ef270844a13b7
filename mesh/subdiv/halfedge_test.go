package subdiv

import (
	"testing"

	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/types"
)

func TestAddRootFaceHandlesMatchInsertionOrder(t *testing.T) {
	m := New()
	tris := []geom.Triangle{
		geom.NewTriangle(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), geom.Black, geom.Black),
		geom.NewTriangle(types.XYZ(2, 0, 0), types.XYZ(3, 0, 0), types.XYZ(2, 1, 0), geom.Black, geom.Black),
	}

	for i, tri := range tris {
		if got := m.AddRootFace(tri); int(got) != i {
			t.Fatalf("expected root face %d to get handle %d, got %d", i, i, got)
		}
	}
}

func TestCornersRoundTrip(t *testing.T) {
	m := New()
	v0, v1, v2 := types.XYZ(0, 0, 0), types.XYZ(4, 0, 0), types.XYZ(0, 4, 0)
	tri := geom.NewTriangle(v0, v1, v2, geom.Black, geom.Black)
	f := m.AddRootFace(tri)

	corners := m.Corners(f)
	if corners[0] != v0 || corners[1] != v1 || corners[2] != v2 {
		t.Fatalf("expected corners %v %v %v, got %v", v0, v1, v2, corners)
	}
}

func TestSubdivide4MatchesTriangleGeometry(t *testing.T) {
	m := New()
	v0, v1, v2 := types.XYZ(0, 0, 0), types.XYZ(4, 0, 0), types.XYZ(0, 4, 0)
	tri := geom.NewTriangle(v0, v1, v2, geom.Black, geom.Black)
	f := m.AddRootFace(tri)

	children := m.Subdivide4(f)
	if len(children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(children))
	}

	expected := tri.Subdivide4()
	for i, child := range children {
		corners := m.Corners(child)
		for j, want := range expected[i].Vertices {
			if corners[j].Sub(want).Len() > 1e-5 {
				t.Fatalf("child %d corner %d: expected %v, got %v", i, j, want, corners[j])
			}
		}
	}
}

func TestSubdivide4ProducesFreshFaceHandles(t *testing.T) {
	m := New()
	tri := geom.NewTriangle(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), geom.Black, geom.Black)
	f := m.AddRootFace(tri)

	seen := map[int]bool{int(f): true}
	for _, child := range m.Subdivide4(f) {
		if seen[int(child)] {
			t.Fatalf("expected unique face handle, got duplicate %d", child)
		}
		seen[int(child)] = true
	}
}

func TestNumFacesGrowsWithSubdivision(t *testing.T) {
	m := New()
	tri := geom.NewTriangle(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), geom.Black, geom.Black)
	f := m.AddRootFace(tri)
	if m.NumFaces() != 1 {
		t.Fatalf("expected 1 face after adding root face, got %d", m.NumFaces())
	}
	m.Subdivide4(f)
	if m.NumFaces() != 5 {
		t.Fatalf("expected 5 faces after one subdivision, got %d", m.NumFaces())
	}
}

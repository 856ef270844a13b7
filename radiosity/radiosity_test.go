package radiosity

import (
	"testing"

	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/mesh/accel"
	"github.com/turner-renderer/renderer/mesh/subdiv"
	"github.com/turner-renderer/renderer/types"
)

func buildSolver(tris []geom.Triangle, opts Options) *Solver {
	bvh := accel.Build(tris)
	m := subdiv.New()
	for _, t := range tris {
		m.AddRootFace(t)
	}
	return New(bvh, m, bvh, opts, nil)
}

// rootLeafRadiosity returns the shooting radiosity of every leaf under the
// given root triangle, in DFS order.
func rootLeafRadiosity(s *Solver, root int) []geom.Color {
	var out []geom.Color
	for _, id := range s.leafIDs() {
		if s.nodes[id].rootTriID == uint32(root) {
			out = append(out, s.nodes[id].radShoot)
		}
	}
	return out
}

func TestComputeEmptyScene(t *testing.T) {
	s := buildSolver(nil, DefaultOptions())
	s.Compute()

	if len(s.Triangles()) != 0 {
		t.Fatalf("expected no triangles, got %d", len(s.Triangles()))
	}
	if len(s.Radiosity()) != 0 {
		t.Fatalf("expected no radiosity values, got %d", len(s.Radiosity()))
	}
}

func TestComputeSingleLitTriangleInstallsNoLinks(t *testing.T) {
	tri := geom.NewTriangle(
		types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0),
		geom.RGB(0.5, 0.5, 0.5), geom.RGB(1, 1, 1),
	)
	s := buildSolver([]geom.Triangle{tri}, DefaultOptions())
	s.Compute()

	rad := s.Radiosity()
	if len(rad) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(rad))
	}
	if rad[0] != geom.RGB(1, 1, 1) {
		t.Fatalf("expected the lone triangle's radiosity to stay at its emission (1,1,1), got %v", rad[0])
	}
	if len(s.nodes[s.roots[0]].links) != 0 {
		t.Fatalf("expected no links for a scene with a single root triangle")
	}
}

// facingUnitSquares builds two unit squares, each as two triangles, one unit
// apart along z: an emissive one at z=0 facing +z, and a diffuse receiver at
// z=1 facing -z (toward the emitter).
func facingUnitSquares() (emissive, receiver []geom.Triangle) {
	e1 := geom.NewTriangle(types.XYZ(-0.5, -0.5, 0), types.XYZ(0.5, -0.5, 0), types.XYZ(0.5, 0.5, 0), geom.Black, geom.RGB(1, 0, 0))
	e2 := geom.NewTriangle(types.XYZ(-0.5, -0.5, 0), types.XYZ(0.5, 0.5, 0), types.XYZ(-0.5, 0.5, 0), geom.Black, geom.RGB(1, 0, 0))

	r1 := geom.NewTriangle(types.XYZ(-0.5, 0.5, 1), types.XYZ(0.5, 0.5, 1), types.XYZ(0.5, -0.5, 1), geom.RGB(0.8, 0.8, 0.8), geom.Black)
	r2 := geom.NewTriangle(types.XYZ(-0.5, 0.5, 1), types.XYZ(0.5, -0.5, 1), types.XYZ(-0.5, -0.5, 1), geom.RGB(0.8, 0.8, 0.8), geom.Black)

	return []geom.Triangle{e1, e2}, []geom.Triangle{r1, r2}
}

func TestComputeFacingUnitSquaresReceivesBoundedRedChannel(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	tris := append(append([]geom.Triangle{}, emissive...), receiver...)

	opts := Options{FEps: 0.05, AEps: 0.01, BFEps: 0.01, MaxIterations: 10}
	s := buildSolver(tris, opts)
	s.Compute()

	for root := len(emissive); root < len(tris); root++ {
		for i, c := range rootLeafRadiosity(s, root) {
			// The closed-form form factor for unit parallel squares one unit
			// apart is close to 0.2, so the receiver (rho=0.8) should pick up
			// a noticeable but bounded fraction of the emitter's red channel.
			got := c[0]
			if got <= 0.02 || got >= 0.8 {
				t.Fatalf("root %d leaf %d: expected red channel strictly between 0.02 and 0.8, got %f", root, i, got)
			}
			if c[1] != 0 || c[2] != 0 {
				t.Fatalf("root %d leaf %d: expected green/blue channels to stay 0, got %v", root, i, c)
			}
		}
	}
}

func TestComputeOcclusionDropsReceivedRadiosity(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	occluder1 := geom.NewTriangle(types.XYZ(-1, -1, 0.5), types.XYZ(1, -1, 0.5), types.XYZ(1, 1, 0.5), geom.Black, geom.Black)
	occluder2 := geom.NewTriangle(types.XYZ(-1, -1, 0.5), types.XYZ(1, 1, 0.5), types.XYZ(-1, 1, 0.5), geom.Black, geom.Black)

	opts := Options{FEps: 0.05, AEps: 0.01, BFEps: 0.01, MaxIterations: 10}

	unoccluded := append(append([]geom.Triangle{}, emissive...), receiver...)
	sUnoccluded := buildSolver(unoccluded, opts)
	sUnoccluded.Compute()
	unoccludedRad := rootLeafRadiosity(sUnoccluded, len(emissive))[0][0]

	withOccluder := append(append([]geom.Triangle{}, unoccluded...), occluder1, occluder2)
	sOccluded := buildSolver(withOccluder, opts)
	sOccluded.Compute()
	occludedRad := rootLeafRadiosity(sOccluded, len(emissive))[0][0]

	if occludedRad > unoccludedRad*0.1 {
		t.Fatalf("expected occluded radiosity to be much smaller than unoccluded (%f vs %f)", occludedRad, unoccludedRad)
	}
}

func TestComputeDarkSceneStaysDark(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	for i := range emissive {
		emissive[i].Emissive = geom.Black
	}
	tris := append(append([]geom.Triangle{}, emissive...), receiver...)

	s := buildSolver(tris, Options{FEps: 0.05, AEps: 0.01, BFEps: 0.01, MaxIterations: 10})
	s.Compute()

	for i, c := range s.Radiosity() {
		if c != geom.Black {
			t.Fatalf("leaf %d: expected a dark scene to stay at 0 radiosity, got %v", i, c)
		}
	}
}

func TestComputeMonotoneReflectanceScalesLinearly(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	opts := Options{FEps: 0.05, AEps: 0.01, BFEps: 0.01, MaxIterations: 10}

	base := append(append([]geom.Triangle{}, emissive...), receiver...)
	sBase := buildSolver(base, opts)
	sBase.Compute()
	baseRad := rootLeafRadiosity(sBase, len(emissive))[0][0]

	doubled := make([]geom.Triangle, len(emissive))
	for i, t := range emissive {
		doubled[i] = t
		doubled[i].Emissive = t.Emissive.Mul(2)
	}
	scaled := append(append([]geom.Triangle{}, doubled...), receiver...)
	sScaled := buildSolver(scaled, opts)
	sScaled.Compute()
	scaledRad := rootLeafRadiosity(sScaled, len(emissive))[0][0]

	if diff := scaledRad - 2*baseRad; diff > baseRad*0.05 || diff < -baseRad*0.05 {
		t.Fatalf("expected doubling emission to double received radiosity (%f -> %f), got %f", baseRad, scaledRad, scaledRad)
	}
}

func TestComputeRadiosityIsNonNegative(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	tris := append(append([]geom.Triangle{}, emissive...), receiver...)
	s := buildSolver(tris, DefaultOptions())
	s.Compute()

	for i, c := range s.Radiosity() {
		if c[0] < 0 || c[1] < 0 || c[2] < 0 {
			t.Fatalf("leaf %d: expected non-negative radiosity, got %v", i, c)
		}
	}
}

func TestComputeRefinementProgressWithTighterBFEps(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	tris := append(append([]geom.Triangle{}, emissive...), receiver...)

	loose := buildSolver(tris, Options{FEps: 0.05, AEps: 0.001, BFEps: 0.01, MaxIterations: 10})
	loose.Compute()
	looseLeaves := loose.Stats().LeafCount

	emissive2, receiver2 := facingUnitSquares()
	tight := buildSolver(append(append([]geom.Triangle{}, emissive2...), receiver2...), Options{FEps: 0.05, AEps: 0.001, BFEps: 0.001, MaxIterations: 10})
	tight.Compute()
	tightLeaves := tight.Stats().LeafCount

	if tightLeaves <= looseLeaves {
		t.Fatalf("expected a tighter BF_eps to produce strictly more leaves (%d vs %d)", tightLeaves, looseLeaves)
	}
}

func TestComputeDFSDeterminism(t *testing.T) {
	emissive, receiver := facingUnitSquares()
	tris := append(append([]geom.Triangle{}, emissive...), receiver...)
	s := buildSolver(tris, Options{FEps: 0.05, AEps: 0.01, BFEps: 0.01, MaxIterations: 10})
	s.Compute()

	first := s.Triangles()
	second := s.Triangles()
	if len(first) != len(second) {
		t.Fatalf("expected repeated calls to return the same length, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Vertices != second[i].Vertices {
			t.Fatalf("triangle %d differs between calls", i)
		}
	}

	firstRad, secondRad := s.Radiosity(), s.Radiosity()
	for i := range firstRad {
		if firstRad[i] != secondRad[i] {
			t.Fatalf("radiosity %d differs between calls", i)
		}
	}
}

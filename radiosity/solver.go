// Package radiosity implements the hierarchical radiosity solver: a forest
// of quadtrees over a scene's triangles, the gather-links installed between
// them, and the iterative gather/push-pull energy transfer solver that
// refines those links until every one carries less than a bounded amount
// of unresolved radiant energy.
//
// The package only depends on the collaborator interfaces declared in
// mesh (and the pure geometry kernel in geom). It never imports a
// concrete accelerator or mesh refiner, so it can be driven by any pair
// that satisfies mesh.VisibilityOracle / mesh.MeshRefiner.
package radiosity

import (
	"github.com/turner-renderer/renderer/geom"
	"github.com/turner-renderer/renderer/log"
	"github.com/turner-renderer/renderer/mesh"
	"github.com/turner-renderer/renderer/progress"
)

// nodeID addresses a quadnode inside a Solver's node arena. Nodes are never
// relocated once created, so a nodeID (and the link shooter references
// built from it) stays valid for the Solver's entire lifetime. Owning the
// arena by index rather than by pointer is what keeps that guarantee cheap.
type nodeID uint32

// noChild marks an absent child/parent slot.
const noChild nodeID = ^nodeID(0)

type link struct {
	shooter    nodeID
	formFactor float32
}

// node is a quadtree node together with the patch data it represents.
// Every quadnode owns exactly one patch, so splitting them into two
// parallel arenas would only add a second index translation with no
// benefit.
type node struct {
	parent   nodeID
	children [4]nodeID

	rootTriID uint32
	face      mesh.FaceHandle
	area      float32

	diffuse  geom.Color
	emissive geom.Color

	radGather geom.Color
	radShoot  geom.Color

	links []link
}

func (n *node) isLeaf() bool { return n.children[0] == noChild }

// Options configures a Solver.
type Options struct {
	// FEps is the link-acceptance threshold on the estimated form factor.
	FEps float32
	// AEps is the minimum allowed patch area.
	AEps float32
	// BFEps is the maximum allowed unresolved radiant power per link,
	// tested on all three channels.
	BFEps float32
	// MaxIterations is the number of gather/push-pull sweeps performed
	// per solve/refine-links pass of Compute.
	MaxIterations int

	// Delta, if > 0, stops sweeping early once every leaf's shooting
	// radiosity changes by less than Delta on every channel between two
	// consecutive sweeps. MaxIterations remains a hard cap either way.
	Delta float32

	// MaxRefinementPasses caps the outer solve/refine-links loop as a
	// safety net against a link-refinement pass that never converges
	// (e.g. BF_eps set far below what AEps allows). Zero means
	// unbounded: loop until a pass refines no links.
	MaxRefinementPasses int
}

// DefaultOptions returns a reasonable set of defaults.
func DefaultOptions() Options {
	return Options{
		FEps:          0.05,
		AEps:          1e-4,
		BFEps:         1e-3,
		MaxIterations: 8,
	}
}

// Solver owns the whole forest: the node arena, the shared mesh refiner and
// visibility oracle, and the solver configuration. It is not safe for
// concurrent use and Compute is not reentrant.
type Solver struct {
	opts Options

	nodes []node
	roots []nodeID

	refiner  mesh.MeshRefiner
	oracle   mesh.VisibilityOracle
	progress progress.Reporter
	logger   log.Logger

	clampedWarned bool
	stats         Stats
}

// New builds a Solver from a flat triangle source, a mesh refiner able to
// subdivide those triangles' faces, and a visibility oracle for occlusion
// testing. Root triangle i is addressed in the refiner as FaceHandle(i), so
// the refiner must already know that triangle under that handle (adding the
// root faces to mesh/subdiv.Mesh in triangle order does this).
func New(triangles mesh.TriangleSource, refiner mesh.MeshRefiner, oracle mesh.VisibilityOracle, opts Options, reporter progress.Reporter) *Solver {
	s := &Solver{
		opts:     opts,
		refiner:  refiner,
		oracle:   oracle,
		progress: reporter,
		logger:   log.New("radiosity"),
	}
	if s.progress == nil {
		s.progress = progress.Discard{}
	}

	n := triangles.NumTriangles()
	s.nodes = make([]node, 0, n)
	s.roots = make([]nodeID, n)

	for i := 0; i < n; i++ {
		tri := triangles.Triangle(i)
		id := s.newNode(noChild, uint32(i), mesh.FaceHandle(i), tri.Area, tri.Diffuse, tri.Emissive)
		s.nodes[id].radShoot = tri.Emissive
		s.roots[i] = id
	}

	return s
}

func (s *Solver) newNode(parent nodeID, rootTriID uint32, face mesh.FaceHandle, area float32, diffuse, emissive geom.Color) nodeID {
	id := nodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{
		parent:    parent,
		children:  [4]nodeID{noChild, noChild, noChild, noChild},
		rootTriID: rootTriID,
		face:      face,
		area:      area,
		diffuse:   diffuse,
		emissive:  emissive,
	})
	return id
}

// triangleOf reconstructs the geometric triangle a node represents. The
// area is taken from the node's own field, set at creation as area/4 of
// its parent, rather than recomputed from the refiner's corner vertices:
// that field is what the rest of the solver's energy bookkeeping (form
// factors, the BF_eps oracle) is defined over.
func (s *Solver) triangleOf(id nodeID) geom.Triangle {
	n := &s.nodes[id]
	corners := s.refiner.Corners(n.face)
	tri := geom.NewTriangle(corners[0], corners[1], corners[2], n.diffuse, n.emissive)
	tri.Area = n.area
	return tri
}

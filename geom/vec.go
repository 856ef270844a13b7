package geom

import "github.com/turner-renderer/renderer/types"

// Vec3 re-exports types.Vec3 so packages working purely in the geometry
// kernel's vocabulary (mesh, radiosity) don't need a second import.
type Vec3 = types.Vec3

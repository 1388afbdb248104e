package importer

import (
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

// MeshBuild is the geometry of a single mesh plus the control point to
// vertex expansion the skin resolver needs. It belongs to one mesh only.
type MeshBuild struct {
	Vertices               []resources.Vertex
	Indices                []uint32
	ControlPointToVertices map[int][]uint32
}

func (b *MeshBuild) IsEmpty() bool {
	return len(b.Vertices) == 0
}

// BuildMeshGeometry fan-triangulates the polygons of mesh, bakes the owning
// node's global transform into the positions and fuses UV channel 0.
// A mesh without a usable UV channel yields an empty build.
func BuildMeshGeometry(mesh scene.Mesh, diag *core.Diagnostics) MeshBuild {
	build := MeshBuild{ControlPointToVertices: map[int][]uint32{}}

	uvs, ok := mesh.UVChannel(0)
	if !ok {
		diag.Report(core.DiagnosticMissingUVChannel, "mesh %q has no uv channel, skipping geometry", mesh.Name())
		return build
	}
	if uvs.MappingMode != scene.MappingByControlPoint && uvs.MappingMode != scene.MappingByPolygonVertex {
		diag.Report(core.DiagnosticUnsupportedUVMapping, "mesh %q uses %s uv mapping, skipping geometry", mesh.Name(), uvs.MappingMode)
		return build
	}

	global := math.NewMat4Identity()
	if node := mesh.Node(); node != nil {
		global = node.GlobalTransform()
	}

	points := mesh.ControlPoints()
	polygons := mesh.Polygons()
	dedup := NewVertexDeduplicator(len(points))

	polygonStart := 0
	for p, polygon := range polygons {
		start := polygonStart
		polygonStart += len(polygon)

		if len(polygon) < 3 {
			diag.Report(core.DiagnosticDegeneratePolygon, "mesh %q polygon %d has %d vertices, skipping", mesh.Name(), p, len(polygon))
			continue
		}
		if !controlPointsInRange(polygon, len(points)) {
			diag.Report(core.DiagnosticDegeneratePolygon, "mesh %q polygon %d references a missing control point, skipping", mesh.Name(), p)
			continue
		}

		for t := 0; t < len(polygon)-2; t++ {
			for _, corner := range [3]int{0, t + 1, t + 2} {
				cp := polygon[corner]
				position := points[cp].Transform(global)
				texcoord := resolveUV(uvs, cp, start+corner, mesh.Name(), diag)

				idx, added := dedup.Insert(position, texcoord)
				if added {
					build.ControlPointToVertices[cp] = append(build.ControlPointToVertices[cp], idx)
				}
				build.Indices = append(build.Indices, idx)
			}
		}
	}

	build.Vertices = dedup.Vertices()
	core.LogDebug("mesh %q: %d polygons, %d control points -> %d vertices, %d indices",
		mesh.Name(), len(polygons), len(points), len(build.Vertices), len(build.Indices))
	return build
}

func controlPointsInRange(polygon []int, count int) bool {
	for _, cp := range polygon {
		if cp < 0 || cp >= count {
			return false
		}
	}
	return true
}

// resolveUV picks the uv for one polygon corner. Out of range indices fall
// back to the first entry.
func resolveUV(uvs *scene.UVChannel, controlPoint, counter int, meshName string, diag *core.Diagnostics) math.Vec2 {
	idx := counter
	if uvs.MappingMode == scene.MappingByControlPoint {
		idx = controlPoint
	}

	if uvs.ReferenceMode != scene.ReferenceDirect {
		if idx < 0 || idx >= len(uvs.Indices) {
			diag.Report(core.DiagnosticUVIndexOutOfRange, "mesh %q uv index %d outside index array of %d", meshName, idx, len(uvs.Indices))
			idx = 0
		} else {
			idx = uvs.Indices[idx]
		}
	}

	if len(uvs.Direct) == 0 {
		return math.Vec2{}
	}
	if idx < 0 || idx >= len(uvs.Direct) {
		diag.Report(core.DiagnosticUVIndexOutOfRange, "mesh %q uv index %d outside direct array of %d", meshName, idx, len(uvs.Direct))
		idx = 0
	}
	return uvs.Direct[idx]
}

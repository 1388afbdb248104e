package importer

import (
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
	"golang.org/x/exp/slices"
)

type influence struct {
	joint  uint16
	weight float32
}

// ResolveSkinWeights writes joint indices and weights into build.Vertices.
// Cluster joints are looked up by name in skeleton; weights of unknown
// joints are dropped. Each vertex keeps its maxInfluences strongest
// weights, renormalized to sum to one.
func ResolveSkinWeights(build *MeshBuild, skins []scene.SkinDeformer, skeleton *resources.Skeleton, maxInfluences int, diag *core.Diagnostics) {
	if build.IsEmpty() {
		return
	}
	if maxInfluences < 1 || maxInfluences > resources.MAX_VERTEX_INFLUENCES {
		maxInfluences = resources.MAX_VERTEX_INFLUENCES
	}

	influences := make([][]influence, len(build.Vertices))
	for _, skin := range skins {
		for _, cluster := range skin.Clusters {
			joint := skeleton.JointIndex(cluster.JointName)
			if joint < 0 {
				diag.Report(core.DiagnosticUnmatchedCluster, "cluster %q has no matching joint, dropping its weights", cluster.JointName)
				continue
			}
			for k, cp := range cluster.ControlPoints {
				if k >= len(cluster.Weights) {
					break
				}
				w := float32(cluster.Weights[k])
				for _, v := range build.ControlPointToVertices[cp] {
					influences[v] = append(influences[v], influence{joint: uint16(joint), weight: w})
				}
			}
		}
	}

	for v := range build.Vertices {
		writeInfluences(&build.Vertices[v], influences[v], maxInfluences, v, diag)
	}
}

func writeInfluences(vertex *resources.Vertex, pairs []influence, maxInfluences, index int, diag *core.Diagnostics) {
	slices.SortStableFunc(pairs, func(a, b influence) int {
		switch {
		case a.weight > b.weight:
			return -1
		case a.weight < b.weight:
			return 1
		default:
			return 0
		}
	})
	if len(pairs) > maxInfluences {
		diag.Report(core.DiagnosticTruncatedInfluences, "vertex %d has %d influences, keeping %d", index, len(pairs), maxInfluences)
		pairs = pairs[:maxInfluences]
	}

	sum := float32(0)
	for _, p := range pairs {
		sum += p.weight
	}
	if sum == 0 {
		sum = 1
	}

	vertex.JointIndices = [resources.MAX_VERTEX_INFLUENCES]uint16{}
	vertex.JointWeights = [resources.MAX_VERTEX_INFLUENCES - 1]float32{}
	for i, p := range pairs {
		vertex.JointIndices[i] = p.joint
		if i < len(vertex.JointWeights) {
			vertex.JointWeights[i] = p.weight / sum
		}
	}
}

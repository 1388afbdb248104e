package importer

import (
	"fmt"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

type Options struct {
	MaxInfluences      int
	PruneToFixedPoint  bool
	OptimizeAnimations bool
}

func DefaultOptions() Options {
	return OptionsFromConfig(core.DefaultConfig().Import)
}

func OptionsFromConfig(cfg core.ImportConfig) Options {
	return Options{
		MaxInfluences:      cfg.MaxInfluences,
		PruneToFixedPoint:  cfg.PruneToFixedPoint,
		OptimizeAnimations: cfg.OptimizeAnimations,
	}
}

type Result struct {
	Skeleton    *resources.Skeleton
	Meshes      []*resources.Mesh
	Animations  []*resources.Animation
	Diagnostics *core.Diagnostics
}

// Import converts a whole scene. The skeleton is built and pruned first so
// every mesh resolves its weights against the final joint indices.
func Import(sc scene.Scene, opts Options) (*Result, error) {
	if sc == nil || sc.RootNode() == nil {
		return nil, fmt.Errorf("import: %w", core.ErrMissingRootNode)
	}

	diag := core.NewDiagnostics()
	skeleton, used, err := BuildSkeleton(sc)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	built := len(skeleton.Joints)

	var removed int
	if opts.PruneToFixedPoint {
		removed = PruneSkeletonToFixedPoint(skeleton, used)
	} else {
		removed, _ = PruneSkeleton(skeleton, used)
	}
	core.LogInfo("skeleton: %d joints, %d pruned", built, removed)

	sceneMeshes := sc.Meshes()
	meshes := make([]*resources.Mesh, 0, len(sceneMeshes))
	for _, sm := range sceneMeshes {
		mesh := &resources.Mesh{}
		ResolveMaterials(sm.Node(), mesh, diag)

		build := BuildMeshGeometry(sm, diag)
		ResolveSkinWeights(&build, sm.SkinDeformers(), skeleton, opts.MaxInfluences, diag)

		mesh.Vertices = build.Vertices
		mesh.Indices = build.Indices
		meshes = append(meshes, mesh)
	}

	animations := ImportAnimations(sc, skeleton, opts.OptimizeAnimations, diag)

	if diag.Total() > 0 {
		core.LogWarn("import finished with diagnostics: %s", diag.Summary())
	}
	return &Result{
		Skeleton:    skeleton,
		Meshes:      meshes,
		Animations:  animations,
		Diagnostics: diag,
	}, nil
}

package importer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

func characterScene() *scene.Graph {
	g := scene.NewGraph("root")
	hips := g.Root.AddJoint("hips")
	hips.AddJoint("unused_leaf")
	hips.AddJoint("spine")

	body := g.Root.AddChild("body")
	body.AddMaterial(&scene.Material{Name: "skin", Channels: map[string][]scene.Texture{
		scene.ChannelDiffuse: {{FileName: "body_d.png"}},
	}})
	body.AttachMesh(&scene.GraphMesh{
		MeshName: "body",
		Points:   []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Polys:    [][]int{{0, 1, 2, 3}},
		UVs: []*scene.UVChannel{{
			MappingMode:   scene.MappingByControlPoint,
			ReferenceMode: scene.ReferenceDirect,
			Direct:        []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		}},
		Skins: []scene.SkinDeformer{{Clusters: []scene.Cluster{
			{JointName: "hips", ControlPoints: []int{0, 1}, Weights: []float64{1, 0.5}, TransformLink: math.NewMat4Identity()},
			{JointName: "spine", ControlPoints: []int{1, 2, 3}, Weights: []float64{0.5, 1, 1}, TransformLink: math.NewMat4Translation(math.NewVec3(0, 1, 0))},
			{JointName: "unused_leaf", TransformLink: math.NewMat4Identity()},
		}}},
	})

	g.Root.AddChild("prop").AttachMesh(&scene.GraphMesh{MeshName: "prop"})

	g.Clips = []scene.AnimationClip{{
		Name: "wave",
		Tracks: []scene.AnimationTrack{
			{
				NodeName: "spine",
				Translations: []resources.TranslationKey{
					{Time: 0, Value: math.NewVec3(0, 1, 0)},
					{Time: 0.5, Value: math.NewVec3(0, 1, 0)},
					{Time: 1, Value: math.NewVec3(0, 1, 0)},
				},
				Rotations: []resources.RotationKey{
					{Time: 1, Value: math.Quaternion{X: 0, Y: 0, Z: 0.7071068, W: 0.7071068}},
					{Time: 0, Value: math.Quaternion{X: 0, Y: 0, Z: 0, W: 1}},
				},
			},
			{NodeName: "tail", Scales: []resources.ScaleKey{{Time: 2, Value: math.NewVec3One()}}},
		},
	}}
	return g
}

func TestImportCharacter(t *testing.T) {
	result, err := Import(characterScene(), DefaultOptions())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if got := jointNames(result.Skeleton); len(got) != 2 || got[0] != "hips" || got[1] != "spine" {
		t.Fatalf("joints = %v, want [hips spine]", got)
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(result.Meshes))
	}

	body := result.Meshes[0]
	if body.DiffuseMapName != "body_d.png" {
		t.Errorf("diffuse = %q", body.DiffuseMapName)
	}
	if len(body.Vertices) != 4 || len(body.Indices) != 6 {
		t.Fatalf("body has %d vertices and %d indices", len(body.Vertices), len(body.Indices))
	}
	for i, v := range body.Vertices {
		for s, j := range v.JointIndices {
			if int(j) >= result.Skeleton.JointCount() {
				t.Errorf("vertex %d slot %d references joint %d", i, s, j)
			}
		}
		assertWeightSum(t, v, 1)
	}
	if body.Vertices[2].JointIndices[0] != 1 {
		t.Errorf("vertex 2 should bind to the pruned spine index 1, got %d", body.Vertices[2].JointIndices[0])
	}
	if v := body.Vertices[1]; v.JointWeights != [3]float32{0.5, 0.5, 0} {
		t.Errorf("vertex 1 weights = %v", v.JointWeights)
	}

	if !result.Meshes[1].IsEmpty() {
		t.Error("prop mesh has no uv channel and should be empty")
	}
	if result.Diagnostics.Count(core.DiagnosticMissingUVChannel) != 1 {
		t.Errorf("missing uv count = %d", result.Diagnostics.Count(core.DiagnosticMissingUVChannel))
	}

	if len(result.Animations) != 1 {
		t.Fatalf("got %d animations, want 1", len(result.Animations))
	}
	anim := result.Animations[0]
	if anim.JointCount() != 2 || anim.Duration != 1 {
		t.Fatalf("animation joints = %d duration = %f", anim.JointCount(), anim.Duration)
	}
	if len(anim.Translations[1]) != 2 {
		t.Errorf("constant translation keys should collapse to 2, got %d", len(anim.Translations[1]))
	}
	if anim.Rotations[1][0].Time != 0 {
		t.Errorf("rotation keys not sorted by time")
	}
	if result.Diagnostics.Count(core.DiagnosticUnmatchedTrack) != 1 {
		t.Errorf("unmatched track count = %d", result.Diagnostics.Count(core.DiagnosticUnmatchedTrack))
	}
}

func TestImportMissingRoot(t *testing.T) {
	_, err := Import(&scene.Graph{}, DefaultOptions())
	if !errors.Is(err, core.ErrMissingRootNode) {
		t.Fatalf("err = %v, want ErrMissingRootNode", err)
	}
}

func TestImportPruneToFixedPoint(t *testing.T) {
	g := scene.NewGraph("root")
	hips := g.Root.AddJoint("hips")
	hips.AddJoint("x").AddJoint("y")
	g.Root.AttachMesh(&scene.GraphMesh{
		MeshName: "body",
		Skins: []scene.SkinDeformer{{Clusters: []scene.Cluster{
			{JointName: "hips", ControlPoints: []int{0}, Weights: []float64{1}, TransformLink: math.NewMat4Identity()},
		}}},
	})

	single, err := Import(g, Options{MaxInfluences: 4})
	if err != nil {
		t.Fatal(err)
	}
	if single.Skeleton.JointCount() != 2 {
		t.Fatalf("single pass kept %v", jointNames(single.Skeleton))
	}

	fixed, err := Import(g, Options{MaxInfluences: 4, PruneToFixedPoint: true})
	if err != nil {
		t.Fatal(err)
	}
	if fixed.Skeleton.JointCount() != 1 {
		t.Fatalf("fixed point kept %v", jointNames(fixed.Skeleton))
	}
}

func TestOptimizeAnimation(t *testing.T) {
	anim := resources.NewAnimation("idle", 1)
	v := math.NewVec3(1, 2, 3)
	anim.Translations[0] = []resources.TranslationKey{
		{Time: 0, Value: v},
		{Time: 1, Value: v},
		{Time: 2, Value: v},
		{Time: 3, Value: math.NewVec3(4, 5, 6)},
		{Time: 4, Value: v},
	}
	anim.Scales[0] = []resources.ScaleKey{{Time: 0, Value: v}, {Time: 1, Value: v}}

	OptimizeAnimation(anim)

	wantTimes := []float32{0, 2, 3, 4}
	if len(anim.Translations[0]) != len(wantTimes) {
		t.Fatalf("got %d keys, want %d", len(anim.Translations[0]), len(wantTimes))
	}
	for i, k := range anim.Translations[0] {
		if k.Time != wantTimes[i] {
			t.Errorf("key %d time = %f, want %f", i, k.Time, wantTimes[i])
		}
	}
	if len(anim.Scales[0]) != 2 {
		t.Errorf("two-key tracks must stay intact")
	}
}

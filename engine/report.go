package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/serializer"
)

type Report struct {
	Source      string
	Output      string
	Timings     [STAGE_MAX]time.Duration
	Summary     *Summary
	Diagnostics *core.Diagnostics

	clock *core.Clock
}

func (r *Report) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range r.Timings {
		total += d
	}
	return total
}

type MeshSummary struct {
	VertexCount   int
	TriangleCount int
	VertexBytes   int
	Extents       math.Extents3D
	Textures      [3]string
}

type AnimationSummary struct {
	Name     string
	Duration float32
	KeyCount int
}

// Summary is a human readable description of a converted asset.
type Summary struct {
	AssetID    string
	Version    uint8
	Joints     []string
	Meshes     []MeshSummary
	Animations []AnimationSummary
	Texture    string
}

func Summarize(asset *serializer.Asset) *Summary {
	s := &Summary{
		AssetID: asset.ID().String(),
		Version: asset.Header.Version,
	}
	for _, j := range asset.Skeleton.Joints {
		s.Joints = append(s.Joints, j.Name)
	}
	for _, m := range asset.Meshes {
		s.Meshes = append(s.Meshes, MeshSummary{
			VertexCount:   len(m.Vertices),
			TriangleCount: len(m.Indices) / 3,
			VertexBytes:   len(m.Vertices) * resources.VertexStride,
			Extents:       m.Extents(),
			Textures:      [3]string{m.DiffuseMapName, m.SpecularMapName, m.NormalMapName},
		})
	}
	for _, a := range asset.Animations {
		s.Animations = append(s.Animations, AnimationSummary{Name: a.Name, Duration: a.Duration, KeyCount: a.KeyCount()})
	}
	if !asset.Texture.IsEmpty() {
		s.Texture = fmt.Sprintf("%s %dx%d", asset.Texture.Name, asset.Texture.Width, asset.Texture.Height)
	}
	return s
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "asset %s (version %d)\n", s.AssetID, s.Version)
	fmt.Fprintf(&b, "joints: %d", len(s.Joints))
	if len(s.Joints) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(s.Joints, ", "))
	}
	b.WriteString("\n")
	for i, m := range s.Meshes {
		fmt.Fprintf(&b, "mesh %d: %d vertices (%d bytes), %d triangles", i, m.VertexCount, m.VertexBytes, m.TriangleCount)
		if m.VertexCount > 0 {
			center, size := m.Extents.Center(), m.Extents.Size()
			fmt.Fprintf(&b, ", center (%.3f, %.3f, %.3f), size (%.3f, %.3f, %.3f)",
				center.X, center.Y, center.Z, size.X, size.Y, size.Z)
		}
		for slot, name := range m.Textures {
			if name != "" {
				fmt.Fprintf(&b, ", %s=%s", textureSlots[slot], name)
			}
		}
		b.WriteString("\n")
	}
	for _, a := range s.Animations {
		fmt.Fprintf(&b, "animation %q: %.3fs, %d keys\n", a.Name, a.Duration, a.KeyCount)
	}
	if s.Texture != "" {
		fmt.Fprintf(&b, "texture: %s\n", s.Texture)
	}
	return b.String()
}

var textureSlots = [3]string{"diffuse", "specular", "normal"}

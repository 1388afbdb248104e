package importer

import (
	m "math"

	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

// vertexKey is the bit pattern of (position, uv). Positive and negative
// zero share a key; NaNs only match an identical bit pattern.
type vertexKey struct {
	px, py, pz uint32
	u, v       uint32
}

func canonicalBits(f float32) uint32 {
	if f == 0 {
		return 0
	}
	return m.Float32bits(f)
}

func newVertexKey(position math.Vec3, texcoord math.Vec2) vertexKey {
	return vertexKey{
		px: canonicalBits(position.X),
		py: canonicalBits(position.Y),
		pz: canonicalBits(position.Z),
		u:  canonicalBits(texcoord.X),
		v:  canonicalBits(texcoord.Y),
	}
}

// VertexDeduplicator assigns one index per distinct (position, uv) pair,
// keeping vertices in the order they were first seen.
type VertexDeduplicator struct {
	lookup   map[vertexKey]uint32
	vertices []resources.Vertex
}

func NewVertexDeduplicator(capacity int) *VertexDeduplicator {
	return &VertexDeduplicator{
		lookup:   make(map[vertexKey]uint32, capacity),
		vertices: make([]resources.Vertex, 0, capacity),
	}
}

// Insert returns the index of the matching vertex and whether it was appended.
func (d *VertexDeduplicator) Insert(position math.Vec3, texcoord math.Vec2) (uint32, bool) {
	key := newVertexKey(position, texcoord)
	if idx, ok := d.lookup[key]; ok {
		return idx, false
	}
	idx := uint32(len(d.vertices))
	d.vertices = append(d.vertices, resources.Vertex{Position: position, Texcoord: texcoord})
	d.lookup[key] = idx
	return idx, true
}

func (d *VertexDeduplicator) Vertices() []resources.Vertex {
	return d.vertices
}

func (d *VertexDeduplicator) Len() int {
	return len(d.vertices)
}

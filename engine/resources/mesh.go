package resources

import "github.com/spaghettifunk/animaconv/engine/math"

const MAX_VERTEX_INFLUENCES = 4

/**
 * @brief A skinned vertex. Only the first three weights are stored, the
 * fourth is implied by the weights summing to one.
 */
type Vertex struct {
	/** @brief The position of the vertex, in world space of the source scene. */
	Position math.Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord math.Vec2
	/** @brief Skeleton joint indices. Unused slots are zero. */
	JointIndices [MAX_VERTEX_INFLUENCES]uint16
	/** @brief The explicit joint weights. */
	JointWeights [MAX_VERTEX_INFLUENCES - 1]float32
}

/** @brief Size in bytes of a packed vertex. */
const VertexStride = 12 + 8 + 2*MAX_VERTEX_INFLUENCES + 4*(MAX_VERTEX_INFLUENCES-1)

// Weights reconstructs all four weights. A vertex with no explicit weight
// carries no skinning and its implicit weight is zero too.
func (v Vertex) Weights() [MAX_VERTEX_INFLUENCES]float32 {
	out := [MAX_VERTEX_INFLUENCES]float32{}
	sum := float32(0)
	for i, w := range v.JointWeights {
		out[i] = w
		sum += w
	}
	if sum > 0 {
		out[MAX_VERTEX_INFLUENCES-1] = 1 - sum
	}
	return out
}

/**
 * @brief A triangle list mesh with its material texture references.
 */
type Mesh struct {
	/** @brief Deduplicated vertices in first-seen order. */
	Vertices []Vertex
	/** @brief Triangle list indices into Vertices. */
	Indices []uint32

	DiffuseMapName  string
	SpecularMapName string
	NormalMapName   string

	/** @brief Texture slots resolved at runtime. Not serialized. */
	DiffuseIndex  uint8
	SpecularIndex uint8
	NormalIndex   uint8
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Indices) == 0
}

func (m *Mesh) Extents() math.Extents3D {
	e := math.NewExtents3DEmpty()
	for _, v := range m.Vertices {
		e = e.Grow(v.Position)
	}
	return e
}

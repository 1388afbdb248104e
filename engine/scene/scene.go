package scene

import (
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

type MappingMode uint8

const (
	MappingNone MappingMode = iota
	MappingByControlPoint
	MappingByPolygonVertex
	MappingByPolygon
	MappingAllSame
)

func (m MappingMode) String() string {
	switch m {
	case MappingByControlPoint:
		return "by-control-point"
	case MappingByPolygonVertex:
		return "by-polygon-vertex"
	case MappingByPolygon:
		return "by-polygon"
	case MappingAllSame:
		return "all-same"
	default:
		return "none"
	}
}

type ReferenceMode uint8

const (
	ReferenceDirect ReferenceMode = iota
	ReferenceIndexToDirect
	ReferenceIndex
)

// Texture channel property names understood by the material resolver.
const (
	ChannelDiffuse   = "DiffuseColor"
	ChannelSpecular  = "SpecularColor"
	ChannelNormalMap = "NormalMap"
)

// TextureChannelNames lists every texture-carrying material property, in lookup order.
var TextureChannelNames = []string{
	ChannelDiffuse,
	"DiffuseFactor",
	"EmissiveColor",
	"EmissiveFactor",
	"AmbientColor",
	"AmbientFactor",
	ChannelSpecular,
	"SpecularFactor",
	"ShininessExponent",
	ChannelNormalMap,
	"Bump",
	"TransparentColor",
	"TransparencyFactor",
	"ReflectionColor",
	"ReflectionFactor",
	"DisplacementColor",
	"VectorDisplacementColor",
}

/**
 * @brief A texture coordinate layer. With ReferenceDirect the resolved
 * index addresses Direct; otherwise it addresses Indices, whose value
 * addresses Direct.
 */
type UVChannel struct {
	Name          string
	MappingMode   MappingMode
	ReferenceMode ReferenceMode
	Direct        []math.Vec2
	Indices       []int
}

/**
 * @brief Binds a set of control points to one joint.
 */
type Cluster struct {
	/** @brief Name of the linked joint node. */
	JointName string
	/** @brief Control point indices, parallel to Weights. */
	ControlPoints []int
	Weights       []float64
	/** @brief Global transform of the joint at bind time. */
	TransformLink math.Mat4
}

type SkinDeformer struct {
	Clusters []Cluster
}

type Texture struct {
	Name     string
	FileName string
	/** @brief Layered textures blend several sources and are not supported. */
	Layered bool
}

type Material struct {
	Name     string
	Channels map[string][]Texture
}

// Textures returns the textures attached to the named channel property.
func (m *Material) Textures(channel string) []Texture {
	if m == nil || m.Channels == nil {
		return nil
	}
	return m.Channels[channel]
}

type Scene interface {
	// RootNode returns nil when the scene has no root.
	RootNode() Node
	// Meshes returns every mesh in scene order.
	Meshes() []Mesh
}

type Node interface {
	Name() string
	Children() []Node
	// IsSkeleton reports whether the node carries a skeleton attribute.
	IsSkeleton() bool
	Geometry() (Mesh, bool)
	MaterialSlots() []*Material
	GlobalTransform() math.Mat4
}

type Mesh interface {
	Name() string
	// Node returns the node the mesh is attached to.
	Node() Node
	// Polygons returns control point indices per polygon.
	Polygons() [][]int
	ControlPoints() []math.Vec3
	UVChannel(index int) (*UVChannel, bool)
	SkinDeformers() []SkinDeformer
}

type AnimationTrack struct {
	NodeName     string
	Translations []resources.TranslationKey
	Rotations    []resources.RotationKey
	Scales       []resources.ScaleKey
}

type AnimationClip struct {
	Name string
	// Duration in seconds. Zero means derive it from the keys.
	Duration float32
	Tracks   []AnimationTrack
}

// AnimatedScene is implemented by scenes that carry keyframed clips.
type AnimatedScene interface {
	Scene
	AnimationClips() []AnimationClip
}

// Opener reads a scene from a file on disk.
type Opener func(path string) (Scene, error)

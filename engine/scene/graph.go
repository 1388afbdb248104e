package scene

import (
	"github.com/spaghettifunk/animaconv/engine/math"
)

// Graph is an in-memory scene. Format readers build one; tests build them by hand.
type Graph struct {
	Root  *GraphNode
	Clips []AnimationClip
}

func NewGraph(rootName string) *Graph {
	return &Graph{Root: NewGraphNode(rootName)}
}

func (g *Graph) RootNode() Node {
	if g == nil || g.Root == nil {
		return nil
	}
	return g.Root
}

// Meshes collects the attached meshes in depth-first pre-order.
func (g *Graph) Meshes() []Mesh {
	if g == nil || g.Root == nil {
		return nil
	}
	meshes := []Mesh{}
	var walk func(n *GraphNode)
	walk = func(n *GraphNode) {
		if n.Mesh != nil {
			meshes = append(meshes, n.Mesh)
		}
		for _, c := range n.Kids {
			walk(c)
		}
	}
	walk(g.Root)
	return meshes
}

func (g *Graph) AnimationClips() []AnimationClip {
	return g.Clips
}

type GraphNode struct {
	NodeName  string
	Parent    *GraphNode
	Kids      []*GraphNode
	Joint     bool
	Local     math.Mat4
	Mesh      *GraphMesh
	Materials []*Material
}

func NewGraphNode(name string) *GraphNode {
	return &GraphNode{NodeName: name, Local: math.NewMat4Identity()}
}

// AddChild appends a plain transform node.
func (n *GraphNode) AddChild(name string) *GraphNode {
	c := NewGraphNode(name)
	c.Parent = n
	n.Kids = append(n.Kids, c)
	return c
}

// AddJoint appends a node carrying a skeleton attribute.
func (n *GraphNode) AddJoint(name string) *GraphNode {
	c := n.AddChild(name)
	c.Joint = true
	return c
}

func (n *GraphNode) SetLocal(m math.Mat4) *GraphNode {
	n.Local = m
	return n
}

// AttachMesh makes the node own m.
func (n *GraphNode) AttachMesh(m *GraphMesh) *GraphMesh {
	m.Owner = n
	n.Mesh = m
	return m
}

func (n *GraphNode) AddMaterial(m *Material) {
	n.Materials = append(n.Materials, m)
}

func (n *GraphNode) Name() string { return n.NodeName }

func (n *GraphNode) Children() []Node {
	out := make([]Node, len(n.Kids))
	for i, c := range n.Kids {
		out[i] = c
	}
	return out
}

func (n *GraphNode) IsSkeleton() bool { return n.Joint }

func (n *GraphNode) Geometry() (Mesh, bool) {
	if n.Mesh == nil {
		return nil, false
	}
	return n.Mesh, true
}

func (n *GraphNode) MaterialSlots() []*Material { return n.Materials }

func (n *GraphNode) GlobalTransform() math.Mat4 {
	if n.Parent == nil {
		return n.Local
	}
	return n.Local.Mul(n.Parent.GlobalTransform())
}

type GraphMesh struct {
	MeshName string
	Owner    *GraphNode
	Polys    [][]int
	Points   []math.Vec3
	UVs      []*UVChannel
	Skins    []SkinDeformer
}

func (m *GraphMesh) Name() string { return m.MeshName }

func (m *GraphMesh) Node() Node {
	if m.Owner == nil {
		return nil
	}
	return m.Owner
}

func (m *GraphMesh) Polygons() [][]int { return m.Polys }

func (m *GraphMesh) ControlPoints() []math.Vec3 { return m.Points }

func (m *GraphMesh) UVChannel(index int) (*UVChannel, bool) {
	if index < 0 || index >= len(m.UVs) || m.UVs[index] == nil {
		return nil, false
	}
	return m.UVs[index], true
}

func (m *GraphMesh) SkinDeformers() []SkinDeformer { return m.Skins }

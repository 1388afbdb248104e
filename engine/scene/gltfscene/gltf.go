package gltfscene

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Open reads a .gltf or .glb file into an in-memory scene graph.
func Open(path string) (scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrSceneOpen, path, err)
	}
	g, err := FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrSceneOpen, path, err)
	}
	return g, nil
}

type converter struct {
	doc       *gltf.Document
	graph     *scene.Graph
	names     []string
	joints    map[int]bool
	nodes     map[int]*scene.GraphNode
	materials map[int]*scene.Material
}

// FromDocument converts the default scene of doc. Nodes referenced by a skin
// become skeleton nodes; every other node is a plain transform.
func FromDocument(doc *gltf.Document, rootName string) (*scene.Graph, error) {
	c := &converter{
		doc:       doc,
		graph:     scene.NewGraph(rootName),
		names:     nodeNames(doc),
		joints:    map[int]bool{},
		nodes:     map[int]*scene.GraphNode{},
		materials: map[int]*scene.Material{},
	}
	for _, skin := range doc.Skins {
		for _, j := range skin.Joints {
			c.joints[j] = true
		}
	}

	for _, idx := range rootNodes(doc) {
		if err := c.addNode(c.graph.Root, idx, 0); err != nil {
			return nil, err
		}
	}
	for _, anim := range doc.Animations {
		clip, err := c.convertAnimation(anim)
		if err != nil {
			return nil, err
		}
		c.graph.Clips = append(c.graph.Clips, clip)
	}
	return c.graph, nil
}

// Joints are matched by name, so unnamed or repeated names get a unique fallback.
func nodeNames(doc *gltf.Document) []string {
	names := make([]string, len(doc.Nodes))
	seen := map[string]bool{}
	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" || seen[name] {
			name = fmt.Sprintf("node_%d", i)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = *doc.Scene
		}
		if sceneIdx < len(doc.Scenes) {
			roots := []int{}
			for _, n := range doc.Scenes[sceneIdx].Nodes {
				roots = append(roots, n)
			}
			return roots
		}
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, child := range n.Children {
			if child < len(isChild) {
				isChild[child] = true
			}
		}
	}
	roots := []int{}
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (c *converter) addNode(parent *scene.GraphNode, idx int, depth int) error {
	if idx < 0 || idx >= len(c.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	if depth > len(c.doc.Nodes) {
		return fmt.Errorf("node hierarchy contains a cycle at node %d", idx)
	}
	n := c.doc.Nodes[idx]

	var node *scene.GraphNode
	if c.joints[idx] {
		node = parent.AddJoint(c.names[idx])
	} else {
		node = parent.AddChild(c.names[idx])
	}
	node.SetLocal(localTransform(n))
	c.nodes[idx] = node

	if n.Mesh != nil {
		if err := c.addMesh(node, n); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := c.addNode(node, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// localTransform treats zero rotation and scale as unset.
func localTransform(n *gltf.Node) math.Mat4 {
	if n.Matrix != identityMatrix && n.Matrix != ([16]float64{}) {
		return math.NewMat4FromColumnMajor(n.Matrix)
	}
	position := math.NewVec3(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))
	rotation := math.Quaternion{X: float32(n.Rotation[0]), Y: float32(n.Rotation[1]), Z: float32(n.Rotation[2]), W: float32(n.Rotation[3])}
	if rotation == (math.Quaternion{}) {
		rotation = math.NewQuatIdentity()
	}
	scale := math.NewVec3(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	if scale == math.NewVec3Zero() {
		scale = math.NewVec3One()
	}
	return math.TransformFromPositionRotationScale(position, rotation, scale).GetLocal()
}

package gltfscene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

type skinStream struct {
	joints  [][4]uint16
	weights [][4]float32
}

// addMesh concatenates the triangle primitives of the node's mesh. glTF
// vertices become control points and TEXCOORD_0 a by-control-point uv channel.
func (c *converter) addMesh(node *scene.GraphNode, n *gltf.Node) error {
	meshIdx := *n.Mesh
	if meshIdx < 0 || meshIdx >= len(c.doc.Meshes) {
		return fmt.Errorf("node %s references missing mesh %d", node.NodeName, meshIdx)
	}
	src := c.doc.Meshes[meshIdx]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIdx)
	}

	mesh := &scene.GraphMesh{MeshName: name}
	uvs := []math.Vec2{}
	hasUV := false
	skin := skinStream{}
	seenMaterials := map[int]bool{}

	for p, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			core.LogWarn("mesh %q primitive %d: mode %v is not a triangle list, skipping", name, p, prim.Mode)
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		posAcr, err := c.accessor(posIdx)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d positions: %w", name, p, err)
		}
		positions, err := modeler.ReadPosition(c.doc, posAcr, nil)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d positions: %w", name, p, err)
		}
		base := len(mesh.Points)
		for _, pos := range positions {
			mesh.Points = append(mesh.Points, math.NewVec3(pos[0], pos[1], pos[2]))
		}

		texcoords := make([][2]float32, len(positions))
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvAcr, err := c.accessor(uvIdx)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d uvs: %w", name, p, err)
			}
			read, err := modeler.ReadTextureCoord(c.doc, uvAcr, nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d uvs: %w", name, p, err)
			}
			copy(texcoords, read)
			hasUV = true
		}
		for _, uv := range texcoords {
			uvs = append(uvs, math.NewVec2(uv[0], uv[1]))
		}

		if err := c.readSkinStream(&skin, prim, len(positions)); err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", name, p, err)
		}

		indices, err := c.primitiveIndices(prim, len(positions))
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d indices: %w", name, p, err)
		}
		for t := 0; t+2 < len(indices); t += 3 {
			mesh.Polys = append(mesh.Polys, []int{base + int(indices[t]), base + int(indices[t+1]), base + int(indices[t+2])})
		}

		if prim.Material != nil && !seenMaterials[*prim.Material] {
			seenMaterials[*prim.Material] = true
			if mat := c.material(*prim.Material); mat != nil {
				node.AddMaterial(mat)
			}
		}
	}

	if hasUV {
		mesh.UVs = []*scene.UVChannel{{
			Name:          gltf.TEXCOORD_0,
			MappingMode:   scene.MappingByControlPoint,
			ReferenceMode: scene.ReferenceDirect,
			Direct:        uvs,
		}}
	}

	if n.Skin != nil && len(skin.joints) > 0 {
		deformer, err := c.skinDeformer(*n.Skin, skin, node.GlobalTransform())
		if err != nil {
			return err
		}
		mesh.Skins = []scene.SkinDeformer{deformer}
	}

	node.AttachMesh(mesh)
	return nil
}

func (c *converter) primitiveIndices(prim *gltf.Primitive, vertexCount int) ([]uint32, error) {
	if prim.Indices == nil {
		out := make([]uint32, vertexCount)
		for i := range out {
			out[i] = uint32(i)
		}
		return out, nil
	}
	acr, err := c.accessor(*prim.Indices)
	if err != nil {
		return nil, err
	}
	return modeler.ReadIndices(c.doc, acr, nil)
}

// readSkinStream appends the primitive's first joint/weight set, padding with
// zeros so the stream stays parallel to the control points.
func (c *converter) readSkinStream(skin *skinStream, prim *gltf.Primitive, vertexCount int) error {
	joints := make([][4]uint16, vertexCount)
	weights := make([][4]float32, vertexCount)

	jIdx, hasJoints := prim.Attributes[gltf.JOINTS_0]
	wIdx, hasWeights := prim.Attributes[gltf.WEIGHTS_0]
	if hasJoints && hasWeights {
		jAcr, err := c.accessor(jIdx)
		if err != nil {
			return fmt.Errorf("joints: %w", err)
		}
		wAcr, err := c.accessor(wIdx)
		if err != nil {
			return fmt.Errorf("weights: %w", err)
		}
		readJoints, err := modeler.ReadJoints(c.doc, jAcr, nil)
		if err != nil {
			return fmt.Errorf("joints: %w", err)
		}
		readWeights, err := modeler.ReadWeights(c.doc, wAcr, nil)
		if err != nil {
			return fmt.Errorf("weights: %w", err)
		}
		copy(joints, readJoints)
		copy(weights, readWeights)
	}
	skin.joints = append(skin.joints, joints...)
	skin.weights = append(skin.weights, weights...)
	return nil
}

// skinDeformer turns per-vertex joint sets into one cluster per skin joint.
// Inverse bind matrices act on mesh-space positions, while the importer bakes
// meshGlobal into every position, so each link is inverse(IBM) followed by
// meshGlobal. Its inverse then undoes meshGlobal before applying the IBM.
func (c *converter) skinDeformer(skinIdx int, stream skinStream, meshGlobal math.Mat4) (scene.SkinDeformer, error) {
	if skinIdx < 0 || skinIdx >= len(c.doc.Skins) {
		return scene.SkinDeformer{}, fmt.Errorf("missing skin %d", skinIdx)
	}
	skin := c.doc.Skins[skinIdx]

	inverseBinds := make([]math.Mat4, len(skin.Joints))
	for i := range inverseBinds {
		inverseBinds[i] = math.NewMat4Identity()
	}
	if skin.InverseBindMatrices != nil {
		acr, err := c.accessor(*skin.InverseBindMatrices)
		if err != nil {
			return scene.SkinDeformer{}, fmt.Errorf("skin %d inverse bind matrices: %w", skinIdx, err)
		}
		data, err := modeler.ReadAccessor(c.doc, acr, nil)
		if err != nil {
			return scene.SkinDeformer{}, fmt.Errorf("skin %d inverse bind matrices: %w", skinIdx, err)
		}
		matrices, ok := data.([][4][4]float32)
		if !ok {
			return scene.SkinDeformer{}, fmt.Errorf("skin %d inverse bind matrices have type %T", skinIdx, data)
		}
		for i := 0; i < len(matrices) && i < len(inverseBinds); i++ {
			inverseBinds[i] = columnsToMat4(matrices[i])
		}
	}

	clusters := make([]scene.Cluster, len(skin.Joints))
	for i, j := range skin.Joints {
		if j < 0 || j >= len(c.names) {
			return scene.SkinDeformer{}, fmt.Errorf("skin %d joint %d references missing node %d", skinIdx, i, j)
		}
		clusters[i] = scene.Cluster{
			JointName:     c.names[j],
			TransformLink: inverseBinds[i].Inverse().Mul(meshGlobal),
		}
	}
	for cp := range stream.joints {
		for s := 0; s < 4; s++ {
			w := stream.weights[cp][s]
			j := int(stream.joints[cp][s])
			if w <= 0 || j >= len(clusters) {
				continue
			}
			cl := &clusters[j]
			if last := len(cl.ControlPoints) - 1; last >= 0 && cl.ControlPoints[last] == cp {
				cl.Weights[last] += float64(w)
				continue
			}
			cl.ControlPoints = append(cl.ControlPoints, cp)
			cl.Weights = append(cl.Weights, float64(w))
		}
	}
	return scene.SkinDeformer{Clusters: clusters}, nil
}

func columnsToMat4(columns [4][4]float32) math.Mat4 {
	out := math.Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out.Data[col*4+row] = columns[col][row]
		}
	}
	return out
}

func (c *converter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(c.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return c.doc.Accessors[idx], nil
}

package gltfscene

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/animaconv/engine/scene"
)

// material maps the metallic-roughness model onto the channel names the
// importer understands. The metallic-roughness map stands in for specular.
func (c *converter) material(idx int) *scene.Material {
	if idx < 0 || idx >= len(c.doc.Materials) {
		return nil
	}
	if m, ok := c.materials[idx]; ok {
		return m
	}

	src := c.doc.Materials[idx]
	m := &scene.Material{Name: src.Name, Channels: map[string][]scene.Texture{}}
	if m.Name == "" {
		m.Name = fmt.Sprintf("material_%d", idx)
	}

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			c.addTexture(m, scene.ChannelDiffuse, pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicRoughnessTexture != nil {
			c.addTexture(m, scene.ChannelSpecular, pbr.MetallicRoughnessTexture.Index)
		}
	}
	if src.NormalTexture != nil {
		if src.NormalTexture.Index != nil {
			c.addTexture(m, scene.ChannelNormalMap, *src.NormalTexture.Index)
		}
	}

	c.materials[idx] = m
	return m
}

func (c *converter) addTexture(m *scene.Material, channel string, texIdx int) {
	if texIdx < 0 || texIdx >= len(c.doc.Textures) {
		return
	}
	tex := c.doc.Textures[texIdx]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(c.doc.Images) {
		return
	}
	imgIdx := *tex.Source
	img := c.doc.Images[imgIdx]

	fileName := img.URI
	if strings.HasPrefix(fileName, "data:") {
		fileName = img.Name
	}
	if fileName == "" {
		fileName = fmt.Sprintf("image_%d", imgIdx)
	}
	name := tex.Name
	if name == "" {
		name = fileName
	}
	m.Channels[channel] = append(m.Channels[channel], scene.Texture{Name: name, FileName: fileName})
}

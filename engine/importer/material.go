package importer

import (
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

// ResolveMaterials records the diffuse, specular and normal map file names
// found on the node's material slots. Later textures overwrite earlier ones.
func ResolveMaterials(node scene.Node, mesh *resources.Mesh, diag *core.Diagnostics) {
	if node == nil {
		return
	}
	for _, material := range node.MaterialSlots() {
		for _, channel := range scene.TextureChannelNames {
			for _, texture := range material.Textures(channel) {
				if texture.Layered {
					diag.Report(core.DiagnosticLayeredTexture, "material %q channel %s: layered texture %q not supported", material.Name, channel, texture.Name)
					continue
				}
				switch channel {
				case scene.ChannelDiffuse:
					mesh.DiffuseMapName = texture.FileName
				case scene.ChannelSpecular:
					mesh.SpecularMapName = texture.FileName
				case scene.ChannelNormalMap:
					mesh.NormalMapName = texture.FileName
				}
			}
		}
	}
}

package serializer

import (
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

// Export writes the asset to path. A failed export may leave a partial file behind.
func Export(path string, asset *Asset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrAssetWrite, path, err)
	}
	if err := Encode(f, asset); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", core.ErrAssetWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrAssetWrite, path, err)
	}
	core.LogInfo("exported %s: %d joints, %d meshes, %d animations", path, asset.Skeleton.JointCount(), len(asset.Meshes), len(asset.Animations))
	return nil
}

// Encode writes the header followed by the skeleton, mesh, animation and
// texture sections.
func Encode(w io.Writer, asset *Asset) error {
	aw := newAssetWriter(w)
	aw.write(&asset.Header)
	writeSkeleton(aw, asset.Skeleton)
	writeMeshes(aw, asset.Meshes)
	writeAnimations(aw, asset.Animations)
	writeTexture(aw, asset.Texture)
	return aw.flush()
}

func writeSkeleton(aw *assetWriter, skeleton *resources.Skeleton) {
	aw.writeUint32(skeleton.JointCount())
	if skeleton == nil {
		return
	}
	for i := range skeleton.Joints {
		joint := &skeleton.Joints[i]
		aw.writeString(joint.Name)
		aw.write(joint.ParentIndex)
		aw.write(&joint.InverseBindPose.Data)
	}
}

func writeMeshes(aw *assetWriter, meshes []*resources.Mesh) {
	aw.writeUint32(len(meshes))
	for _, mesh := range meshes {
		aw.writeUint32(len(mesh.Vertices))
		if len(mesh.Vertices) > 0 {
			aw.write(mesh.Vertices)
		}
		aw.writeUint32(len(mesh.Indices))
		if len(mesh.Indices) > 0 {
			aw.write(mesh.Indices)
		}
		aw.writeString(mesh.DiffuseMapName)
		aw.writeString(mesh.SpecularMapName)
		aw.writeString(mesh.NormalMapName)
	}
}

func writeAnimations(aw *assetWriter, animations []*resources.Animation) {
	aw.writeUint32(len(animations))
	for _, anim := range animations {
		aw.writeString(anim.Name)
		aw.write(anim.Duration)
		aw.writeUint32(anim.JointCount())
		for j := 0; j < anim.JointCount(); j++ {
			aw.writeUint32(len(anim.Translations[j]))
			if len(anim.Translations[j]) > 0 {
				aw.write(anim.Translations[j])
			}
			aw.writeUint32(len(anim.Rotations[j]))
			if len(anim.Rotations[j]) > 0 {
				aw.write(anim.Rotations[j])
			}
			aw.writeUint32(len(anim.Scales[j]))
			if len(anim.Scales[j]) > 0 {
				aw.write(anim.Scales[j])
			}
		}
	}
}

// A missing texture is written as an empty one.
func writeTexture(aw *assetWriter, texture *resources.Texture) {
	if texture == nil {
		texture = &resources.Texture{}
	}
	aw.writeString(texture.Name)
	aw.write(texture.Width)
	aw.write(texture.Height)
	aw.write(texture.ChannelCount)
	aw.writeUint32(len(texture.Pixels))
	if len(texture.Pixels) > 0 {
		aw.write(texture.Pixels)
	}
}

package serializer

import (
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

// Load reads a character asset written by Export.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	asset, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return asset, nil
}

func Decode(r io.Reader) (*Asset, error) {
	ar := newAssetReader(r)
	asset := &Asset{}

	ar.read(&asset.Header)
	if ar.err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", core.ErrInvalidAsset, ar.err)
	}
	if asset.Header.MagicNumber != resources.ResourceMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", core.ErrInvalidAsset, asset.Header.MagicNumber)
	}
	if asset.Header.Version != resources.CharacterAssetVersion {
		return nil, fmt.Errorf("%w: %d", core.ErrUnsupportedVersion, asset.Header.Version)
	}
	if asset.Header.ResourceType != resources.ResourceTypeCharacterAsset {
		return nil, fmt.Errorf("%w: resource type %s", core.ErrInvalidAsset, asset.Header.ResourceType)
	}

	asset.Skeleton = readSkeleton(ar)
	asset.Meshes = readMeshes(ar)
	asset.Animations = readAnimations(ar)
	asset.Texture = readTexture(ar)
	if ar.err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidAsset, ar.err)
	}
	return asset, nil
}

func readSkeleton(ar *assetReader) *resources.Skeleton {
	skeleton := &resources.Skeleton{}
	count := ar.readCount("joint")
	for i := 0; i < count && ar.err == nil; i++ {
		joint := resources.Joint{}
		joint.Name = ar.readString()
		ar.read(&joint.ParentIndex)
		ar.read(&joint.InverseBindPose.Data)
		skeleton.Joints = append(skeleton.Joints, joint)
	}
	return skeleton
}

func readMeshes(ar *assetReader) []*resources.Mesh {
	count := ar.readCount("mesh")
	meshes := []*resources.Mesh{}
	for i := 0; i < count && ar.err == nil; i++ {
		mesh := &resources.Mesh{}
		mesh.Vertices = readElements[resources.Vertex](ar, ar.readCount("vertex"))
		mesh.Indices = readElements[uint32](ar, ar.readCount("index"))
		mesh.DiffuseMapName = ar.readString()
		mesh.SpecularMapName = ar.readString()
		mesh.NormalMapName = ar.readString()
		meshes = append(meshes, mesh)
	}
	return meshes
}

func readAnimations(ar *assetReader) []*resources.Animation {
	count := ar.readCount("animation")
	animations := []*resources.Animation{}
	for i := 0; i < count && ar.err == nil; i++ {
		name := ar.readString()
		var duration float32
		ar.read(&duration)
		joints := ar.readCount("animation joint")
		if ar.err != nil {
			break
		}
		// Tracks grow per joint read, never from the declared count alone.
		anim := resources.NewAnimation(name, 0)
		anim.Duration = duration
		for j := 0; j < joints && ar.err == nil; j++ {
			anim.Translations = append(anim.Translations, readElements[resources.TranslationKey](ar, ar.readCount("translation key")))
			anim.Rotations = append(anim.Rotations, readElements[resources.RotationKey](ar, ar.readCount("rotation key")))
			anim.Scales = append(anim.Scales, readElements[resources.ScaleKey](ar, ar.readCount("scale key")))
		}
		animations = append(animations, anim)
	}
	return animations
}

func readTexture(ar *assetReader) *resources.Texture {
	texture := &resources.Texture{}
	texture.Name = ar.readString()
	ar.read(&texture.Width)
	ar.read(&texture.Height)
	ar.read(&texture.ChannelCount)
	texture.Pixels = readElements[uint8](ar, ar.readCount("pixel byte"))
	return texture
}

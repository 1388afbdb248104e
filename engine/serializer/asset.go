package serializer

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

/**
 * @brief Everything stored in a character asset file, in file order.
 */
type Asset struct {
	Header     resources.ResourceHeader
	Skeleton   *resources.Skeleton
	Meshes     []*resources.Mesh
	Animations []*resources.Animation
	Texture    *resources.Texture
}

// NewAsset stamps a header whose id is derived from sourceName, so converting
// the same source twice yields identical bytes.
func NewAsset(sourceName string, skeleton *resources.Skeleton, meshes []*resources.Mesh, animations []*resources.Animation, texture *resources.Texture) *Asset {
	if skeleton == nil {
		skeleton = &resources.Skeleton{}
	}
	return &Asset{
		Header: resources.ResourceHeader{
			MagicNumber:  resources.ResourceMagic,
			Version:      resources.CharacterAssetVersion,
			ResourceType: resources.ResourceTypeCharacterAsset,
			AssetID:      AssetID(sourceName),
		},
		Skeleton:   skeleton,
		Meshes:     meshes,
		Animations: animations,
		Texture:    texture,
	}
}

func AssetID(sourceName string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceName))
}

func (a *Asset) ID() uuid.UUID {
	return uuid.UUID(a.Header.AssetID)
}

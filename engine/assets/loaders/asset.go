package loaders

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/serializer"
)

// CharacterAssetLoader reads converted .ceasset files back into memory.
type CharacterAssetLoader struct{}

func (cl *CharacterAssetLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	asset, err := serializer.Load(path)
	if err != nil {
		return nil, err
	}
	var size uint64
	if info, err := os.Stat(path); err == nil {
		size = uint64(info.Size())
	}
	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: size,
		Data:     asset,
	}, nil
}

func (cl *CharacterAssetLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	return nil
}

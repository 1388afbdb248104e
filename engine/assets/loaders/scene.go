package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
	"github.com/spaghettifunk/animaconv/engine/scene/gltfscene"
)

// SceneLoader opens interchange scenes with the reader registered for their extension.
type SceneLoader struct {
	Openers map[string]scene.Opener
}

func NewSceneLoader() *SceneLoader {
	return &SceneLoader{
		Openers: map[string]scene.Opener{
			".gltf": gltfscene.Open,
			".glb":  gltfscene.Open,
		},
	}
}

func (sl *SceneLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	ext := strings.ToLower(filepath.Ext(path))
	open, ok := sl.Openers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSceneOpen, err)
	}
	sc, err := open(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data:     sc,
	}, nil
}

func (sl *SceneLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	return nil
}

package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/animaconv/engine/assets/loaders"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

type AssetInfo struct {
	Path    string
	Type    resources.ResourceType
	ModTime time.Time
}

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex
}

func NewAssetManager() *AssetManager {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[resources.ResourceType]Loader),
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeScene, loaders.NewSceneLoader())
	am.registerLoader(resources.ResourceTypeImage, &loaders.TextureLoader{})
	am.registerLoader(resources.ResourceTypeCharacterAsset, &loaders.CharacterAssetLoader{})

	return am
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads path with the loader registered for its extension.
func (am *AssetManager) LoadAsset(path string, params interface{}) (*resources.Resource, error) {
	assetType := DetermineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, path)
	}
	loader, exists := am.loaders[assetType]
	if !exists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", assetType)
	}

	res, err := loader.Load(path, assetType, params)
	if err != nil {
		return nil, err
	}
	am.track(path, assetType)
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *resources.Resource) error {
	if res == nil {
		return nil
	}
	assetType := DetermineAssetType(res.FullPath)
	if loader, ok := am.loaders[assetType]; ok {
		return loader.Unload(res)
	}
	return nil
}

// Watch reports every scene under dir through onChange, first for the files
// already present and then whenever one is created or rewritten. Events are
// handled one at a time on the calling goroutine until ctx is done.
func (am *AssetManager) Watch(ctx context.Context, dir string, onChange func(AssetInfo)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := am.watchRecursive(watcher, dir, onChange); err != nil {
		return err
	}
	core.LogInfo("watching %s for scene changes", dir)

	for {
		select {
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(watcher, e.Name, onChange); err != nil {
						core.LogError("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name, onChange)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			core.LogError("%s", err.Error())

		case <-ctx.Done():
			return nil
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and reports the scenes already in them.
func (am *AssetManager) watchRecursive(watcher *fsnotify.Watcher, path string, onChange func(AssetInfo)) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return watcher.Add(walkPath)
		}
		am.handleFileEvent(walkPath, onChange)
		return nil
	})
}

// Handle the creation or modification of a file. Editors often emit several
// writes per save, so a file whose modification time did not move is ignored.
func (am *AssetManager) handleFileEvent(path string, onChange func(AssetInfo)) {
	if DetermineAssetType(path) != resources.ResourceTypeScene {
		return
	}
	s, err := os.Stat(path)
	if err != nil {
		return
	}

	am.mutex.Lock()
	prev, seen := am.assets[path]
	info := AssetInfo{Path: path, Type: resources.ResourceTypeScene, ModTime: s.ModTime()}
	am.assets[path] = info
	am.mutex.Unlock()

	if seen && prev.ModTime.Equal(info.ModTime) {
		return
	}
	onChange(info)
}

func (am *AssetManager) track(path string, assetType resources.ResourceType) {
	var mod time.Time
	if s, err := os.Stat(path); err == nil {
		mod = s.ModTime()
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{Path: path, Type: assetType, ModTime: mod}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

// Tracked returns what is known about path, if it was loaded or watched.
func (am *AssetManager) Tracked(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

// LoadScene is LoadAsset restricted to interchange scenes.
func (am *AssetManager) LoadScene(path string) (*resources.Resource, error) {
	if DetermineAssetType(path) != resources.ResourceTypeScene {
		return nil, fmt.Errorf("%w: %s is not a scene", core.ErrUnsupportedFormat, path)
	}
	return am.LoadAsset(path, nil)
}

var errNotTexture = errors.New("not a texture")

// LoadTexture is LoadAsset restricted to images.
func (am *AssetManager) LoadTexture(path string, flipY bool) (*resources.Texture, error) {
	if DetermineAssetType(path) != resources.ResourceTypeImage {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrTextureLoad, path, errNotTexture)
	}
	res, err := am.LoadAsset(path, &resources.ImageResourceParams{FlipY: flipY})
	if err != nil {
		return nil, err
	}
	return res.Data.(*resources.Texture), nil
}

func DetermineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return resources.ResourceTypeScene
	case ".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff":
		return resources.ResourceTypeImage
	case core.DEFAULT_ASSET_EXTENSION:
		return resources.ResourceTypeCharacterAsset
	default:
		return resources.ResourceTypeNone
	}
}

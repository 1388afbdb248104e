package assets

import "github.com/spaghettifunk/animaconv/engine/resources"

type Loader interface {
	Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take format specific params
	Unload(*resources.Resource) error
}

package core

import (
	"errors"
)

var (
	ErrSceneOpen          = errors.New("failed to open scene")
	ErrMissingRootNode    = errors.New("scene has no root node")
	ErrUnsupportedFormat  = errors.New("unsupported source format")
	ErrAssetWrite         = errors.New("failed to write asset")
	ErrInvalidAsset       = errors.New("invalid asset file")
	ErrUnsupportedVersion = errors.New("unsupported asset version")
	ErrTextureLoad        = errors.New("failed to load texture")
	ErrTooManyJoints      = errors.New("skeleton exceeds the joint index range")
)

package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

type TextureLoader struct{}

// Load decodes an image into tightly packed RGBA8 pixels. params may be nil or
// a *resources.ImageResourceParams.
func (tl *TextureLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	flipY := false
	if p, ok := params.(*resources.ImageResourceParams); ok && p != nil {
		flipY = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTextureLoad, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrTextureLoad, path, err)
	}
	core.LogDebug("decoded %s texture %s", format, path)

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	if flipY {
		flipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}

	texture := &resources.Texture{
		Name:         filepath.Base(path),
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}
	return &resources.Resource{
		Name:     texture.Name,
		FullPath: path,
		DataSize: uint64(len(texture.Pixels)),
		Data:     texture,
	}, nil
}

func (tl *TextureLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	return nil
}

func flipRows(pix []uint8, stride, height int) {
	tmp := make([]uint8, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/serializer"
	"golang.org/x/image/bmp"
)

// 1x2 image, red on top and blue underneath.
func twoRowImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTextureLoader(t *testing.T) {
	pngPath := writeImage(t, "body.png", func(f *os.File) error { return png.Encode(f, twoRowImage()) })
	bmpPath := writeImage(t, "body.bmp", func(f *os.File) error { return bmp.Encode(f, twoRowImage()) })

	red := []uint8{255, 0, 0, 255}
	blue := []uint8{0, 0, 255, 255}

	tests := []struct {
		name      string
		path      string
		flip      bool
		wantFirst []uint8
	}{
		{"png", pngPath, false, red},
		{"png flipped", pngPath, true, blue},
		{"bmp", bmpPath, false, red},
		{"bmp flipped", bmpPath, true, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &TextureLoader{}
			res, err := loader.Load(tt.path, resources.ResourceTypeImage, &resources.ImageResourceParams{FlipY: tt.flip})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tex := res.Data.(*resources.Texture)
			if tex.Width != 1 || tex.Height != 2 || tex.ChannelCount != 4 {
				t.Fatalf("got %dx%d with %d channels", tex.Width, tex.Height, tex.ChannelCount)
			}
			if res.DataSize != 8 || len(tex.Pixels) != 8 {
				t.Fatalf("got %d pixel bytes", len(tex.Pixels))
			}
			for i, want := range tt.wantFirst {
				if tex.Pixels[i] != want {
					t.Fatalf("first pixel = %v, want %v", tex.Pixels[:4], tt.wantFirst)
				}
			}
			if tex.Name != filepath.Base(tt.path) {
				t.Errorf("name = %q", tex.Name)
			}
		})
	}
}

func TestTextureLoaderErrors(t *testing.T) {
	loader := &TextureLoader{}
	if _, err := loader.Load(filepath.Join(t.TempDir(), "missing.png"), resources.ResourceTypeImage, nil); !errors.Is(err, core.ErrTextureLoad) {
		t.Fatalf("missing file err = %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(garbage, resources.ResourceTypeImage, nil); !errors.Is(err, core.ErrTextureLoad) {
		t.Fatalf("garbage err = %v", err)
	}
}

func TestSceneLoaderUnsupportedExtension(t *testing.T) {
	_, err := NewSceneLoader().Load("hero.fbx", resources.ResourceTypeScene, nil)
	if !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSceneLoaderGLTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gltf")
	if err := os.WriteFile(path, []byte(`{"asset":{"version":"2.0"},"nodes":[{"name":"root"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := NewSceneLoader().Load(path, resources.ResourceTypeScene, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Name != "empty.gltf" || res.Data == nil {
		t.Fatalf("resource = %+v", res)
	}
}

func TestCharacterAssetLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.ceasset")
	skeleton := &resources.Skeleton{Joints: []resources.Joint{{Name: "hips", ParentIndex: resources.InvalidJointIndex}}}
	if err := serializer.Export(path, serializer.NewAsset("hero.gltf", skeleton, nil, nil, nil)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	loader := &CharacterAssetLoader{}
	res, err := loader.Load(path, resources.ResourceTypeCharacterAsset, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	asset := res.Data.(*serializer.Asset)
	if asset.Skeleton.JointCount() != 1 || asset.ID() != serializer.AssetID("hero.gltf") {
		t.Fatalf("asset = %+v", asset)
	}
	if err := loader.Unload(res); err != nil || res.Data != nil {
		t.Fatalf("Unload left %v, err %v", res.Data, err)
	}
}

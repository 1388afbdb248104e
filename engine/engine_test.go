package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

// writeTriangleGLTF writes a single textured triangle scene.
func writeTriangleGLTF(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, data := range []interface{}{
		[][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}},
		[][2]float32{{0, 0}, {1, 0}, {0, 1}},
		[]uint16{0, 1, 2, 0},
	} {
		if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
			t.Fatal(err)
		}
	}
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "tri", "mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}, "indices": 2, "material": 0}]}],
  "materials": [{"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}}],
  "textures": [{"source": 0}],
  "images": [{"uri": "tri_d.png"}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [2, 3, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 24},
    {"buffer": 0, "byteOffset": 60, "byteLength": 6}
  ],
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}]
}`, buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()))

	path := filepath.Join(dir, "tri.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newConverter(t *testing.T, cfg *core.Config) *Converter {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		output    string
		want      string
	}{
		{"next to source", "", "", filepath.Join("scenes", "hero.ceasset")},
		{"configured dir", "out", "", filepath.Join("out", "hero.ceasset")},
		{"explicit output", "out", "custom.bin", "custom.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			cfg.Export.OutputDir = tt.outputDir
			c := newConverter(t, cfg)
			if got := c.OutputPath(filepath.Join("scenes", "hero.gltf"), tt.output); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertAndInspect(t *testing.T) {
	dir := t.TempDir()
	source := writeTriangleGLTF(t, dir)

	texturePath := filepath.Join(dir, "tri_d.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	f, err := os.Create(texturePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := core.DefaultConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "out")
	cfg.Export.Texture = texturePath
	c := newConverter(t, cfg)

	report, err := c.Convert(context.Background(), source, "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Output != filepath.Join(dir, "out", "tri.ceasset") {
		t.Fatalf("output = %q", report.Output)
	}
	if report.Diagnostics.Total() != 0 {
		t.Fatalf("unexpected diagnostics: %s", report.Diagnostics.Summary())
	}
	if len(report.Summary.Meshes) != 1 {
		t.Fatalf("got %d meshes", len(report.Summary.Meshes))
	}
	mesh := report.Summary.Meshes[0]
	if mesh.VertexCount != 3 || mesh.TriangleCount != 1 || mesh.Textures[0] != "tri_d.png" {
		t.Fatalf("mesh summary = %+v", mesh)
	}
	if mesh.Extents.Max.X != 2 || mesh.Extents.Max.Y != 3 {
		t.Fatalf("extents = %+v", mesh.Extents)
	}
	if mesh.VertexBytes != 3*resources.VertexStride {
		t.Fatalf("vertex bytes = %d", mesh.VertexBytes)
	}

	summary, err := c.Inspect(report.Output)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if summary.AssetID != report.Summary.AssetID {
		t.Fatalf("asset id %s, want %s", summary.AssetID, report.Summary.AssetID)
	}
	if summary.Texture != "tri_d.png 2x2" {
		t.Fatalf("texture = %q", summary.Texture)
	}
	out := summary.String()
	for _, want := range []string{
		fmt.Sprintf("mesh 0: 3 vertices (%d bytes), 1 triangles", 3*resources.VertexStride),
		"center (1.000, 1.500, 0.000), size (2.000, 3.000, 0.000)",
		"diffuse=tri_d.png",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary text missing %q:\n%s", want, out)
		}
	}
}

func TestConvertFailuresWriteNothing(t *testing.T) {
	dir := t.TempDir()
	fbx := filepath.Join(dir, "hero.fbx")
	if err := os.WriteFile(fbx, []byte("fbx"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"missing source", filepath.Join(dir, "missing.gltf"), core.ErrSceneOpen},
		{"unsupported format", fbx, core.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(t, nil)
			_, err := c.Convert(context.Background(), tt.source, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if _, statErr := os.Stat(c.OutputPath(tt.source, "")); !os.IsNotExist(statErr) {
				t.Fatalf("output written despite failure: %v", statErr)
			}
		})
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newConverter(t, nil)
	if _, err := c.Convert(ctx, writeTriangleGLTF(t, t.TempDir()), ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestInspectRejectsScenes(t *testing.T) {
	c := newConverter(t, nil)
	if _, err := c.Inspect(writeTriangleGLTF(t, t.TempDir())); !errors.Is(err, core.ErrInvalidAsset) {
		t.Fatalf("err = %v, want ErrInvalidAsset", err)
	}
}

func TestConvertAll(t *testing.T) {
	dir := t.TempDir()
	good := writeTriangleGLTF(t, dir)
	missing := filepath.Join(dir, "missing.gltf")

	c := newConverter(t, nil)
	reports, err := c.ConvertAll(context.Background(), []string{good, missing}, 2)
	if !errors.Is(err, core.ErrSceneOpen) {
		t.Fatalf("err = %v, want joined ErrSceneOpen", err)
	}
	if len(reports) != 2 || reports[0] == nil || reports[1] != nil {
		t.Fatalf("reports = %v", reports)
	}
	if _, err := os.Stat(reports[0].Output); err != nil {
		t.Fatalf("converted asset missing: %v", err)
	}

	if _, err := c.ConvertAll(context.Background(), []string{good}, 0); err == nil {
		t.Fatal("expected an error for zero workers")
	}
}

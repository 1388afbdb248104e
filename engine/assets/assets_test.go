package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
)

const minimalGLTF = `{"asset":{"version":"2.0"},"nodes":[{"name":"root"}]}`

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want resources.ResourceType
	}{
		{"hero.gltf", resources.ResourceTypeScene},
		{"hero.GLB", resources.ResourceTypeScene},
		{"skin.png", resources.ResourceTypeImage},
		{"skin.tga", resources.ResourceTypeImage},
		{"skin.tiff", resources.ResourceTypeImage},
		{"out/hero.ceasset", resources.ResourceTypeCharacterAsset},
		{"hero.fbx", resources.ResourceTypeNone},
		{"README", resources.ResourceTypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetermineAssetType(tt.path); got != tt.want {
				t.Errorf("DetermineAssetType(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.gltf")
	if err := os.WriteFile(path, []byte(minimalGLTF), 0o644); err != nil {
		t.Fatal(err)
	}

	am := NewAssetManager()
	res, err := am.LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if res.Data == nil {
		t.Fatal("scene resource has no data")
	}
	if info, ok := am.Tracked(path); !ok || info.Type != resources.ResourceTypeScene {
		t.Fatalf("tracked = %+v, %v", info, ok)
	}
	if err := am.UnloadAsset(res); err != nil || res.Data != nil {
		t.Fatalf("UnloadAsset left %v, err %v", res.Data, err)
	}

	if _, err := am.LoadAsset(filepath.Join(dir, "hero.fbx"), nil); !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Fatalf("fbx err = %v", err)
	}
	if _, err := am.LoadTexture(path, false); !errors.Is(err, core.ErrTextureLoad) {
		t.Fatalf("texture from scene err = %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.gltf")
	if err := os.WriteFile(existing, []byte(minimalGLTF), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	am := NewAssetManager()
	go func() {
		done <- am.Watch(ctx, dir, func(info AssetInfo) { changes <- info.Path })
	}()

	waitFor := func(want string) {
		t.Helper()
		select {
		case got := <-changes:
			if got != want {
				t.Fatalf("change = %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	waitFor(existing)

	// Wait for the initial scan to finish before writing.
	for {
		if _, ok := am.Tracked(existing); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	added := filepath.Join(dir, "added.glb")
	if err := os.WriteFile(added, []byte("glb"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(added)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

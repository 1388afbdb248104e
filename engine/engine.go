package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spaghettifunk/animaconv/engine/assets"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/importer"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
	"github.com/spaghettifunk/animaconv/engine/serializer"
	"github.com/spaghettifunk/animaconv/engine/systems"
)

type Stage uint8

const (
	// Reading the interchange scene from disk
	StageOpening Stage = iota
	// Building skeleton, meshes and animations
	StageImporting
	// Decoding the optional texture
	StageTexture
	// Writing the asset file
	StageExporting
	STAGE_MAX
)

func (s Stage) String() string {
	switch s {
	case StageOpening:
		return "open"
	case StageImporting:
		return "import"
	case StageTexture:
		return "texture"
	case StageExporting:
		return "export"
	default:
		return "unknown"
	}
}

// Converter turns interchange scenes into character asset files. Each
// conversion is self contained, so ConvertAll may run several at once.
type Converter struct {
	config       *core.Config
	assetManager *assets.AssetManager
}

func New(cfg *core.Config) (*Converter, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	cfg.Normalize()
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &Converter{
		config:       cfg,
		assetManager: assets.NewAssetManager(),
	}, nil
}

func (c *Converter) Config() *core.Config {
	return c.config
}

// OutputPath picks where the asset converted from source goes. An explicit
// output wins, then the configured output directory, then the source directory.
func (c *Converter) OutputPath(source, output string) string {
	if output != "" {
		return output
	}
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + core.DEFAULT_ASSET_EXTENSION
	if c.config.Export.OutputDir != "" {
		return filepath.Join(c.config.Export.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(source), name)
}

// Convert reads source, imports it and writes the asset to output (see
// OutputPath). Nothing is written when opening or importing fails.
func (c *Converter) Convert(ctx context.Context, source, output string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report := &Report{Source: source, Output: c.OutputPath(source, output), clock: core.NewClock()}

	var res *resources.Resource
	if err := c.timed(report, StageOpening, func() (err error) {
		res, err = c.assetManager.LoadScene(source)
		return err
	}); err != nil {
		return nil, err
	}
	defer c.assetManager.UnloadAsset(res)
	sc, ok := res.Data.(scene.Scene)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrSceneOpen, source)
	}

	var result *importer.Result
	if err := c.timed(report, StageImporting, func() (err error) {
		result, err = importer.Import(sc, importer.OptionsFromConfig(c.config.Import))
		return err
	}); err != nil {
		return nil, fmt.Errorf("importing %s: %w", source, err)
	}

	var texture *resources.Texture
	if c.config.Export.Texture != "" {
		if err := c.timed(report, StageTexture, func() (err error) {
			texture, err = c.assetManager.LoadTexture(c.config.Export.Texture, c.config.Export.FlipTextureY)
			return err
		}); err != nil {
			return nil, err
		}
	}

	asset := serializer.NewAsset(filepath.Base(source), result.Skeleton, result.Meshes, result.Animations, texture)
	if err := os.MkdirAll(filepath.Dir(report.Output), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAssetWrite, err)
	}
	if err := c.timed(report, StageExporting, func() error {
		return serializer.Export(report.Output, asset)
	}); err != nil {
		return nil, err
	}

	report.Summary = Summarize(asset)
	report.Diagnostics = result.Diagnostics
	core.LogInfo("converted %s -> %s in %s", source, report.Output, report.Elapsed())
	return report, nil
}

func (c *Converter) timed(report *Report, stage Stage, fn func() error) error {
	report.clock.Start()
	err := fn()
	report.clock.Stop()
	report.Timings[stage] = report.clock.Elapsed()
	if err != nil {
		core.LogError("%s stage failed: %s", stage, err)
	}
	return err
}

// ConvertAll converts every source with up to workers conversions in flight.
// Reports keep the order of sources; a failed source leaves a nil report and
// its error is joined into the returned error.
func (c *Converter) ConvertAll(ctx context.Context, sources []string, workers int) ([]*Report, error) {
	js, err := systems.NewJobSystem(workers, len(sources))
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, len(sources))
	errs := make([]error, len(sources))
	for i, source := range sources {
		js.Submit(systems.JobTask{
			Name: source,
			OnStart: func() error {
				r, err := c.Convert(ctx, source, "")
				reports[i] = r
				return err
			},
			OnFailure: func(err error) {
				errs[i] = fmt.Errorf("%s: %w", source, err)
			},
		})
	}
	if err := js.Shutdown(); err != nil {
		return nil, err
	}
	return reports, errors.Join(errs...)
}

// Inspect loads a converted asset and describes it.
func (c *Converter) Inspect(path string) (*Summary, error) {
	res, err := c.assetManager.LoadAsset(path, nil)
	if err != nil {
		return nil, err
	}
	asset, ok := res.Data.(*serializer.Asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a character asset", core.ErrInvalidAsset, path)
	}
	return Summarize(asset), nil
}

// Watch converts every scene under dir now and again whenever it changes,
// until ctx is done. A failed conversion is logged and watching continues.
func (c *Converter) Watch(ctx context.Context, dir string) error {
	return c.assetManager.Watch(ctx, dir, func(info assets.AssetInfo) {
		start := time.Now()
		if _, err := c.Convert(ctx, info.Path, ""); err != nil {
			core.LogError("conversion of %s failed: %s", info.Path, err)
			return
		}
		core.LogDebug("%s handled in %s", info.Path, time.Since(start))
	})
}

package gltfscene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

// convertAnimation groups the channels of anim into one track per target node.
// Cubic spline samplers keep only their values, not the tangents.
func (c *converter) convertAnimation(anim *gltf.Animation) (scene.AnimationClip, error) {
	clip := scene.AnimationClip{Name: anim.Name}
	tracks := map[int]*scene.AnimationTrack{}
	order := []int{}

	for ch, channel := range anim.Channels {
		if channel.Target.Node == nil || *channel.Target.Node < 0 || *channel.Target.Node >= len(c.names) {
			continue
		}
		nodeIdx := *channel.Target.Node
		if channel.Sampler < 0 || channel.Sampler >= len(anim.Samplers) {
			return clip, fmt.Errorf("animation %q channel %d: missing sampler", anim.Name, ch)
		}
		sampler := anim.Samplers[channel.Sampler]

		times, values, err := c.readSampler(sampler)
		if err != nil {
			return clip, fmt.Errorf("animation %q channel %d: %w", anim.Name, ch, err)
		}

		track, ok := tracks[nodeIdx]
		if !ok {
			track = &scene.AnimationTrack{NodeName: c.names[nodeIdx]}
			tracks[nodeIdx] = track
			order = append(order, nodeIdx)
		}

		stride := 1
		offset := 0
		if sampler.Interpolation == gltf.InterpolationCubicSpline {
			stride, offset = 3, 1
		}

		switch channel.Target.Path {
		case gltf.TRSTranslation, gltf.TRSScale:
			vecs, ok := values.([][3]float32)
			if !ok {
				return clip, fmt.Errorf("animation %q channel %d: unexpected output type %T", anim.Name, ch, values)
			}
			for i, t := range times {
				k := i*stride + offset
				if k >= len(vecs) {
					break
				}
				v := math.NewVec3(vecs[k][0], vecs[k][1], vecs[k][2])
				if channel.Target.Path == gltf.TRSTranslation {
					track.Translations = append(track.Translations, resources.TranslationKey{Time: t, Value: v})
				} else {
					track.Scales = append(track.Scales, resources.ScaleKey{Time: t, Value: v})
				}
			}
		case gltf.TRSRotation:
			quats, ok := values.([][4]float32)
			if !ok {
				core.LogWarn("animation %q channel %d: rotation output %T not supported, skipping", anim.Name, ch, values)
				continue
			}
			for i, t := range times {
				k := i*stride + offset
				if k >= len(quats) {
					break
				}
				q := math.Quaternion{X: quats[k][0], Y: quats[k][1], Z: quats[k][2], W: quats[k][3]}
				track.Rotations = append(track.Rotations, resources.RotationKey{Time: t, Value: q})
			}
		default:
			core.LogDebug("animation %q channel %d: path %v ignored", anim.Name, ch, channel.Target.Path)
		}
	}

	for _, nodeIdx := range order {
		clip.Tracks = append(clip.Tracks, *tracks[nodeIdx])
	}
	return clip, nil
}

func (c *converter) readSampler(sampler *gltf.AnimationSampler) ([]float32, any, error) {
	inAcr, err := c.accessor(sampler.Input)
	if err != nil {
		return nil, nil, err
	}
	outAcr, err := c.accessor(sampler.Output)
	if err != nil {
		return nil, nil, err
	}

	input, err := modeler.ReadAccessor(c.doc, inAcr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	times, ok := input.([]float32)
	if !ok {
		return nil, nil, fmt.Errorf("input has type %T", input)
	}
	output, err := modeler.ReadAccessor(c.doc, outAcr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}
	return times, output, nil
}

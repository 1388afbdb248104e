package importer

import (
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
	"golang.org/x/exp/slices"
)

// ImportAnimations binds the tracks of every clip to skeleton joints by
// node name. Scenes without clips, or without a skeleton, yield nothing.
func ImportAnimations(sc scene.Scene, skeleton *resources.Skeleton, optimize bool, diag *core.Diagnostics) []*resources.Animation {
	animated, ok := sc.(scene.AnimatedScene)
	if !ok || skeleton.JointCount() == 0 {
		return nil
	}

	animations := []*resources.Animation{}
	for _, clip := range animated.AnimationClips() {
		anim := resources.NewAnimation(clip.Name, skeleton.JointCount())
		for _, track := range clip.Tracks {
			joint := skeleton.JointIndex(track.NodeName)
			if joint < 0 {
				diag.Report(core.DiagnosticUnmatchedTrack, "animation %q: track for %q has no matching joint", clip.Name, track.NodeName)
				continue
			}
			anim.Translations[joint] = append(anim.Translations[joint], track.Translations...)
			anim.Rotations[joint] = append(anim.Rotations[joint], track.Rotations...)
			anim.Scales[joint] = append(anim.Scales[joint], track.Scales...)
		}

		sortKeys(anim)
		anim.Duration = clip.Duration
		if anim.Duration <= 0 {
			anim.Duration = lastKeyTime(anim)
		}
		if optimize {
			before := anim.KeyCount()
			OptimizeAnimation(anim)
			core.LogDebug("animation %q: %d keys -> %d", anim.Name, before, anim.KeyCount())
		}
		animations = append(animations, anim)
	}
	return animations
}

func sortKeys(anim *resources.Animation) {
	for j := range anim.Translations {
		slices.SortStableFunc(anim.Translations[j], func(a, b resources.TranslationKey) int { return compareTime(a.Time, b.Time) })
		slices.SortStableFunc(anim.Rotations[j], func(a, b resources.RotationKey) int { return compareTime(a.Time, b.Time) })
		slices.SortStableFunc(anim.Scales[j], func(a, b resources.ScaleKey) int { return compareTime(a.Time, b.Time) })
	}
}

func compareTime(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func lastKeyTime(anim *resources.Animation) float32 {
	last := float32(0)
	for j := range anim.Translations {
		if n := len(anim.Translations[j]); n > 0 && anim.Translations[j][n-1].Time > last {
			last = anim.Translations[j][n-1].Time
		}
		if n := len(anim.Rotations[j]); n > 0 && anim.Rotations[j][n-1].Time > last {
			last = anim.Rotations[j][n-1].Time
		}
		if n := len(anim.Scales[j]); n > 0 && anim.Scales[j][n-1].Time > last {
			last = anim.Scales[j][n-1].Time
		}
	}
	return last
}

// OptimizeAnimation drops keys whose value matches both the previous kept
// key and the next key. First and last keys always stay.
func OptimizeAnimation(anim *resources.Animation) {
	for j := range anim.Translations {
		anim.Translations[j] = dropRedundantKeys(anim.Translations[j], func(a, b resources.TranslationKey) bool { return a.Value == b.Value })
		anim.Rotations[j] = dropRedundantKeys(anim.Rotations[j], func(a, b resources.RotationKey) bool { return a.Value == b.Value })
		anim.Scales[j] = dropRedundantKeys(anim.Scales[j], func(a, b resources.ScaleKey) bool { return a.Value == b.Value })
	}
}

func dropRedundantKeys[K any](keys []K, same func(a, b K) bool) []K {
	if len(keys) < 3 {
		return keys
	}
	out := make([]K, 0, len(keys))
	out = append(out, keys[0])
	for i := 1; i < len(keys)-1; i++ {
		if same(out[len(out)-1], keys[i]) && same(keys[i], keys[i+1]) {
			continue
		}
		out = append(out, keys[i])
	}
	return append(out, keys[len(keys)-1])
}

package resources

import "github.com/spaghettifunk/animaconv/engine/math"

type TranslationKey struct {
	Time  float32
	Value math.Vec3
}

type RotationKey struct {
	Time  float32
	Value math.Quaternion
}

type ScaleKey struct {
	Time  float32
	Value math.Vec3
}

/**
 * @brief Keyframed joint tracks. The track slices are indexed by joint
 * index and have one entry per skeleton joint.
 */
type Animation struct {
	Name string
	/** @brief Length of the clip in seconds. */
	Duration     float32
	Translations [][]TranslationKey
	Rotations    [][]RotationKey
	Scales       [][]ScaleKey
}

func NewAnimation(name string, jointCount int) *Animation {
	return &Animation{
		Name:         name,
		Translations: make([][]TranslationKey, jointCount),
		Rotations:    make([][]RotationKey, jointCount),
		Scales:       make([][]ScaleKey, jointCount),
	}
}

func (a *Animation) JointCount() int {
	return len(a.Translations)
}

func (a *Animation) KeyCount() int {
	n := 0
	for i := range a.Translations {
		n += len(a.Translations[i]) + len(a.Rotations[i]) + len(a.Scales[i])
	}
	return n
}

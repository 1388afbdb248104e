package importer

import (
	"fmt"

	"github.com/spaghettifunk/animaconv/engine/containers"
	"github.com/spaghettifunk/animaconv/engine/core"
	"github.com/spaghettifunk/animaconv/engine/math"
	"github.com/spaghettifunk/animaconv/engine/resources"
	"github.com/spaghettifunk/animaconv/engine/scene"
)

type traversalFrame struct {
	node   scene.Node
	parent int16
}

// BuildSkeleton collects the skeleton nodes below the scene root in
// depth-first pre-order. A joint's parent is its nearest joint ancestor.
// Inverse bind poses come from the skin clusters; the returned slice marks
// the joints that bind at least one control point. Hierarchies with more
// than MAX_JOINT_COUNT joints are refused with core.ErrTooManyJoints.
func BuildSkeleton(sc scene.Scene) (*resources.Skeleton, []bool, error) {
	skeleton := &resources.Skeleton{}
	root := sc.RootNode()
	if root == nil {
		return skeleton, nil, nil
	}

	stack := containers.NewStack[traversalFrame](16)
	pushChildren(stack, root, resources.InvalidJointIndex)

	for !stack.IsEmpty() {
		frame, _ := stack.Pop()
		parent := frame.parent
		if frame.node.IsSkeleton() {
			if len(skeleton.Joints) == resources.MAX_JOINT_COUNT {
				return nil, nil, fmt.Errorf("%w: more than %d joints", core.ErrTooManyJoints, resources.MAX_JOINT_COUNT)
			}
			skeleton.Joints = append(skeleton.Joints, resources.Joint{
				Name:            frame.node.Name(),
				ParentIndex:     frame.parent,
				InverseBindPose: math.NewMat4Identity(),
			})
			parent = int16(len(skeleton.Joints) - 1)
		}
		pushChildren(stack, frame.node, parent)
	}

	used := make([]bool, len(skeleton.Joints))
	for _, mesh := range sc.Meshes() {
		for _, skin := range mesh.SkinDeformers() {
			for _, cluster := range skin.Clusters {
				idx := skeleton.JointIndex(cluster.JointName)
				if idx < 0 {
					core.LogDebug("cluster %q on mesh %q does not name a joint", cluster.JointName, mesh.Name())
					continue
				}
				skeleton.Joints[idx].InverseBindPose = cluster.TransformLink.Inverse()
				if len(cluster.ControlPoints) > 0 {
					used[idx] = true
				}
			}
		}
	}

	core.LogDebug("skeleton: %d joints", len(skeleton.Joints))
	return skeleton, used, nil
}

// Children are pushed in reverse so the first child is visited first.
func pushChildren(stack *containers.Stack[traversalFrame], node scene.Node, parent int16) {
	children := node.Children()
	for i := len(children) - 1; i >= 0; i-- {
		stack.Push(traversalFrame{node: children[i], parent: parent})
	}
}

// PruneSkeleton removes unused joints that have no children in a single
// forward pass. Child checks see the skeleton as already shifted by earlier
// removals, so a parent emptied later in the same pass survives. It returns
// the number of joints removed and the used flags of the remaining joints.
func PruneSkeleton(skeleton *resources.Skeleton, used []bool) (int, []bool) {
	removed := 0
	kept := make([]bool, 0, len(used))
	for i := 0; i < len(used); i++ {
		current := i - removed
		if !used[i] && !skeleton.HasChild(current) {
			core.LogDebug("pruning joint %q", skeleton.Joints[current].Name)
			skeleton.RemoveJoint(current)
			removed++
			continue
		}
		kept = append(kept, used[i])
	}
	return removed, kept
}

// PruneSkeletonToFixedPoint repeats PruneSkeleton until a pass removes nothing.
func PruneSkeletonToFixedPoint(skeleton *resources.Skeleton, used []bool) int {
	total := 0
	for {
		removed, kept := PruneSkeleton(skeleton, used)
		if removed == 0 {
			return total
		}
		total += removed
		used = kept
	}
}

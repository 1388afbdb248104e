package resources

import "github.com/spaghettifunk/animaconv/engine/math"

const InvalidJointIndex int16 = -1

/** @brief Joint indices must fit both the int16 parent index and the uint16 vertex joint index. */
const MAX_JOINT_COUNT = 1 << 15

/**
 * @brief A single joint of a skeleton.
 */
type Joint struct {
	Name string
	/** @brief Index of the parent joint, or InvalidJointIndex for a root. */
	ParentIndex int16
	/** @brief Transforms a mesh-space vertex into joint space. */
	InverseBindPose math.Mat4
}

/**
 * @brief An ordered list of joints. A parent always precedes its children.
 */
type Skeleton struct {
	Joints []Joint
}

func (s *Skeleton) JointCount() int {
	if s == nil {
		return 0
	}
	return len(s.Joints)
}

// JointIndex returns the index of the first joint named name, or -1.
func (s *Skeleton) JointIndex(name string) int {
	if s == nil {
		return -1
	}
	for i := range s.Joints {
		if s.Joints[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Skeleton) HasChild(index int) bool {
	for i := range s.Joints {
		if int(s.Joints[i].ParentIndex) == index {
			return true
		}
	}
	return false
}

// RemoveJoint erases the joint at index and shifts every later parent
// reference above index down by one.
func (s *Skeleton) RemoveJoint(index int) {
	s.Joints = append(s.Joints[:index], s.Joints[index+1:]...)
	for i := index; i < len(s.Joints); i++ {
		if int(s.Joints[i].ParentIndex) > index {
			s.Joints[i].ParentIndex--
		}
	}
}

// Validate reports the first joint whose parent does not precede it.
func (s *Skeleton) Validate() (int, bool) {
	for i := range s.Joints {
		p := int(s.Joints[i].ParentIndex)
		if p != int(InvalidJointIndex) && (p < 0 || p >= i) {
			return i, false
		}
	}
	return -1, true
}

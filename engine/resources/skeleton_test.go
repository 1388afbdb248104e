package resources

import "testing"

func TestSkeletonJointIndexFirstMatch(t *testing.T) {
	s := &Skeleton{Joints: []Joint{
		{Name: "root", ParentIndex: -1},
		{Name: "arm", ParentIndex: 0},
		{Name: "arm", ParentIndex: 0},
	}}
	if got := s.JointIndex("arm"); got != 1 {
		t.Fatalf("JointIndex(arm) = %d, want 1", got)
	}
	if got := s.JointIndex("leg"); got != -1 {
		t.Fatalf("JointIndex(leg) = %d, want -1", got)
	}
	var empty *Skeleton
	if empty.JointIndex("root") != -1 || empty.JointCount() != 0 {
		t.Fatal("nil skeleton should have no joints")
	}
}

func TestSkeletonRemoveJointShiftsParents(t *testing.T) {
	s := &Skeleton{Joints: []Joint{
		{Name: "root", ParentIndex: -1},
		{Name: "a", ParentIndex: 0},
		{Name: "b", ParentIndex: 0},
		{Name: "c", ParentIndex: 2},
	}}
	s.RemoveJoint(1)

	want := []int16{-1, 0, 1}
	if len(s.Joints) != len(want) {
		t.Fatalf("got %d joints, want %d", len(s.Joints), len(want))
	}
	for i, p := range want {
		if s.Joints[i].ParentIndex != p {
			t.Errorf("joint %d parent = %d, want %d", i, s.Joints[i].ParentIndex, p)
		}
	}
	if _, ok := s.Validate(); !ok {
		t.Fatal("skeleton should stay valid")
	}
}

func TestVertexWeights(t *testing.T) {
	tests := []struct {
		name string
		in   [3]float32
		want [4]float32
	}{
		{"single", [3]float32{1, 0, 0}, [4]float32{1, 0, 0, 0}},
		{"implicit fourth", [3]float32{0.5, 0.25, 0.125}, [4]float32{0.5, 0.25, 0.125, 0.125}},
		{"unskinned", [3]float32{}, [4]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vertex{JointWeights: tt.in}.Weights()
			if got != tt.want {
				t.Fatalf("Weights() = %v, want %v", got, tt.want)
			}
		})
	}
}

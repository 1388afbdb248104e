package importer

import (
	m "math"
	"testing"

	"github.com/spaghettifunk/animaconv/engine/math"
)

func TestVertexDeduplicatorFirstSeenOrder(t *testing.T) {
	d := NewVertexDeduplicator(4)
	inputs := []struct {
		pos       math.Vec3
		uv        math.Vec2
		wantIndex uint32
		wantAdded bool
	}{
		{math.NewVec3(0, 0, 0), math.NewVec2(0, 0), 0, true},
		{math.NewVec3(1, 0, 0), math.NewVec2(1, 0), 1, true},
		{math.NewVec3(0, 0, 0), math.NewVec2(0, 0), 0, false},
		{math.NewVec3(0, 0, 0), math.NewVec2(0, 1), 2, true},
		{math.NewVec3(1, 0, 0), math.NewVec2(1, 0), 1, false},
	}
	for i, in := range inputs {
		idx, added := d.Insert(in.pos, in.uv)
		if idx != in.wantIndex || added != in.wantAdded {
			t.Fatalf("insert %d: got (%d, %v), want (%d, %v)", i, idx, added, in.wantIndex, in.wantAdded)
		}
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	if d.Vertices()[2].Texcoord != math.NewVec2(0, 1) {
		t.Fatalf("vertex 2 uv = %v", d.Vertices()[2].Texcoord)
	}
}

func TestVertexDeduplicatorSignedZero(t *testing.T) {
	d := NewVertexDeduplicator(2)
	negZero := float32(m.Copysign(0, -1))
	a, _ := d.Insert(math.NewVec3(0, 1, 0), math.NewVec2(0, 0))
	b, added := d.Insert(math.NewVec3(negZero, 1, 0), math.NewVec2(0, negZero))
	if added || a != b {
		t.Fatalf("-0 and +0 should share a vertex, got %d and %d", a, b)
	}
}

func TestVertexDeduplicatorExhaustive(t *testing.T) {
	d := NewVertexDeduplicator(0)
	for i := 0; i < 200; i++ {
		x := float32(i % 17)
		u := float32(i % 5)
		d.Insert(math.NewVec3(x, 0, 0), math.NewVec2(u, 0))
	}
	verts := d.Vertices()
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if verts[i].Position == verts[j].Position && verts[i].Texcoord == verts[j].Texcoord {
				t.Fatalf("vertices %d and %d are duplicates", i, j)
			}
		}
	}
	if len(verts) != 85 {
		t.Fatalf("got %d distinct vertices, want 85", len(verts))
	}
}

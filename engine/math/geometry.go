package math

// NewExtents3DEmpty returns inverted extents that any point will grow.
func NewExtents3DEmpty() Extents3D {
	return Extents3D{
		Min: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
		Max: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
	}
}

// Grow expands the extents to include point.
func (e Extents3D) Grow(point Vec3) Extents3D {
	return Extents3D{Min: e.Min.Min(point), Max: e.Max.Max(point)}
}

func (e Extents3D) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y || e.Min.Z > e.Max.Z
}

func (e Extents3D) Size() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return e.Max.Sub(e.Min)
}

func (e Extents3D) Center() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return Vec3{
		(e.Min.X + e.Max.X) * 0.5,
		(e.Min.Y + e.Max.Y) * 0.5,
		(e.Min.Z + e.Max.Z) * 0.5,
	}
}

// ExtentsFromPoints computes the axis-aligned bounds of a point cloud.
func ExtentsFromPoints(points []Vec3) Extents3D {
	e := NewExtents3DEmpty()
	for _, p := range points {
		e = e.Grow(p)
	}
	return e
}

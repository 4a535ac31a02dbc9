package geo

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3 `yaml:"min" json:"min"`
	Max Vec3 `yaml:"max" json:"max"`
}

// Box returns the AABB centred on center with the given full size.
func Box(center, size Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Size returns the full extent on each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Extents returns half the size on each axis.
func (b AABB) Extents() Vec3 {
	return b.Size().Mul(0.5)
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Encapsulate returns the smallest box containing both b and o.
func (b AABB) Encapsulate(o AABB) AABB {
	out := b
	for k := 0; k < 3; k++ {
		if o.Min[k] < out.Min[k] {
			out.Min[k] = o.Min[k]
		}
		if o.Max[k] > out.Max[k] {
			out.Max[k] = o.Max[k]
		}
	}
	return out
}

// Translate returns b moved by offset.
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] || p[k] > b.Max[k] {
			return false
		}
	}
	return true
}

// IsZero reports whether the box is the zero value.
func (b AABB) IsZero() bool {
	return b.Min == Vec3{} && b.Max == Vec3{}
}

// Union encapsulates every box in bs. ok is false when bs is empty.
func Union(bs []AABB) (AABB, bool) {
	if len(bs) == 0 {
		return AABB{}, false
	}
	out := bs[0]
	for _, b := range bs[1:] {
		out = out.Encapsulate(b)
	}
	return out, true
}

// Rotated returns the axis-aligned box enclosing b after rotating it about
// the origin by q.
func (b AABB) Rotated(q Quat) AABB {
	c := q.Rotate(b.Center())
	e := b.Extents()
	var half Vec3
	for j := 0; j < 3; j++ {
		var axis Vec3
		axis[j] = 1
		r := q.Rotate(axis).Mul(e[j])
		for k := 0; k < 3; k++ {
			half[k] += math.Abs(r[k])
		}
	}
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector; Y is up.
type Vec3 = mgl64.Vec3

// Quat is a rotation quaternion.
type Quat = mgl64.Quat

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// V3 is a shorthand constructor for Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// SafeNormalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func SafeNormalize(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// RightOf returns the horizontal right vector for a forward tangent (up × tangent).
func RightOf(tangent Vec3) Vec3 {
	r := SafeNormalize(Up.Cross(tangent))
	if r.Len() == 0 {
		// Vertical tangent: any horizontal axis will do.
		return Vec3{1, 0, 0}
	}
	return r
}

// WithY returns v with its Y component replaced.
func WithY(v Vec3, y float64) Vec3 {
	return Vec3{v[0], y, v[2]}
}

// LookRotation returns the rotation whose +Z axis points along forward and
// whose +Y axis is as close to up as possible.
func LookRotation(forward, up Vec3) Quat {
	f := SafeNormalize(forward)
	if f.Len() == 0 {
		return mgl64.QuatIdent()
	}
	r := SafeNormalize(up.Cross(f))
	if r.Len() == 0 {
		// forward is parallel to up; pick any perpendicular right axis.
		r = SafeNormalize(Vec3{0, 0, 1}.Cross(f))
		if r.Len() == 0 {
			r = Vec3{1, 0, 0}
		}
	}
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// FromToRotation returns the shortest rotation taking direction a onto b.
func FromToRotation(a, b Vec3) Quat {
	return mgl64.QuatBetweenVectors(SafeNormalize(a), SafeNormalize(b))
}

// YawRotation returns a rotation of deg degrees around world up.
func YawRotation(deg float64) Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// Blend interpolates spherically from a to b by t in [0,1].
func Blend(a, b Quat, t float64) Quat {
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// QuatArray encodes q as [x, y, z, w].
func QuatArray(q Quat) [4]float64 {
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

// QuatFromArray decodes an [x, y, z, w] rotation.
func QuatFromArray(a [4]float64) Quat {
	return Quat{W: a[3], V: Vec3{a[0], a[1], a[2]}}
}

// Forward returns the +Z axis of rotation q.
func Forward(q Quat) Vec3 {
	return q.Rotate(Vec3{0, 0, 1})
}

// RightAxis returns the +X axis of rotation q.
func RightAxis(q Quat) Vec3 {
	return q.Rotate(Vec3{1, 0, 0})
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns 1 for v >= 0 and -1 otherwise.
func Sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func approxVec(a, b Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

// --- Vec3 tests ---

func TestSafeNormalizeZero(t *testing.T) {
	if n := SafeNormalize(Vec3{}); n != (Vec3{}) {
		t.Errorf("expected zero vector, got %v", n)
	}
}

func TestRightOfForward(t *testing.T) {
	r := RightOf(V3(0, 0, 1))
	if !approxVec(r, V3(1, 0, 0), tolerance) {
		t.Errorf("expected +X right for +Z forward, got %v", r)
	}
	r = RightOf(V3(1, 0, 0))
	if !approxVec(r, V3(0, 0, -1), tolerance) {
		t.Errorf("expected -Z right for +X forward, got %v", r)
	}
}

func TestRightOfIgnoresSlope(t *testing.T) {
	r := RightOf(SafeNormalize(V3(0, 1, 1)))
	if !approxEqual(r.Y(), 0, tolerance) || !approxEqual(r.Len(), 1, tolerance) {
		t.Errorf("right vector should be horizontal unit, got %v", r)
	}
}

// --- Quat tests ---

func TestLookRotationIdentity(t *testing.T) {
	q := LookRotation(V3(0, 0, 1), Up)
	if !approxVec(Forward(q), V3(0, 0, 1), tolerance) {
		t.Errorf("forward should stay +Z, got %v", Forward(q))
	}
	if !approxVec(RightAxis(q), V3(1, 0, 0), tolerance) {
		t.Errorf("right should stay +X, got %v", RightAxis(q))
	}
}

func TestLookRotationAlongX(t *testing.T) {
	q := LookRotation(V3(1, 0, 0), Up)
	if !approxVec(Forward(q), V3(1, 0, 0), tolerance) {
		t.Errorf("forward should be +X, got %v", Forward(q))
	}
	if !approxVec(q.Rotate(Up), Up, tolerance) {
		t.Errorf("up should be preserved, got %v", q.Rotate(Up))
	}
}

func TestLookRotationDegenerate(t *testing.T) {
	q := LookRotation(Vec3{}, Up)
	if !approxEqual(q.W, 1, tolerance) {
		t.Errorf("zero forward should give identity, got %v", q)
	}
	q = LookRotation(Up, Up)
	if !approxVec(Forward(q), Up, tolerance) {
		t.Errorf("forward parallel to up should still point up, got %v", Forward(q))
	}
}

func TestFromToRotation(t *testing.T) {
	n := SafeNormalize(V3(1, 1, 0))
	q := FromToRotation(Up, n)
	if !approxVec(q.Rotate(Up), n, tolerance) {
		t.Errorf("expected up rotated onto %v, got %v", n, q.Rotate(Up))
	}
}

func TestYawRotation(t *testing.T) {
	q := YawRotation(90)
	f := Forward(q)
	if !approxVec(f, V3(1, 0, 0), tolerance) {
		t.Errorf("90 degree yaw should turn +Z to +X, got %v", f)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := LookRotation(V3(0, 0, 1), Up)
	b := YawRotation(60)
	if got := Blend(a, b, 0); !approxVec(Forward(got), Forward(a), tolerance) {
		t.Errorf("t=0 should equal a")
	}
	if got := Blend(a, b, 1); !approxVec(Forward(got), Forward(b), tolerance) {
		t.Errorf("t=1 should equal b")
	}
}

func TestQuatArrayRoundTrip(t *testing.T) {
	q := YawRotation(33)
	back := QuatFromArray(QuatArray(q))
	if !approxEqual(back.W, q.W, 1e-12) || !approxVec(back.V, q.V, 1e-12) {
		t.Errorf("round trip mismatch: %v vs %v", back, q)
	}
}

// --- AABB tests ---

func TestAABBEncapsulate(t *testing.T) {
	a := Box(V3(0, 0, 0), V3(2, 2, 2))
	b := Box(V3(3, 0, 0), V3(2, 4, 2))
	u := a.Encapsulate(b)
	if !approxVec(u.Size(), V3(5, 4, 2), tolerance) {
		t.Errorf("expected size (5,4,2), got %v", u.Size())
	}
	if !approxVec(u.Extents(), V3(2.5, 2, 1), tolerance) {
		t.Errorf("expected extents (2.5,2,1), got %v", u.Extents())
	}
}

func TestUnionEmpty(t *testing.T) {
	if _, ok := Union(nil); ok {
		t.Error("union of nothing should report !ok")
	}
}

func TestClampAndSign(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("clamp out of range")
	}
	if Sign(0) != 1 || Sign(-0.1) != -1 {
		t.Error("sign convention: zero counts as positive")
	}
}

func TestAABBRotated(t *testing.T) {
	b := Box(V3(0, 0, 0), V3(1, 2, 4))
	r := b.Rotated(YawRotation(90))
	if !approxVec(r.Size(), V3(4, 2, 1), tolerance) {
		t.Errorf("quarter yaw should swap X and Z, got %v", r.Size())
	}
	r = b.Rotated(YawRotation(45))
	if r.Size().X() <= 1 || r.Size().Z() <= 1 {
		t.Errorf("diagonal yaw should grow the footprint, got %v", r.Size())
	}
}

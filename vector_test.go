package bounce

import (
	"math"
	"testing"
)

func TestVector_Normalize(t *testing.T) {
	v := Vector{}
	u := v.Normalize()
	if u.X != 0.0 || u.Y != 0.0 {
		t.Errorf("Expected zero vector, got %v", u)
	}
}

func TestVector_ReflectRoundTrip(t *testing.T) {
	v := Vector{3, -7}
	n := Vector{1, 2}.Normalize()

	back := v.Reflect(n).Reflect(n)
	if math.Abs(back.X-v.X) > 1e-12 || math.Abs(back.Y-v.Y) > 1e-12 {
		t.Errorf("double reflection changed the vector: %v -> %v", v, back)
	}
}

func TestVector_ReflectAgainstWall(t *testing.T) {
	v := Vector{10, 5}
	n := Vector{-1, 0}

	r := v.Reflect(n)
	if r.X != -10 || r.Y != 5 {
		t.Errorf("expected (-10,5), got %v", r)
	}
	if math.Abs(r.Length()-v.Length()) > 1e-12 {
		t.Error("reflection changed the speed")
	}
}

func TestVector_ClosestPointOnSegment(t *testing.T) {
	a := Vector{0, 0}
	b := Vector{10, 0}

	p := Vector{4, 3}.ClosestPointOnSegment(a, b)
	if p.X != 4 || p.Y != 0 {
		t.Errorf("expected (4,0), got %v", p)
	}

	p = Vector{-5, 3}.ClosestPointOnSegment(a, b)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected clamp to endpoint a, got %v", p)
	}
}

package bounce

import (
	"math"
	"testing"
)

func TestSweptCirclePoint_HeadOn(t *testing.T) {
	var info SweepInfo
	hit := SweptCirclePoint(Vector{20, 0}, Vector{0, 0}, Vector{10, 0}, 5, 5, &info)

	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(info.Toi-1.5) > 1e-9 {
		t.Errorf("expected toi 1.5, got %v", info.Toi)
	}
	if math.Abs(info.Normal.X+1) > 1e-9 || math.Abs(info.Normal.Y) > 1e-9 {
		t.Errorf("expected normal (-1,0), got %v", info.Normal)
	}
}

func TestSweptCirclePoint_PassesBy(t *testing.T) {
	var info SweepInfo
	// Closest approach is 10 units, twice the radius.
	if SweptCirclePoint(Vector{20, 10}, Vector{0, 0}, Vector{10, 0}, 5, 5, &info) {
		t.Error("expected a miss")
	}
}

func TestSweptCirclePoint_OutsideWindow(t *testing.T) {
	var info SweepInfo
	// Same ray as the head-on case, but the window closes before contact.
	if SweptCirclePoint(Vector{20, 0}, Vector{0, 0}, Vector{10, 0}, 5, 1, &info) {
		t.Error("expected no hit inside a 1s window")
	}
}

func TestSweptCirclePoint_StationaryOverlap(t *testing.T) {
	var info SweepInfo
	hit := SweptCirclePoint(Vector{20, 0}, Vector{19, 0}, Vector{}, 5, 1, &info)

	if !hit {
		t.Fatal("expected an immediate contact")
	}
	if info.Toi != 0 {
		t.Errorf("expected toi 0, got %v", info.Toi)
	}
	// Normal must push the circle away from the point.
	if info.Normal.Dot(Vector{-1, 0}) <= 0 {
		t.Errorf("normal %v points the wrong way", info.Normal)
	}
	if math.Abs(info.Normal.Length()-1) > 1e-9 {
		t.Errorf("normal %v is not unit length", info.Normal)
	}
}

func TestSweptCirclePoint_StationarySeparating(t *testing.T) {
	var info SweepInfo
	// Overlapping but creeping away: the degenerate branch must stay quiet.
	if SweptCirclePoint(Vector{20, 0}, Vector{19, 0}, Vector{-0.001, 0}, 5, 1, &info) {
		t.Error("expected no hit while separating")
	}
}

func TestSweptCirclePoint_ToiStaysInWindow(t *testing.T) {
	var info SweepInfo
	cases := []struct {
		point, center, vel Vector
		r, dtMax           float64
	}{
		{Vector{20, 0}, Vector{0, 0}, Vector{10, 0}, 5, 5},
		{Vector{3, 4}, Vector{0, 0}, Vector{1, 1}, 2, 10},
		{Vector{0, 0}, Vector{-1, 0}, Vector{0.5, 0}, 3, 8},
	}
	for _, c := range cases {
		if !SweptCirclePoint(c.point, c.center, c.vel, c.r, c.dtMax, &info) {
			continue
		}
		if info.Toi < 0 || info.Toi > c.dtMax+MAGIC_EPSILON {
			t.Errorf("toi %v outside [0, %v]", info.Toi, c.dtMax)
		}
		if math.Abs(info.Normal.Length()-1) > 1e-6 {
			t.Errorf("normal %v is not unit length", info.Normal)
		}
	}
}

func TestSweptCircleSegment_Face(t *testing.T) {
	var info SweepInfo
	a, b := Vector{10, -5}, Vector{10, 5}
	hit := SweptCircleSegment(a, b, Vector{0, 0}, Vector{10, 0}, 2, 5, &info)

	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(info.Toi-0.8) > 1e-9 {
		t.Errorf("expected toi 0.8, got %v", info.Toi)
	}
	if math.Abs(info.Normal.X+1) > 1e-9 || math.Abs(info.Normal.Y) > 1e-9 {
		t.Errorf("expected normal (-1,0), got %v", info.Normal)
	}
}

func TestSweptCircleSegment_MissesOffsetSpan(t *testing.T) {
	var info SweepInfo
	// The circle crosses the segment's infinite line, but the contact point
	// lies below the segment's span and outside endpoint reach.
	a, b := Vector{10, 5}, Vector{10, 15}
	if SweptCircleSegment(a, b, Vector{0, 0}, Vector{10, 0}, 2, 5, &info) {
		t.Errorf("expected a miss, got toi %v", info.Toi)
	}
}

func TestSweptCircleSegment_EndpointOwnsCorner(t *testing.T) {
	var info SweepInfo
	// Grazing past the lower endpoint: close enough to clip it.
	a, b := Vector{10, 3}, Vector{10, 15}
	hit := SweptCircleSegment(a, b, Vector{0, 0}, Vector{10, 0}, 5, 5, &info)

	if !hit {
		t.Fatal("expected an endpoint hit")
	}
	// Endpoint contact pushes partly downward, never a pure face normal.
	if info.Normal.Y >= 0 {
		t.Errorf("expected a downward normal component, got %v", info.Normal)
	}
}

func TestSweptCircleSegment_DegenerateSegment(t *testing.T) {
	var info SweepInfo
	p := Vector{20, 0}
	hit := SweptCircleSegment(p, p, Vector{0, 0}, Vector{10, 0}, 5, 5, &info)

	if !hit {
		t.Fatal("expected the zero-length segment to act as a point")
	}
	if math.Abs(info.Toi-1.5) > 1e-9 {
		t.Errorf("expected toi 1.5, got %v", info.Toi)
	}
}

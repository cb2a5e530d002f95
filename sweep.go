package bounce

import "math"

const INFINITY = math.MaxFloat64
const MAGIC_EPSILON = 1e-5

/// SweepInfo holds the result of a swept collision query.
type SweepInfo struct {
	/// Time of impact inside the queried window, in seconds.
	Toi float64
	/// Unit surface normal at the point of impact, pointing toward the circle.
	Normal Vector
}

// SweptCirclePoint finds the earliest time in [0, dtMax] at which a circle of
// radius r moving from center with velocity vel touches a fixed point. It
// solves |center + vel*t - point|^2 = r^2 for the smallest root in range.
func SweptCirclePoint(point, center, vel Vector, r, dtMax float64, info *SweepInfo) bool {
	rel := center.Sub(point)

	qa := vel.Dot(vel)
	qb := 2 * rel.Dot(vel)
	qc := rel.Dot(rel) - r*r

	if qa < MAGIC_EPSILON {
		// Effectively stationary: only an existing overlap counts, and only
		// while not separating.
		if qc <= 0 && qb < MAGIC_EPSILON {
			info.Toi = 0
			if rel.LengthSq() >= MAGIC_EPSILON {
				info.Normal = rel.Normalize()
			} else if vel.LengthSq() >= MAGIC_EPSILON {
				info.Normal = vel.Neg().Normalize()
			} else {
				info.Normal = Vector{0, -1}
			}
			return true
		}
		return false
	}

	det := qb*qb - 4*qa*qc
	if det < 0 {
		return false
	}

	sqrtDet := math.Sqrt(det)
	t1 := (-qb - sqrtDet) / (2 * qa)
	t2 := (-qb + sqrtDet) / (2 * qa)

	t := -1.0
	if t1 >= -MAGIC_EPSILON && t1 <= dtMax+MAGIC_EPSILON {
		t = t1
	}
	if t2 >= -MAGIC_EPSILON && t2 <= dtMax+MAGIC_EPSILON && (t < -MAGIC_EPSILON || t2 < t) {
		t = t2
	}
	if t < -MAGIC_EPSILON {
		return false
	}

	info.Toi = math.Max(0, t)

	// Normal from the point to the circle center at the instant of contact,
	// not at t=0.
	n := center.Add(vel.Mult(info.Toi)).Sub(point)
	if n.LengthSq() < MAGIC_EPSILON {
		n = rel
	}
	if n.LengthSq() < MAGIC_EPSILON {
		info.Normal = Vector{0, -1}
	} else {
		info.Normal = n.Normalize()
	}
	return true
}

// SweptCircleSegment finds the earliest time in [0, dtMax] at which a moving
// circle touches the segment ab. The answer is the minimum over three
// sub-cases: each endpoint as a point obstacle, and the infinite line through
// the segment restricted to the segment's span.
func SweptCircleSegment(a, b, center, vel Vector, r, dtMax float64, info *SweepInfo) bool {
	minToi := dtMax + MAGIC_EPSILON
	var normal Vector
	hit := false

	var end SweepInfo
	if SweptCirclePoint(a, center, vel, r, dtMax, &end) && end.Toi < minToi {
		minToi = end.Toi
		normal = end.Normal
		hit = true
	}
	if SweptCirclePoint(b, center, vel, r, dtMax, &end) && end.Toi < minToi {
		minToi = end.Toi
		normal = end.Normal
		hit = true
	}

	seg := b.Sub(a)
	segLenSq := seg.LengthSq()
	if segLenSq < MAGIC_EPSILON {
		// Zero-length segment, the endpoint tests already covered it.
		if hit {
			info.Toi = minToi
			info.Normal = normal
		}
		return hit
	}

	dir := seg.Normalize()
	perp := dir.Perp()

	// Signed distance from the circle center to the line and the velocity
	// component crossing it.
	dist := center.Sub(a).Dot(perp)
	approach := vel.Dot(perp)

	if math.Abs(approach) >= MAGIC_EPSILON {
		// Times at which the center crosses the +r / -r offset lines.
		t1 := (r - dist) / approach
		t2 := (-r - dist) / approach

		t := -1.0
		if t1 >= -MAGIC_EPSILON && t1 <= dtMax+MAGIC_EPSILON {
			t = t1
		}
		if t2 >= -MAGIC_EPSILON && t2 <= dtMax+MAGIC_EPSILON && (t < -MAGIC_EPSILON || t2 < t) {
			t = t2
		}

		if t >= -MAGIC_EPSILON && t < minToi {
			at := center.Add(vel.Mult(t))
			onLine := at.Sub(perp.Mult(at.Sub(a).Dot(perp)))
			proj := onLine.Sub(a).Dot(dir)

			// Accept as a line hit only if the contact point lies within the
			// segment's span; otherwise the endpoint cases own it.
			if proj >= -MAGIC_EPSILON && proj <= math.Sqrt(segLenSq)+MAGIC_EPSILON {
				n := at.Sub(onLine)
				if n.LengthSq() < MAGIC_EPSILON {
					if dist > 0 {
						n = perp
					} else {
						n = perp.Neg()
					}
				} else {
					n = n.Normalize()
				}
				minToi = t
				normal = n
				hit = true
			}
		}
	}

	if hit {
		info.Toi = math.Max(0, minToi)
		if normal.LengthSq() < MAGIC_EPSILON {
			if vel.LengthSq() >= MAGIC_EPSILON {
				normal = vel.Neg().Normalize()
			} else {
				normal = Vector{0, -1}
			}
		}
		info.Normal = normal
	}
	return hit
}

package bounce

import "math"

const DegreeConst = 180.0 / math.Pi

// ArcCallback observes a ball touching an arc ring or escaping through its
// gap. Callbacks run synchronously, in registration order, on the stepping
// goroutine.
type ArcCallback func(shape *Shape, ball *Ball)

// ArcData describes a partial ring: a centerline radius with material
// thickness split evenly to either side, spanning StartAngle..EndAngle
// degrees, spun by Rotation.
type ArcData struct {
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Thickness  float64
	// Rotation is the current spin offset in degrees, kept in [0, 360).
	Rotation      float64
	RotationSpeed float64
	// RemoveEscaped marks balls that leave through the gap for removal.
	RemoveEscaped bool

	collisionCallbacks []ArcCallback
	escapeCallbacks    []ArcCallback
}

func (arc *ArcData) outerRadius() float64 { return arc.Radius + arc.Thickness/2 }
func (arc *ArcData) innerRadius() float64 { return arc.Radius - arc.Thickness/2 }

// NewArcRing returns a partial-ring obstacle. Angles are in degrees measured
// counterclockwise from +X; rotationSpeed is in degrees per second.
func NewArcRing(position, velocity Vector, radius, startAngle, endAngle, thickness float64, color Color, static bool, rotationSpeed float64, removeEscaped bool) *Shape {
	if static {
		velocity = Vector{}
	}
	return &Shape{
		kind:     ShapeArcRing,
		Position: position,
		Velocity: velocity,
		Static:   static,
		Color:    color,
		arc: ArcData{
			Radius:        radius,
			StartAngle:    startAngle,
			EndAngle:      endAngle,
			Thickness:     thickness,
			RotationSpeed: rotationSpeed,
			RemoveEscaped: removeEscaped,
		},
	}
}

// Arc returns a copy of the ring's geometry, mainly for rendering.
func (shape *Shape) Arc() ArcData {
	return shape.arc
}

// OnArcCollision registers a callback fired whenever a ball makes geometric
// contact with the ring. No-op for other shape kinds.
func (shape *Shape) OnArcCollision(fn ArcCallback) {
	if shape.kind != ShapeArcRing || fn == nil {
		return
	}
	shape.arc.collisionCallbacks = append(shape.arc.collisionCallbacks, fn)
}

// OnArcEscape registers a callback fired when a ball exits the ring's disc
// through the gap rather than through material.
func (shape *Shape) OnArcEscape(fn ArcCallback) {
	if shape.kind != ShapeArcRing || fn == nil {
		return
	}
	shape.arc.escapeCallbacks = append(shape.arc.escapeCallbacks, fn)
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// angleWithinArc reports whether the point, seen from the ring center, lies
// inside the arc's angular span at its current rotation. Spans that wrap past
// the 0-degree line switch from AND to OR logic.
func (shape *Shape) angleWithinArc(point Vector) bool {
	if shape.arc.EndAngle-shape.arc.StartAngle >= 360 {
		return true
	}
	angle := normalizeAngle(point.Sub(shape.Position).ToAngle() * DegreeConst)
	start := normalizeAngle(shape.arc.StartAngle + shape.arc.Rotation)
	end := normalizeAngle(shape.arc.EndAngle + shape.arc.Rotation)

	if start <= end {
		return angle >= start && angle <= end
	}
	return angle >= start || angle <= end
}

// collideArcRing combines three independent hit sources by earliest time of
// impact: the outer boundary, the inner boundary, and the radial end caps.
// It also performs gap-escape tracking as a side effect when configured.
func (shape *Shape) collideArcRing(ball *Ball, relVel Vector, dtStep float64, info *SweepInfo) bool {
	center := shape.Position
	arc := &shape.arc
	outer := arc.outerRadius()
	inner := arc.innerRadius()

	minToi := dtStep + MAGIC_EPSILON
	var normal Vector
	hit := false

	// Outer boundary: the ring acts as an expanded circle of radius
	// outer+ball.Radius around its center. Only contacts inside the angular
	// span count.
	var probe SweepInfo
	if SweptCirclePoint(center, ball.Position, relVel, ball.Radius+outer, dtStep, &probe) && probe.Toi < minToi {
		at := ball.Position.Add(relVel.Mult(probe.Toi))
		if shape.angleWithinArc(at) {
			minToi = probe.Toi
			normal = probe.Normal
			hit = true
		}
	}

	// Inner boundary: a ball inside the hole hits the wall when its center
	// crosses the shrunk circle of radius inner-ball.Radius from within.
	if combined := inner - ball.Radius; inner > MAGIC_EPSILON && combined > MAGIC_EPSILON {
		if toi, ok := sweptCircleExit(center, combined, ball.Position, relVel, dtStep); ok && toi < minToi {
			at := ball.Position.Add(relVel.Mult(toi))
			if shape.angleWithinArc(at) {
				minToi = toi
				normal = center.Sub(at).Normalize()
				hit = true
			}
		}
	}

	// End caps: unless the ring closes into a full circle, its two radial
	// edges behave like a rectangle's corners and sides.
	if arc.EndAngle-arc.StartAngle < 360 {
		startRad := (arc.StartAngle + arc.Rotation) / DegreeConst
		endRad := (arc.EndAngle + arc.Rotation) / DegreeConst

		startOuter := center.Add(ForAngle(startRad).Mult(outer))
		endOuter := center.Add(ForAngle(endRad).Mult(outer))

		caps := []Vector{startOuter, endOuter}
		var edges [][2]Vector
		if inner > MAGIC_EPSILON {
			startInner := center.Add(ForAngle(startRad).Mult(inner))
			endInner := center.Add(ForAngle(endRad).Mult(inner))
			caps = append(caps, startInner, endInner)
			edges = [][2]Vector{{startInner, startOuter}, {endInner, endOuter}}
		}

		for _, p := range caps {
			if SweptCirclePoint(p, ball.Position, relVel, ball.Radius, dtStep, &probe) && probe.Toi < minToi {
				minToi = probe.Toi
				normal = probe.Normal
				hit = true
			}
		}
		for _, edge := range edges {
			if SweptCircleSegment(edge[0], edge[1], ball.Position, relVel, ball.Radius, dtStep, &probe) && probe.Toi < minToi {
				minToi = probe.Toi
				normal = probe.Normal
				hit = true
			}
		}
	}

	shape.trackEscape(ball, dtStep, outer)

	if hit {
		for _, fn := range arc.collisionCallbacks {
			fn(shape, ball)
		}
		info.Toi = minToi
		info.Normal = normal
	}
	return hit
}

// sweptCircleExit solves the same quadratic as the point sweep for the
// crossing of a circle of the given radius around center, without the
// stationary-overlap branch: a ball resting inside the reduced circle is not
// touching the inner wall.
func sweptCircleExit(center Vector, radius float64, pos, vel Vector, dtMax float64) (float64, bool) {
	rel := pos.Sub(center)

	qa := vel.Dot(vel)
	if qa < MAGIC_EPSILON {
		return 0, false
	}
	qb := 2 * rel.Dot(vel)
	qc := rel.Dot(rel) - radius*radius

	det := qb*qb - 4*qa*qc
	if det < 0 {
		return 0, false
	}

	sqrtDet := math.Sqrt(det)
	t1 := (-qb - sqrtDet) / (2 * qa)
	t2 := (-qb + sqrtDet) / (2 * qa)

	if t1 >= -MAGIC_EPSILON && t1 <= dtMax+MAGIC_EPSILON {
		return math.Max(0, t1), true
	}
	if t2 >= -MAGIC_EPSILON && t2 <= dtMax+MAGIC_EPSILON {
		return math.Max(0, t2), true
	}
	return 0, false
}

// trackEscape fires escape callbacks for a ball leaving the ring's disc
// through the gap during this step, and marks it for removal when the ring is
// configured to swallow escapees. Exits through material are left to the
// normal collision response.
func (shape *Shape) trackEscape(ball *Ball, dtStep, outer float64) {
	arc := &shape.arc
	if len(arc.escapeCallbacks) == 0 && !arc.RemoveEscaped {
		return
	}

	center := shape.Position
	insideNow := ball.Position.Distance(center) <= outer
	after := ball.Position.Add(ball.Velocity.Mult(dtStep))
	insideAfter := after.Distance(center) <= outer

	if !insideNow || insideAfter {
		return
	}

	// Project the ball radially onto the outer boundary: if that exit point
	// misses the arc's material span, the ball is leaving through the gap.
	exit := center.Add(ball.Position.Sub(center).Normalize().Mult(outer))
	if shape.angleWithinArc(exit) {
		return
	}

	for _, fn := range arc.escapeCallbacks {
		fn(shape, ball)
	}
	if arc.RemoveEscaped {
		ball.Removed = true
	}
}

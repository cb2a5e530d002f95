package bounce

type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeDiamond
	ShapeArcRing
)

// Shape is a static or kinematic obstacle: a closed tagged variant over
// {Rectangle, Diamond, ArcRing}. Only the payload matching the kind is valid.
// Shapes never collide with each other; they exist for moving balls to sweep
// against.
type Shape struct {
	kind ShapeKind

	Position Vector
	Velocity Vector
	// Static shapes ignore their velocity and never move.
	Static bool
	Color  Color

	// Effects applied to any ball that strikes this shape, in order.
	Effects []*Effect

	rect    RectData
	diamond DiamondData
	arc     ArcData
}

func (shape *Shape) Kind() ShapeKind {
	return shape.kind
}

// AddEffect appends an effect to the shape's collision effect list. The same
// effect may be shared with other shapes or balls.
func (shape *Shape) AddEffect(effect *Effect) {
	shape.Effects = append(shape.Effects, effect)
}

// Update advances the shape's kinematic state: position integration for
// movable shapes, plus rotation for arc rings.
func (shape *Shape) Update(dt float64) {
	if !shape.Static {
		shape.Position = shape.Position.Add(shape.Velocity.Mult(dt))
	}
	if shape.kind == ShapeArcRing {
		shape.arc.Rotation = normalizeAngle(shape.arc.Rotation + shape.arc.RotationSpeed*dt)
	}
}

// CheckCollision reports the earliest collision of the ball against this
// shape within dtStep, filling info on a hit. All kinds evaluate the ball's
// velocity relative to the shape's own, so moving platforms behave correctly;
// results are reported in absolute terms.
func (shape *Shape) CheckCollision(ball *Ball, dtStep float64, info *SweepInfo) bool {
	relVel := ball.Velocity.Sub(shape.Velocity)

	switch shape.kind {
	case ShapeRectangle:
		return shape.collideEdges(shape.rectEdges(), ball, relVel, dtStep, info)
	case ShapeDiamond:
		return shape.collideEdges(shape.diamondEdges(), ball, relVel, dtStep, info)
	case ShapeArcRing:
		return shape.collideArcRing(ball, relVel, dtStep, info)
	}
	return false
}

// collideEdges sweeps the ball against four boundary segments and keeps the
// minimum time of impact. The winning segment's normal is returned as-is.
func (shape *Shape) collideEdges(edges [4][2]Vector, ball *Ball, relVel Vector, dtStep float64, info *SweepInfo) bool {
	minToi := dtStep + MAGIC_EPSILON
	var normal Vector
	hit := false

	var edge SweepInfo
	for i := range edges {
		if !SweptCircleSegment(edges[i][0], edges[i][1], ball.Position, relVel, ball.Radius, dtStep, &edge) {
			continue
		}
		if edge.Toi >= -MAGIC_EPSILON && edge.Toi < minToi {
			minToi = edge.Toi
			normal = edge.Normal
			hit = true
		}
	}

	if hit {
		info.Toi = minToi
		info.Normal = normal
	}
	return hit
}

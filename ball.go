package bounce

// Bounds a ball's radius may reach through size-change effects.
const (
	MinBallRadius = 2.0
	MaxBallRadius = 100.0
)

// Ball is a circular bouncing object moving under constant velocity between
// collisions. Balls are owned by the World's ball collection and mutated only
// by the stepping code.
type Ball struct {
	Position Vector
	Velocity Vector
	Radius   float64
	Color    Color

	// Mass weights the ball-ball impulse response; heavier balls move less.
	Mass float64
	// Restitution is the bounciness factor in [0, 1].
	Restitution float64
	// Interacts enables the pairwise response against other balls.
	Interacts bool
	// Removed marks the ball for the end-of-tick compacting sweep.
	Removed bool

	// Effects applied to this ball when it strikes a shape, in order.
	Effects []*Effect
}

// NewBall returns a ball with its invariants enforced: radius and mass are
// forced positive, restitution is clamped to [0, 1].
func NewBall(position, velocity Vector, radius float64, color Color, mass, restitution float64, interacts bool) *Ball {
	if radius <= 0 {
		radius = MinBallRadius
	}
	if mass <= 0 {
		mass = 1
	}
	return &Ball{
		Position:    position,
		Velocity:    velocity,
		Radius:      radius,
		Color:       color,
		Mass:        mass,
		Restitution: Clamp01(restitution),
		Interacts:   interacts,
	}
}

// AddEffect appends an effect to the ball's collision effect list. The same
// effect may be attached to several owners.
func (ball *Ball) AddEffect(effect *Effect) {
	ball.Effects = append(ball.Effects, effect)
}

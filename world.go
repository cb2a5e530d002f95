package bounce

import "math"

const (
	// DefaultMaxSubsteps bounds the scheduler's collision iterations per ball
	// per tick.
	DefaultMaxSubsteps = 10
	// boundaryDamping bleeds a little speed off every wall bounce.
	boundaryDamping = 0.99
)

// World owns the ball and shape collections and steps the whole simulation.
// It is single-threaded by contract: all mutation happens on the goroutine
// that calls Step.
type World struct {
	Balls  []*Ball
	Shapes []*Shape

	// Bounds is the rectangular region balls are kept inside.
	Bounds BB

	// MaxSubsteps caps collision substeps per ball per tick. When the cap
	// triggers, that ball's remaining frame time is silently dropped.
	MaxSubsteps int

	// TimeScale multiplies every dt handed to Step.
	TimeScale float64

	// Sounds realizes SoundPlay effects. May be nil.
	Sounds SoundPlayer

	spawns []SpawnRequest
}

func NewWorld(bounds BB) *World {
	return &World{
		Bounds:      bounds,
		MaxSubsteps: DefaultMaxSubsteps,
		TimeScale:   1,
	}
}

func (world *World) AddBall(ball *Ball) *Ball {
	world.Balls = append(world.Balls, ball)
	return ball
}

func (world *World) AddShape(shape *Shape) *Shape {
	world.Shapes = append(world.Shapes, shape)
	return shape
}

// DrainSpawnRequests returns the spawn intents recorded by Spawn effects
// since the last drain and clears the queue. The caller decides whether to
// realize them.
func (world *World) DrainSpawnRequests() []SpawnRequest {
	spawns := world.spawns
	world.spawns = nil
	return spawns
}

// Step advances the simulation by dt seconds (scaled by TimeScale): shape
// kinematics first, then each ball's swept substep resolution and boundary
// containment, then the discrete ball-ball pass, then the removal sweep.
func (world *World) Step(dt float64) {
	dt *= world.TimeScale
	if dt == 0 {
		return
	}

	for _, shape := range world.Shapes {
		shape.Update(dt)
	}

	for _, ball := range world.Balls {
		world.stepBall(ball, dt)
		world.containBall(ball)
	}

	world.collideBalls()

	world.removeMarked()
}

// stepBall advances one ball through the shape list, resolving collisions in
// time-of-impact order until the frame's time budget is spent or the substep
// cap hits. Returns the number of substeps consumed.
func (world *World) stepBall(ball *Ball, dt float64) int {
	var info SweepInfo

	// De-penetration pre-pass: anything still overlapping from last frame's
	// resolution error gets nudged out before the sweep starts, so the ball
	// cannot wedge itself into a shape.
	for _, shape := range world.Shapes {
		if shape.CheckCollision(ball, MAGIC_EPSILON, &info) && info.Toi < MAGIC_EPSILON {
			if info.Normal.LengthSq() > MAGIC_EPSILON {
				ball.Position = ball.Position.Add(info.Normal.Mult(ball.Radius * 0.1))
			}
		}
	}

	remaining := dt
	substeps := 0

	for remaining > MAGIC_EPSILON && substeps < world.MaxSubsteps {
		toi := remaining
		var first *Shape
		var normal Vector

		// Globally earliest collision within the remaining slice. Ties go to
		// the first shape in iteration order.
		for _, shape := range world.Shapes {
			if shape.CheckCollision(ball, remaining, &info) {
				if info.Toi >= -MAGIC_EPSILON && info.Toi < toi {
					toi = info.Toi
					first = shape
					normal = info.Normal
				}
			}
		}

		toi = math.Max(0, toi)
		ball.Position = ball.Position.Add(ball.Velocity.Mult(toi))
		remaining -= toi

		if first != nil {
			if normal.LengthSq() > MAGIC_EPSILON {
				ball.Velocity = ball.Velocity.Reflect(normal).Mult(ball.Restitution)
				// Nudge off the surface so the same contact is not found again
				// next substep.
				ball.Position = ball.Position.Add(normal.Mult(ball.Radius * 0.05))
			} else {
				// Degenerate normal: fall back to the direction from the
				// struck shape's center.
				away := ball.Position.Sub(first.Position)
				if away.LengthSq() > MAGIC_EPSILON {
					away = away.Normalize()
					ball.Position = ball.Position.Add(away.Mult(ball.Radius * 0.1))
					ball.Velocity = ball.Velocity.Reflect(away).Mult(ball.Restitution)
				}
			}

			// Initial-contact effects only; this path never reports ongoing
			// contact.
			world.applyEffects(ball, first, false)
		}

		substeps++
	}

	return substeps
}

// containBall keeps the ball inside the world bounds with a discrete clamp
// and reflection. This deliberately bypasses the swept pipeline.
func (world *World) containBall(ball *Ball) {
	bb := world.Bounds
	reflected := false

	if ball.Position.X-ball.Radius < bb.L {
		ball.Position.X = bb.L + ball.Radius + MAGIC_EPSILON
		if ball.Velocity.X < 0 {
			ball.Velocity.X = -ball.Velocity.X
		}
		reflected = true
	} else if ball.Position.X+ball.Radius > bb.R {
		ball.Position.X = bb.R - ball.Radius - MAGIC_EPSILON
		if ball.Velocity.X > 0 {
			ball.Velocity.X = -ball.Velocity.X
		}
		reflected = true
	}

	if ball.Position.Y-ball.Radius < bb.B {
		ball.Position.Y = bb.B + ball.Radius + MAGIC_EPSILON
		if ball.Velocity.Y < 0 {
			ball.Velocity.Y = -ball.Velocity.Y
		}
		reflected = true
	} else if ball.Position.Y+ball.Radius > bb.T {
		ball.Position.Y = bb.T - ball.Radius - MAGIC_EPSILON
		if ball.Velocity.Y > 0 {
			ball.Velocity.Y = -ball.Velocity.Y
		}
		reflected = true
	}

	if reflected {
		ball.Velocity = ball.Velocity.Mult(boundaryDamping)
	}
}

// removeMarked compacts the ball collection, dropping everything flagged by
// Disappear effects or arc escapes this tick.
func (world *World) removeMarked() {
	balls := world.Balls[:0]
	for _, ball := range world.Balls {
		if !ball.Removed {
			balls = append(balls, ball)
		}
	}
	for i := len(balls); i < len(world.Balls); i++ {
		world.Balls[i] = nil
	}
	world.Balls = balls
}

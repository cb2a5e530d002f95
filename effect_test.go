package bounce

import (
	"math"
	"testing"
)

type fakeSounds struct {
	played  []string
	toggled []string
}

func (s *fakeSounds) Play(name string)   { s.played = append(s.played, name) }
func (s *fakeSounds) Toggle(name string) { s.toggled = append(s.toggled, name) }

func TestEffect_BoostClampsFactor(t *testing.T) {
	if e := NewVelocityBoostEffect(0.5, false); e.Factor != 1.1 {
		t.Errorf("expected a slowing boost replaced by 1.1, got %v", e.Factor)
	}
	if e := NewVelocityBoostEffect(2, false); e.Factor != 2 {
		t.Errorf("expected factor 2 kept, got %v", e.Factor)
	}
}

func TestEffect_DampenClampsFactor(t *testing.T) {
	if e := NewVelocityDampenEffect(0, false); e.Factor != 0.01 {
		t.Errorf("expected 0.01, got %v", e.Factor)
	}
	if e := NewVelocityDampenEffect(2, false); e.Factor != 0.99 {
		t.Errorf("expected 0.99, got %v", e.Factor)
	}
	if e := NewVelocityDampenEffect(0.5, false); e.Factor != 0.5 {
		t.Errorf("expected 0.5 kept, got %v", e.Factor)
	}
}

func TestEffect_ContinuousGating(t *testing.T) {
	world := testWorld()
	ball := NewBall(Vector{}, Vector{10, 0}, 5, Color{}, 1, 1, false)
	ball.AddEffect(NewColorChangeEffect(Color{R: 255}, false))
	ball.AddEffect(NewVelocityBoostEffect(2, true))

	world.applyEffects(ball, nil, true)

	if ball.Color.R == 255 {
		t.Error("non-continuous effect fired on an ongoing contact")
	}
	if math.Abs(ball.Velocity.X-20) > 1e-9 {
		t.Errorf("continuous effect skipped, vx=%v", ball.Velocity.X)
	}

	world.applyEffects(ball, nil, false)

	if ball.Color.R != 255 {
		t.Error("non-continuous effect skipped on initial contact")
	}
}

func TestEffect_SizeChangeClamps(t *testing.T) {
	world := testWorld()
	ball := NewBall(Vector{}, Vector{}, 60, Color{}, 1, 1, false)
	ball.AddEffect(NewSizeChangeEffect(10, false))

	world.applyEffects(ball, nil, false)
	if ball.Radius != MaxBallRadius {
		t.Errorf("expected clamp to %v, got %v", MaxBallRadius, ball.Radius)
	}

	shrink := NewBall(Vector{}, Vector{}, 3, Color{}, 1, 1, false)
	shrink.AddEffect(NewSizeChangeEffect(0.1, false))
	world.applyEffects(shrink, nil, false)
	if shrink.Radius != MinBallRadius {
		t.Errorf("expected clamp to %v, got %v", MinBallRadius, shrink.Radius)
	}
}

func TestEffect_BallSoundsToggleShapeSoundsPlay(t *testing.T) {
	world := testWorld()
	sounds := &fakeSounds{}
	world.Sounds = sounds

	ball := NewBall(Vector{}, Vector{}, 5, Color{}, 1, 1, false)
	ball.AddEffect(NewSoundPlayEffect("ping", false))
	shape := NewRectangle(Vector{}, Vector{}, 10, 10, Color{}, true)
	shape.AddEffect(NewSoundPlayEffect("pong", false))

	world.applyEffects(ball, shape, false)

	if len(sounds.toggled) != 1 || sounds.toggled[0] != "ping" {
		t.Errorf("expected ball sound toggled, got %v", sounds.toggled)
	}
	if len(sounds.played) != 1 || sounds.played[0] != "pong" {
		t.Errorf("expected shape sound played, got %v", sounds.played)
	}
}

func TestEffect_NilSoundPlayer(t *testing.T) {
	world := testWorld()
	ball := NewBall(Vector{}, Vector{}, 5, Color{}, 1, 1, false)
	ball.AddEffect(NewSoundPlayEffect("ping", false))

	// Must not panic without a player installed.
	world.applyEffects(ball, nil, false)
}

func TestEffect_OrderBallThenShape(t *testing.T) {
	world := testWorld()
	ball := NewBall(Vector{}, Vector{}, 5, Color{}, 1, 1, false)
	ball.AddEffect(NewColorChangeEffect(Color{R: 1}, false))
	shape := NewRectangle(Vector{}, Vector{}, 10, 10, Color{}, true)
	shape.AddEffect(NewColorChangeEffect(Color{R: 2}, false))

	world.applyEffects(ball, shape, false)

	// The shape's list runs second and wins the last write.
	if ball.Color.R != 2 {
		t.Errorf("expected the shape effect applied last, got R=%d", ball.Color.R)
	}
}

func TestEffect_Disappear(t *testing.T) {
	world := testWorld()
	ball := world.AddBall(NewBall(Vector{}, Vector{}, 5, Color{}, 1, 1, false))
	ball.AddEffect(NewDisappearEffect(12, Color{G: 255}, false))

	world.applyEffects(ball, nil, false)
	if !ball.Removed {
		t.Fatal("disappear effect did not mark the ball")
	}

	world.Step(0.001)
	if len(world.Balls) != 0 {
		t.Errorf("marked ball survived the sweep, %d remain", len(world.Balls))
	}
}

func TestEffect_SharedBetweenOwners(t *testing.T) {
	world := testWorld()
	boost := NewVelocityBoostEffect(2, false)

	a := NewBall(Vector{}, Vector{10, 0}, 5, Color{}, 1, 1, false)
	b := NewBall(Vector{}, Vector{-10, 0}, 5, Color{}, 1, 1, false)
	a.AddEffect(boost)
	b.AddEffect(boost)

	world.applyEffects(a, nil, false)
	world.applyEffects(b, nil, false)

	// One shared instance serves both owners without being mutated.
	if math.Abs(a.Velocity.X-20) > 1e-9 || math.Abs(b.Velocity.X+20) > 1e-9 {
		t.Errorf("shared effect misapplied: %v %v", a.Velocity, b.Velocity)
	}
	if boost.Factor != 2 {
		t.Errorf("resolution mutated the shared effect: %v", boost.Factor)
	}
}

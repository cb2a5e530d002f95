package bounce

type EffectKind int

const (
	EffectColorChange EffectKind = iota
	EffectVelocityBoost
	EffectVelocityDampen
	EffectSizeChange
	EffectSoundPlay
	EffectDisappear
	EffectSpawn
)

// SoundPlayer is implemented by the embedding application to realize
// SoundPlay effects. The engine signals intent and never performs audio I/O.
type SoundPlayer interface {
	// Play starts the named sound.
	Play(name string)
	// Toggle stops the named sound if it is currently playing, otherwise
	// starts it.
	Toggle(name string)
}

// SpawnRequest is recorded when a Spawn effect fires. The engine never
// allocates the new ball itself; the caller drains these and decides.
type SpawnRequest struct {
	Position Vector
	Radius   float64
	Color    Color
}

// Effect is a collision-triggered mutation applied to the striking ball.
// Effects attach to balls and shapes, may be shared by reference between
// several owners, and are never mutated during resolution.
type Effect struct {
	Kind EffectKind
	// Continuous effects reapply on every frame of sustained contact; others
	// fire only at the instant contact begins.
	Continuous bool

	Color  Color   // ColorChange, Disappear particles, Spawn
	Factor float64 // VelocityBoost, VelocityDampen, SizeChange
	Sound  string  // SoundPlay

	ParticleCount int     // Disappear
	SpawnPosition Vector  // Spawn
	SpawnRadius   float64 // Spawn
}

func NewColorChangeEffect(color Color, continuous bool) *Effect {
	return &Effect{Kind: EffectColorChange, Continuous: continuous, Color: color}
}

// NewVelocityBoostEffect rejects factors that would not speed the ball up,
// substituting a 10% boost.
func NewVelocityBoostEffect(factor float64, continuous bool) *Effect {
	if factor <= 1 {
		factor = 1.1
	}
	return &Effect{Kind: EffectVelocityBoost, Continuous: continuous, Factor: factor}
}

// NewVelocityDampenEffect clamps the factor into (0, 1) so a dampen never
// stops or reverses the ball outright.
func NewVelocityDampenEffect(factor float64, continuous bool) *Effect {
	return &Effect{Kind: EffectVelocityDampen, Continuous: continuous, Factor: Clamp(factor, 0.01, 0.99)}
}

func NewSizeChangeEffect(factor float64, continuous bool) *Effect {
	return &Effect{Kind: EffectSizeChange, Continuous: continuous, Factor: factor}
}

func NewSoundPlayEffect(sound string, continuous bool) *Effect {
	return &Effect{Kind: EffectSoundPlay, Continuous: continuous, Sound: sound}
}

func NewDisappearEffect(particleCount int, particleColor Color, continuous bool) *Effect {
	return &Effect{Kind: EffectDisappear, Continuous: continuous, ParticleCount: particleCount, Color: particleColor}
}

func NewSpawnEffect(position Vector, radius float64, color Color, continuous bool) *Effect {
	return &Effect{Kind: EffectSpawn, Continuous: continuous, SpawnPosition: position, SpawnRadius: radius, Color: color}
}

// applyEffects runs the ball's effect list followed by the struck shape's.
// Ongoing contacts only re-trigger effects marked continuous.
func (world *World) applyEffects(ball *Ball, shape *Shape, ongoing bool) {
	world.applyEffectList(ball.Effects, ball, ongoing, true)
	if shape != nil {
		world.applyEffectList(shape.Effects, ball, ongoing, false)
	}
}

func (world *World) applyEffectList(effects []*Effect, ball *Ball, ongoing, toggleSound bool) {
	for _, effect := range effects {
		if ongoing && !effect.Continuous {
			continue
		}

		switch effect.Kind {
		case EffectColorChange:
			ball.Color = effect.Color
		case EffectVelocityBoost, EffectVelocityDampen:
			ball.Velocity = ball.Velocity.Mult(effect.Factor)
		case EffectSizeChange:
			ball.Radius = Clamp(ball.Radius*effect.Factor, MinBallRadius, MaxBallRadius)
		case EffectSoundPlay:
			if world.Sounds == nil {
				break
			}
			// Ball-attached sounds toggle so a sustained rattle can be shut
			// off; shape-attached sounds always play.
			if toggleSound {
				world.Sounds.Toggle(effect.Sound)
			} else {
				world.Sounds.Play(effect.Sound)
			}
		case EffectDisappear:
			ball.Removed = true
		case EffectSpawn:
			// Recognized but inert inside the engine: the surrounding game
			// loop drains the request and decides whether to spawn.
			world.spawns = append(world.spawns, SpawnRequest{
				Position: effect.SpawnPosition,
				Radius:   effect.SpawnRadius,
				Color:    effect.Color,
			})
		}
	}
}

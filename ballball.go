package bounce

// collideBalls runs the discrete pairwise pass over interaction-enabled
// balls: separate any overlapping pair in inverse proportion to mass, then
// exchange an elastic impulse along the contact normal. This pass has no
// time-of-impact component, so two fast balls can still pass through each
// other within a single tick.
func (world *World) collideBalls() {
	for i, a := range world.Balls {
		if !a.Interacts {
			continue
		}
		for _, b := range world.Balls[i+1:] {
			if !b.Interacts {
				continue
			}

			dist := a.Position.Distance(b.Position)
			minDist := a.Radius + b.Radius
			if dist >= minDist {
				continue
			}

			normal := b.Position.Sub(a.Position).Normalize()
			overlap := minDist - dist

			// Heavier ball moves less.
			total := a.Mass + b.Mass
			a.Position = a.Position.Sub(normal.Mult(overlap * b.Mass / total))
			b.Position = b.Position.Add(normal.Mult(overlap * a.Mass / total))

			relVel := a.Velocity.Sub(b.Velocity)
			j := -(1 + a.Restitution*b.Restitution) * relVel.Dot(normal) / (1/a.Mass + 1/b.Mass)

			a.Velocity = a.Velocity.Add(normal.Mult(j / a.Mass))
			b.Velocity = b.Velocity.Sub(normal.Mult(j / b.Mass))
		}
	}
}

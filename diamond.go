package bounce

// DiamondData carries half of each diagonal of a rhombus whose vertices sit
// on the axes through the shape's center.
type DiamondData struct {
	HW, HH float64
}

// NewDiamond returns a diamond obstacle given its full horizontal and
// vertical diagonals.
func NewDiamond(position, velocity Vector, diagWidth, diagHeight float64, color Color, static bool) *Shape {
	if static {
		velocity = Vector{}
	}
	return &Shape{
		kind:     ShapeDiamond,
		Position: position,
		Velocity: velocity,
		Static:   static,
		Color:    color,
		diamond:  DiamondData{HW: diagWidth / 2, HH: diagHeight / 2},
	}
}

// Diamond returns a copy of the diamond's half diagonals, mainly for
// rendering.
func (shape *Shape) Diamond() DiamondData {
	return shape.diamond
}

// diamondEdges connects the four axis-aligned vertices of the rhombus:
// top-right, right-bottom, bottom-left, left-top.
func (shape *Shape) diamondEdges() [4][2]Vector {
	p := shape.Position
	hw, hh := shape.diamond.HW, shape.diamond.HH

	top := Vector{p.X, p.Y - hh}
	right := Vector{p.X + hw, p.Y}
	bottom := Vector{p.X, p.Y + hh}
	left := Vector{p.X - hw, p.Y}

	return [4][2]Vector{{top, right}, {right, bottom}, {bottom, left}, {left, top}}
}

package bounce

// RectData carries a rectangle's half extents. The shape's position is its
// center.
type RectData struct {
	HW, HH float64
}

// NewRectangle returns an axis-aligned rectangle obstacle of the given full
// width and height. Static shapes discard the velocity.
func NewRectangle(position, velocity Vector, width, height float64, color Color, static bool) *Shape {
	if static {
		velocity = Vector{}
	}
	return &Shape{
		kind:     ShapeRectangle,
		Position: position,
		Velocity: velocity,
		Static:   static,
		Color:    color,
		rect:     RectData{HW: width / 2, HH: height / 2},
	}
}

// Rect returns a copy of the rectangle's half extents, mainly for rendering.
func (shape *Shape) Rect() RectData {
	return shape.rect
}

// rectEdges recomputes the four boundary segments from the current center, in
// order: top, right, bottom, left.
func (shape *Shape) rectEdges() [4][2]Vector {
	p := shape.Position
	hw, hh := shape.rect.HW, shape.rect.HH

	tl := Vector{p.X - hw, p.Y - hh}
	tr := Vector{p.X + hw, p.Y - hh}
	br := Vector{p.X + hw, p.Y + hh}
	bl := Vector{p.X - hw, p.Y + hh}

	return [4][2]Vector{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

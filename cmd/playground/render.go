package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"bounce"
)

func styleFor(c bounce.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (g *Game) plot(x, y int, r rune, style tcell.Style) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *Game) drawBall(ball *bounce.Ball) {
	style := styleFor(ball.Color)
	cx, cy := ball.Position.X, ball.Position.Y
	r := ball.Radius

	if r <= 1 {
		g.plot(int(cx), int(cy), '●', style)
		return
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				g.plot(x, y, '█', style)
			}
		}
	}
}

func (g *Game) drawShape(shape *bounce.Shape) {
	style := styleFor(shape.Color)

	switch shape.Kind() {
	case bounce.ShapeRectangle:
		rect := shape.Rect()
		p := shape.Position
		for y := int(p.Y - rect.HH); y <= int(p.Y+rect.HH); y++ {
			for x := int(p.X - rect.HW); x <= int(p.X+rect.HW); x++ {
				g.plot(x, y, '█', style)
			}
		}

	case bounce.ShapeDiamond:
		dia := shape.Diamond()
		p := shape.Position
		for y := int(p.Y - dia.HH); y <= int(p.Y+dia.HH); y++ {
			for x := int(p.X - dia.HW); x <= int(p.X+dia.HW); x++ {
				dx := math.Abs(float64(x)-p.X) / dia.HW
				dy := math.Abs(float64(y)-p.Y) / dia.HH
				if dx+dy <= 1 {
					g.plot(x, y, '◆', style)
				}
			}
		}

	case bounce.ShapeArcRing:
		g.drawArcRing(shape, style)
	}
}

// drawArcRing walks the angular span in small steps, plotting cells across
// the ring's thickness.
func (g *Game) drawArcRing(shape *bounce.Shape, style tcell.Style) {
	arc := shape.Arc()
	p := shape.Position

	start := arc.StartAngle + arc.Rotation
	end := arc.EndAngle + arc.Rotation
	inner := arc.Radius - arc.Thickness/2
	outer := arc.Radius + arc.Thickness/2

	for deg := start; deg <= end; deg += 0.5 {
		rad := deg / bounce.DegreeConst
		for r := inner; r <= outer; r += 0.5 {
			x := p.X + math.Cos(rad)*r
			y := p.Y + math.Sin(rad)*r
			g.plot(int(x), int(y), '▒', style)
		}
	}
}

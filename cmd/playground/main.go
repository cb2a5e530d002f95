package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"bounce"
)

// speedValues are the time multipliers the arrow keys cycle through.
var speedValues = []float64{
	0.00, 0.01, 0.02, 0.05, 0.10, 0.20, 0.30, 0.40, 0.50, 0.60,
	0.70, 0.80, 0.90, 1.00, 1.10, 1.20, 1.30, 1.40, 1.50,
	1.60, 1.70, 1.80, 1.90, 2.00, 2.20, 2.40, 2.60, 2.80,
	3.00, 4.00, 5.00, 6.00, 7.00, 8.00, 9.00, 10.00,
}

const defaultSpeedIndex = 13 // x1.00

type Game struct {
	screen        tcell.Screen
	width, height int

	world      *bounce.World
	ring       *bounce.Shape
	speedIndex int
	escaped    int

	rng *rand.Rand
}

func NewGame() (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	g := &Game{
		screen:     screen,
		speedIndex: defaultSpeedIndex,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.width, g.height = screen.Size()

	g.world = bounce.NewWorld(bounce.NewBB(0, 0, float64(g.width), float64(g.height)))
	g.world.TimeScale = speedValues[g.speedIndex]
	g.world.Sounds = newBeepSounds()

	g.buildScene()
	return g, nil
}

// buildScene places the demo obstacles: a spinning arc ring in the middle
// that swallows escapees, a booster pad, and a recoloring diamond.
func (g *Game) buildScene() {
	w, h := float64(g.width), float64(g.height)
	center := bounce.Vector{X: w / 2, Y: h / 2}

	radius := h * 0.35
	if w/2 < h {
		radius = w * 0.175
	}

	g.ring = g.world.AddShape(bounce.NewArcRing(
		center, bounce.Vector{},
		radius, 60, 120, 4,
		bounce.Color{R: 230, G: 41, B: 55, A: 255},
		true,
		30,   // degrees per second
		true, // swallow balls that slip through the gap
	))
	g.ring.AddEffect(bounce.NewSoundPlayEffect("bounce", false))
	g.ring.OnArcEscape(func(shape *bounce.Shape, ball *bounce.Ball) {
		g.escaped++
		if g.world.Sounds != nil {
			g.world.Sounds.Play("escape")
		}
	})

	pad := g.world.AddShape(bounce.NewRectangle(
		bounce.Vector{X: w * 0.15, Y: h * 0.75}, bounce.Vector{},
		10, 3,
		bounce.Color{R: 0, G: 228, B: 48, A: 255},
		true,
	))
	pad.AddEffect(bounce.NewVelocityBoostEffect(1.3, false))
	pad.AddEffect(bounce.NewSoundPlayEffect("boost", false))

	dia := g.world.AddShape(bounce.NewDiamond(
		bounce.Vector{X: w * 0.85, Y: h * 0.25}, bounce.Vector{},
		8, 8,
		bounce.Color{R: 255, G: 203, B: 0, A: 255},
		true,
	))
	dia.AddEffect(bounce.NewColorChangeEffect(bounce.Color{R: 255, G: 203, B: 0, A: 255}, false))
}

func (g *Game) randomColor() bounce.Color {
	return bounce.Color{
		R: uint8(g.rng.Intn(200) + 55),
		G: uint8(g.rng.Intn(200) + 55),
		B: uint8(g.rng.Intn(200) + 55),
		A: 255,
	}
}

func (g *Game) spawnBall(pos bounce.Vector) {
	sign := func() float64 {
		if g.rng.Intn(2) == 0 {
			return 1
		}
		return -1
	}
	vel := bounce.Vector{
		X: (10 + g.rng.Float64()*20) * sign(),
		Y: (10 + g.rng.Float64()*20) * sign(),
	}
	g.world.AddBall(bounce.NewBall(
		pos, vel,
		1+g.rng.Float64()*2,
		g.randomColor(),
		0.5+g.rng.Float64()*2.5,
		1.0,
		true,
	))
}

func (g *Game) spawnBatch(pos bounce.Vector, count int) {
	for i := 0; i < count; i++ {
		g.spawnBall(pos)
	}
}

func (g *Game) handleResize() {
	newWidth, newHeight := g.screen.Size()
	if newWidth == g.width && newHeight == g.height {
		return
	}
	g.width = newWidth
	g.height = newHeight
	g.world.Bounds = bounce.NewBB(0, 0, float64(g.width), float64(g.height))
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyLeft:
			if g.speedIndex > 0 {
				g.speedIndex--
				g.world.TimeScale = speedValues[g.speedIndex]
			}
		case ev.Key() == tcell.KeyRight:
			if g.speedIndex < len(speedValues)-1 {
				g.speedIndex++
				g.world.TimeScale = speedValues[g.speedIndex]
			}
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			g.spawnBall(bounce.Vector{X: float64(g.width) / 2, Y: float64(g.height) * 0.25})
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
			g.world.Balls = g.world.Balls[:0]
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 {
			count := 1
			if buttons&tcell.Button2 != 0 {
				count = 25
			}
			g.spawnBatch(bounce.Vector{X: float64(x), Y: float64(y)}, count)
		}
	case *tcell.EventResize:
		g.handleResize()
		g.screen.Sync()
	}
	return true
}

func (g *Game) update(dt float64) {
	g.world.Step(dt)

	for _, req := range g.world.DrainSpawnRequests() {
		g.world.AddBall(bounce.NewBall(
			req.Position, bounce.Vector{X: 15, Y: -15},
			req.Radius, req.Color, 1, 1, true,
		))
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.update(dt)
			g.draw()
		}
	}
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) draw() {
	g.screen.Clear()

	for _, shape := range g.world.Shapes {
		g.drawShape(shape)
	}
	for _, ball := range g.world.Balls {
		g.drawBall(ball)
	}

	hud := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	g.drawText(1, 0, "click/space: ball  hold middle: 25 balls  arrows: speed  c: clear  esc: quit", hud)
	g.drawText(1, 1, fmt.Sprintf("balls: %d  escaped: %d  speed: x%.2f", len(g.world.Balls), g.escaped, speedValues[g.speedIndex]), hud)

	g.screen.Show()
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

func main() {
	game, err := NewGame()
	if err != nil {
		log.Printf("failed to start: %v", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}

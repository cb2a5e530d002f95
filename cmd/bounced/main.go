// bounced runs a headless simulation and streams its state to websocket
// subscribers. Clients can drop balls into the world and change the
// simulation speed; sound effects arrive as events for the client to play.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"bounce"
)

const writeWait = 5 * time.Second

type ballState struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Radius float64  `json:"radius"`
	Color  [4]uint8 `json:"color"`
}

type shapeState struct {
	Kind     string   `json:"kind"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	HW       float64  `json:"hw,omitempty"`
	HH       float64  `json:"hh,omitempty"`
	Radius   float64  `json:"radius,omitempty"`
	Start    float64  `json:"start,omitempty"`
	End      float64  `json:"end,omitempty"`
	Thick    float64  `json:"thickness,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	Color    [4]uint8 `json:"color"`
}

type stateMessage struct {
	Type       string       `json:"type"`
	Balls      []ballState  `json:"balls"`
	Shapes     []shapeState `json:"shapes"`
	Sounds     []string     `json:"sounds,omitempty"`
	ServerTime int64        `json:"serverTime"`
}

type clientMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int     `json:"count"`
	Scale float64 `json:"scale"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// soundQueue implements bounce.SoundPlayer by collecting intent names for
// the next broadcast. The server has no audio device; clients do.
type soundQueue struct {
	names []string
}

func (q *soundQueue) Play(name string)   { q.names = append(q.names, name) }
func (q *soundQueue) Toggle(name string) { q.names = append(q.names, name) }

func (q *soundQueue) drain() []string {
	names := q.names
	q.names = nil
	return names
}

type Hub struct {
	mu          sync.Mutex
	world       *bounce.World
	sounds      *soundQueue
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
}

func newHub(width, height float64) *Hub {
	sounds := &soundQueue{}
	world := bounce.NewWorld(bounce.NewBB(0, 0, width, height))
	world.Sounds = sounds

	h := &Hub{
		world:       world,
		sounds:      sounds,
		subscribers: make(map[uint64]*subscriber),
	}
	h.buildScene(width, height)
	return h
}

func (h *Hub) buildScene(width, height float64) {
	ring := h.world.AddShape(bounce.NewArcRing(
		bounce.Vector{X: width / 2, Y: height / 2}, bounce.Vector{},
		100, 60, 120, 20,
		bounce.Color{R: 230, G: 41, B: 55, A: 255},
		true, 30, true,
	))
	ring.AddEffect(bounce.NewSoundPlayEffect("bounce", false))

	pad := h.world.AddShape(bounce.NewRectangle(
		bounce.Vector{X: width * 0.2, Y: height * 0.8}, bounce.Vector{},
		80, 20,
		bounce.Color{R: 0, G: 228, B: 48, A: 255},
		true,
	))
	pad.AddEffect(bounce.NewVelocityBoostEffect(1.3, false))
	pad.AddEffect(bounce.NewSoundPlayEffect("boost", false))
}

func colorOf(c bounce.Color) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// snapshotLocked flattens the world for the wire. Callers hold h.mu.
func (h *Hub) snapshotLocked() ([]ballState, []shapeState) {
	balls := make([]ballState, 0, len(h.world.Balls))
	for _, ball := range h.world.Balls {
		balls = append(balls, ballState{
			X:      ball.Position.X,
			Y:      ball.Position.Y,
			Radius: ball.Radius,
			Color:  colorOf(ball.Color),
		})
	}

	shapes := make([]shapeState, 0, len(h.world.Shapes))
	for _, shape := range h.world.Shapes {
		s := shapeState{X: shape.Position.X, Y: shape.Position.Y, Color: colorOf(shape.Color)}
		switch shape.Kind() {
		case bounce.ShapeRectangle:
			s.Kind = "rectangle"
			rect := shape.Rect()
			s.HW, s.HH = rect.HW, rect.HH
		case bounce.ShapeDiamond:
			s.Kind = "diamond"
			dia := shape.Diamond()
			s.HW, s.HH = dia.HW, dia.HH
		case bounce.ShapeArcRing:
			s.Kind = "arcring"
			arc := shape.Arc()
			s.Radius, s.Start, s.End = arc.Radius, arc.StartAngle, arc.EndAngle
			s.Thick, s.Rotation = arc.Thickness, arc.Rotation
		}
		shapes = append(shapes, s)
	}
	return balls, shapes
}

func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, *subscriber) {
	id := h.nextID.Add(1)
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	h.mu.Unlock()
	return id, sub
}

func (h *Hub) Disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) SpawnBalls(x, y float64, count int) {
	if count < 1 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i := 0; i < count; i++ {
		h.world.AddBall(bounce.NewBall(
			bounce.Vector{X: x, Y: y},
			bounce.Vector{X: 150, Y: -150},
			10, bounce.Color{R: 200, G: 200, B: 255, A: 255},
			1, 1, true,
		))
	}
}

func (h *Hub) SetTimeScale(scale float64) {
	if scale < 0 || scale > 10 {
		return
	}
	h.mu.Lock()
	h.world.TimeScale = scale
	h.mu.Unlock()
}

func (h *Hub) marshalState() ([]byte, error) {
	h.mu.Lock()
	balls, shapes := h.snapshotLocked()
	sounds := h.sounds.drain()
	h.mu.Unlock()

	msg := stateMessage{
		Type:       "state",
		Balls:      balls,
		Shapes:     shapes,
		Sounds:     sounds,
		ServerTime: time.Now().UnixMilli(),
	}
	return json.Marshal(msg)
}

func (h *Hub) broadcastState() {
	data, err := h.marshalState()
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.send(data); err != nil {
			log.Printf("failed to send update to %d: %v", id, err)
			h.Disconnect(id)
		}
	}
}

func (h *Hub) RunSimulation(tickRate int, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			h.mu.Lock()
			h.world.Step(dt)
			for _, req := range h.world.DrainSpawnRequests() {
				h.world.AddBall(bounce.NewBall(
					req.Position, bounce.Vector{X: 100, Y: -100},
					req.Radius, req.Color, 1, 1, true,
				))
			}
			h.mu.Unlock()

			h.broadcastState()
		}
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	tickRate := flag.Int("tick", 30, "simulation ticks per second")
	width := flag.Float64("width", 800, "world width")
	height := flag.Float64("height", 450, "world height")
	flag.Parse()

	hub := newHub(*width, *height)
	stop := make(chan struct{})
	go hub.RunSimulation(*tickRate, stop)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}

		id, sub := hub.Subscribe(conn)

		data, err := hub.marshalState()
		if err == nil {
			if err := sub.send(data); err != nil {
				hub.Disconnect(id)
				return
			}
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				hub.Disconnect(id)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.Printf("discarding malformed message from %d: %v", id, err)
				continue
			}

			switch msg.Type {
			case "spawn":
				hub.SpawnBalls(msg.X, msg.Y, msg.Count)
			case "speed":
				hub.SetTimeScale(msg.Scale)
			default:
				log.Printf("unknown message type %q from %d", msg.Type, id)
			}
		}
	})

	log.Printf("bounced listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

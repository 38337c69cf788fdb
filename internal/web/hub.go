package web

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/broadcast"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

const (
	backlogSize = 500 // messages replayed to a spectator who joins late
	sendBuffer  = 64  // a client further behind than this is dropped
)

// Message is what spectators receive over the websocket.
type Message struct {
	Type   string         `json:"type"` // "event"
	GameID string         `json:"game_id,omitempty"`
	Event  view.EventView `json:"event"`
}

type client struct {
	send chan []byte
}

// Hub fans game events out to connected spectators. It is a log.EventLogger,
// so an in-process game logs into it directly; events relayed from Redis
// come in through Relay.
type Hub struct {
	log.MemoryLogger
	gameID string

	mu      sync.Mutex
	clients map[*client]struct{}
	backlog [][]byte
	diag    logrus.FieldLogger
}

// NewHub creates a hub. gameID labels events logged directly (may be empty).
func NewHub(gameID string, diag logrus.FieldLogger) *Hub {
	if diag == nil {
		diag = logrus.StandardLogger()
	}
	return &Hub{
		gameID:  gameID,
		clients: make(map[*client]struct{}),
		diag:    diag,
	}
}

// Log implements log.EventLogger.
func (h *Hub) Log(event log.GameEvent) {
	h.MemoryLogger.Log(event)
	h.broadcast(Message{Type: "event", GameID: h.gameID, Event: view.Event(event)})
}

// Relay forwards an event received from another process.
func (h *Hub) Relay(env broadcast.Envelope) {
	h.broadcast(Message{Type: "event", GameID: env.GameID.String(), Event: env.Event})
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.diag.WithError(err).Warn("failed to marshal spectator message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.backlog = append(h.backlog, data)
	if len(h.backlog) > backlogSize {
		h.backlog = h.backlog[len(h.backlog)-backlogSize:]
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.diag.Warn("dropping slow spectator")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// register adds a client and returns it along with the backlog to replay.
func (h *Hub) register() (*client, [][]byte) {
	c := &client{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	backlog := make([][]byte, len(h.backlog))
	copy(backlog, h.backlog)
	return c, backlog
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

// Hub maps connection ids to their outbound queues.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clients[c.id] == c {
		delete(that.clients, c.id)
	}
}

// Publish encodes the event once and queues it for every known recipient.
// It never blocks: a full queue loses the event.
func (that *Hub) Publish(recipients []string, event entity.Event) {
	log := that.logger.With("method", "Publish", "action", event.Action)

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, id := range recipients {
		c, ok := that.clients[id]
		if !ok {
			continue
		}

		if !c.enqueue(data) {
			log.Warn("send queue is full, dropping event", "connID", id)
		}
	}
}

// Count returns the number of open connections.
func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Package session tracks the terminal sessions served by one process so they
// can be told about a shutdown and waited for.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Notice is a message from the hub to a session.
type Notice int

const (
	NoticeShutdown Notice = iota // the server is going down
)

func (n Notice) String() string {
	if n == NoticeShutdown {
		return "shutdown"
	}
	return "unknown"
}

// Handle represents one registered session.
type Handle struct {
	ID      int
	Name    string
	Notices chan Notice // closed when the session is unregistered
}

// Hub is the set of live sessions. Safe for concurrent use.
type Hub struct {
	mu           sync.RWMutex
	clients      map[int]*Handle
	nextClientID int
	closing      bool
	logger       *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:      make(map[int]*Handle),
		nextClientID: 1,
		logger:       logger,
	}
}

// Register adds a session. A session registered while the hub is shutting
// down receives the shutdown notice immediately.
func (h *Hub) Register(name string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:      h.nextClientID,
		Name:    name,
		Notices: make(chan Notice, 4),
	}
	h.nextClientID++
	h.clients[handle.ID] = handle
	if h.closing {
		handle.Notices <- NoticeShutdown
	}
	h.logger.Debug("session registered", "id", handle.ID, "name", name, "sessions", len(h.clients))
	return handle
}

// Unregister removes a session and closes its notice channel. Unknown IDs
// are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.clients[id]
	if !ok {
		return
	}
	close(handle.Notices)
	delete(h.clients, id)
	h.logger.Debug("session unregistered", "id", id, "sessions", len(h.clients))
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every session and waits until all of them have
// unregistered or the timeout passes. Returns true if every session left.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closing = true
	for _, handle := range h.clients {
		select {
		case handle.Notices <- NoticeShutdown:
		default:
		}
	}
	h.logger.Info("shutdown notice sent", "sessions", len(h.clients))
	h.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.logger.Warn("sessions still open after shutdown timeout", "sessions", h.Count())
			return false
		case <-ticker.C:
		}
	}
}

package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub keeps the connections of this process and the rooms they follow.
// Publishing never blocks: a connection whose buffer is full misses the
// message.
type Hub struct {
	clients            map[*UserClient]struct{}
	rooms              map[string]map[*UserClient]struct{}
	Register           chan *UserClient
	Unregister         chan *UserClient
	mu                 sync.RWMutex
	logger             zerolog.Logger
	OnClientUnregister func(client *UserClient) error
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*UserClient]struct{}),
		rooms:      make(map[string]map[*UserClient]struct{}),
		Register:   make(chan *UserClient),
		Unregister: make(chan *UserClient),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", client.UserId).Str("role", client.Role).Msg("client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.detach(client)
				h.logger.Debug().Str("user_id", client.UserId).Msg("client disconnected")
			}
			h.mu.Unlock()

			if h.OnClientUnregister != nil {
				if err := h.OnClientUnregister(client); err != nil {
					h.logger.Error().Err(err).Msg("OnClientUnregister failed")
				}
			}
		}
	}
}

// detach drops the client from every room and closes its buffer.
// Callers hold h.mu.
func (h *Hub) detach(client *UserClient) {
	for room := range client.rooms {
		h.removeFromRoom(client, room)
	}
	delete(h.clients, client)
	client.closed = true
	close(client.send)
}

func (h *Hub) removeFromRoom(client *UserClient, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	delete(client.rooms, room)
}

func (h *Hub) deliver(client *UserClient, message []byte) {
	select {
	case client.send <- message:
	default:
		h.logger.Warn().Str("user_id", client.UserId).Msg("send buffer full, message dropped")
	}
}

func (h *Hub) Join(client *UserClient, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.closed {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*UserClient]struct{})
		h.rooms[room] = members
	}
	members[client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (h *Hub) Leave(client *UserClient, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(client, room)
}

func (h *Hub) PublishToRoom(room string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		h.deliver(client, message)
	}
}

// SendToClient delivers to a single connection of this process.
func (h *Hub) SendToClient(client *UserClient, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client.closed {
		return
	}
	h.deliver(client, message)
}

// GetClientCount reports the connections held by this process.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize reports how many connections follow room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) RegisterClient(client *UserClient) {
	h.Register <- client
}

func (h *Hub) UnregisterClient(client *UserClient) {
	h.Unregister <- client
}

func (h *Hub) SetOnClientUnregister(callback func(client *UserClient) error) {
	h.OnClientUnregister = callback
}

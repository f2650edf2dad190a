package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/campusbuzz/backend/cache"
)

// Hub maintains the set of active clients and routes events to the sockets
// of individual users. It is constructed once in main and injected into the
// websocket handler and any controller that needs to push events; there is
// no package-level instance.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Sockets per authenticated user (a user may have several tabs open)
	users map[uint]map[*Client]bool

	// Mutex for users map
	usersMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	presence *cache.PresenceStore
	unread   *cache.UnreadStore
}

// NewHub creates a new hub instance. presence and unread may be nil, in
// which case the corresponding Redis updates are skipped.
func NewHub(presence *cache.PresenceStore, unread *cache.UnreadStore) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		users:      make(map[uint]map[*Client]bool),
		presence:   presence,
		unread:     unread,
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.usersMux.Lock()
			h.clients[client] = true
			h.usersMux.Unlock()
		case client := <-h.unregister:
			h.usersMux.Lock()
			if _, ok := h.clients[client]; ok {
				h.dropClientLocked(client)
			}
			h.usersMux.Unlock()
		}
	}
}

// joinUser binds a client to a user id after a successful join event.
// Calling it again for an already-joined client is a no-op, so a duplicate
// join never produces a second registration.
func (h *Hub) joinUser(client *Client, userID uint) {
	h.usersMux.Lock()
	defer h.usersMux.Unlock()

	// A socket's identity is fixed after its first join
	if client.userID != 0 {
		return
	}
	client.userID = userID

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[*Client]bool)
	}
	h.users[userID][client] = true

	if h.presence != nil {
		h.presence.SetOnline(context.Background(), userID)
	}
}

// leaveUser removes a client from its user's socket set
func (h *Hub) leaveUser(client *Client) {
	h.usersMux.Lock()
	defer h.usersMux.Unlock()
	h.leaveUserLocked(client)
}

func (h *Hub) leaveUserLocked(client *Client) {
	if client.userID == 0 {
		return
	}

	if clients, ok := h.users[client.userID]; ok {
		delete(clients, client)
		// Last socket gone: the user is offline
		if len(clients) == 0 {
			delete(h.users, client.userID)
			if h.presence != nil {
				h.presence.SetOffline(context.Background(), client.userID)
			}
		}
	}
}

// dropClientLocked evicts a client from every hub structure and closes its
// send channel exactly once. Caller must hold usersMux.
func (h *Hub) dropClientLocked(client *Client) {
	delete(h.clients, client)
	h.leaveUserLocked(client)
	if !client.closed {
		client.closed = true
		close(client.send)
	}
}

// sendToUser delivers raw bytes to every socket of a user. Clients whose
// buffers are full are evicted in place; eviction and channel close happen
// under the same mutex, so concurrent senders cannot race on the maps or
// double-close the channel.
func (h *Hub) sendToUser(userID uint, message []byte) {
	h.usersMux.Lock()
	defer h.usersMux.Unlock()

	if clients, ok := h.users[userID]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				h.dropClientLocked(client)
			}
		}
	}
}

// deliver queues a frame for one client, dropping it if the client's
// buffer is full or its channel is already closed.
func (h *Hub) deliver(client *Client, message []byte) {
	h.usersMux.Lock()
	defer h.usersMux.Unlock()

	if client.closed {
		return
	}

	select {
	case client.send <- message:
	default:
	}
}

// SendToUser pushes a typed event to every open socket of a user. Delivery
// is best-effort; users without a live socket simply miss the event.
func (h *Hub) SendToUser(userID uint, eventType string, payload interface{}) {
	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	h.sendToUser(userID, eventBytes)
}

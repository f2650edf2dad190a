package websocket

import (
	"encoding/json"
	"sync"
	"testing"
)

func newTestClient(h *Hub) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, 8),
	}
}

func TestJoinUserRegistersOnce(t *testing.T) {
	hub := NewHub(nil, nil)
	client := newTestClient(hub)

	hub.joinUser(client, 42)
	hub.joinUser(client, 42) // duplicate join must be a no-op

	if got := len(hub.users[42]); got != 1 {
		t.Errorf("sockets registered for user = %d, want 1", got)
	}
	if client.userID != 42 {
		t.Errorf("client userID = %d, want 42", client.userID)
	}
}

func TestJoinUserAllowsMultipleSockets(t *testing.T) {
	hub := NewHub(nil, nil)
	first := newTestClient(hub)
	second := newTestClient(hub)

	hub.joinUser(first, 7)
	hub.joinUser(second, 7)

	if got := len(hub.users[7]); got != 2 {
		t.Errorf("sockets registered for user = %d, want 2", got)
	}
}

func TestLeaveUserDropsEmptyEntry(t *testing.T) {
	hub := NewHub(nil, nil)
	first := newTestClient(hub)
	second := newTestClient(hub)

	hub.joinUser(first, 7)
	hub.joinUser(second, 7)

	hub.leaveUser(first)
	if got := len(hub.users[7]); got != 1 {
		t.Fatalf("sockets after first leave = %d, want 1", got)
	}

	hub.leaveUser(second)
	if _, ok := hub.users[7]; ok {
		t.Error("user entry should be removed after last socket leaves")
	}
}

func TestLeaveUserBeforeJoinIsNoop(t *testing.T) {
	hub := NewHub(nil, nil)
	client := newTestClient(hub)

	hub.leaveUser(client) // never joined; must not panic or mutate
	if len(hub.users) != 0 {
		t.Errorf("users map len = %d, want 0", len(hub.users))
	}
}

func TestSendToUserDeliversTypedEvent(t *testing.T) {
	hub := NewHub(nil, nil)
	client := newTestClient(hub)
	hub.joinUser(client, 5)

	hub.SendToUser(5, EventMessageDeleted, DeleteMessagePayload{MessageID: 99})

	select {
	case frame := <-client.send:
		var event struct {
			Type    string               `json:"type"`
			Payload DeleteMessagePayload `json:"payload"`
		}
		if err := json.Unmarshal(frame, &event); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if event.Type != EventMessageDeleted {
			t.Errorf("event type = %q, want %q", event.Type, EventMessageDeleted)
		}
		if event.Payload.MessageID != 99 {
			t.Errorf("message id = %d, want 99", event.Payload.MessageID)
		}
	default:
		t.Fatal("no frame delivered to client")
	}
}

func TestSendToUserSkipsOtherUsers(t *testing.T) {
	hub := NewHub(nil, nil)
	target := newTestClient(hub)
	bystander := newTestClient(hub)
	hub.joinUser(target, 1)
	hub.joinUser(bystander, 2)

	hub.SendToUser(1, EventReceiveMessage, map[string]string{"content": "hi"})

	if len(target.send) != 1 {
		t.Errorf("target frames = %d, want 1", len(target.send))
	}
	if len(bystander.send) != 0 {
		t.Errorf("bystander frames = %d, want 0", len(bystander.send))
	}
}

func TestSendEventDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil, nil)
	client := &Client{hub: hub, send: make(chan []byte)} // unbuffered, no reader

	// Must not block
	client.sendEvent(EventMessageError, errorPayload{Message: "overflow"})
}

// Many handler goroutines pushing to one slow client must evict it exactly
// once instead of corrupting the hub maps or double-closing its channel.
func TestConcurrentSendsToSlowClient(t *testing.T) {
	hub := NewHub(nil, nil)
	client := &Client{hub: hub, send: make(chan []byte)} // unbuffered, no reader
	hub.clients[client] = true
	hub.joinUser(client, 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToUser(1, EventReceiveMessage, map[string]string{"content": "hi"})
		}()
	}
	wg.Wait()

	hub.usersMux.Lock()
	defer hub.usersMux.Unlock()
	if _, ok := hub.users[1]; ok {
		t.Error("slow client should have been evicted from the user map")
	}
	if _, ok := hub.clients[client]; ok {
		t.Error("slow client should have been evicted from the client set")
	}
	if !client.closed {
		t.Error("send channel should be marked closed")
	}
}

func TestSendEventAfterEvictionIsSafe(t *testing.T) {
	hub := NewHub(nil, nil)
	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.clients[client] = true
	hub.joinUser(client, 2)

	hub.usersMux.Lock()
	hub.dropClientLocked(client)
	hub.usersMux.Unlock()

	// Sending on the closed channel would panic; deliver must drop instead
	client.sendEvent(EventMessageError, errorPayload{Message: "late"})
}

func TestEnvelopeRoundTrip(t *testing.T) {
	frame := []byte(`{"type":"sendMessage","payload":{"receiver_id":3,"content":"yo"}}`)

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Type != EventSendMessage {
		t.Errorf("type = %q, want %q", env.Type, EventSendMessage)
	}

	var payload SendMessagePayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ReceiverID != 3 || payload.Content != "yo" {
		t.Errorf("payload = %+v", payload)
	}
}

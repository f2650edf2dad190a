package websocket

import (
	"context"
	"encoding/json"
	"log"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/campusbuzz/backend/utils"
)

// Client-to-server event types
const (
	EventJoin          = "join"
	EventSendMessage   = "sendMessage"
	EventDeleteMessage = "deleteMessage"
)

// Server-to-client event types
const (
	EventReceiveMessage = "receiveMessage"
	EventMessageSent    = "messageSent"
	EventMessageDeleted = "messageDeleted"
	EventMessageError   = "messageError"
	EventDeleteError    = "deleteError"
)

// JoinPayload authenticates a socket. The user id is taken from the token,
// not from the client-supplied field.
type JoinPayload struct {
	UserID uint   `json:"user_id"`
	Token  string `json:"token"`
}

// SendMessagePayload carries a new direct message. Shared posts are
// referenced by id; the server takes the snapshot itself.
type SendMessagePayload struct {
	ReceiverID   uint     `json:"receiver_id"`
	Content      string   `json:"content"`
	Images       []string `json:"images,omitempty"`
	MessageType  string   `json:"message_type"`
	SharedPostID uint     `json:"shared_post_id,omitempty"`
}

// DeleteMessagePayload identifies a message to delete
type DeleteMessagePayload struct {
	MessageID uint `json:"message_id"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// HandleIncomingEvent processes one frame from a client socket
func HandleIncomingEvent(client *Client, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		log.Printf("error unmarshaling event: %v", err)
		return
	}

	switch env.Type {
	case EventJoin:
		var payload JoinPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			log.Printf("error unmarshaling join payload: %v", err)
			return
		}
		handleJoin(client, payload)
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			client.sendEvent(EventMessageError, errorPayload{Message: "Malformed message payload"})
			return
		}
		handleSendMessage(client, payload)
	case EventDeleteMessage:
		var payload DeleteMessagePayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			client.sendEvent(EventDeleteError, errorPayload{Message: "Malformed delete payload"})
			return
		}
		handleDeleteMessage(client, payload)
	default:
		log.Printf("unknown event type: %s", env.Type)
	}
}

func handleJoin(client *Client, payload JoinPayload) {
	userID, err := utils.ParseToken(payload.Token)
	if err != nil {
		log.Printf("join rejected: %v", err)
		client.conn.Close()
		return
	}

	client.hub.joinUser(client, userID)
}

func handleSendMessage(client *Client, payload SendMessagePayload) {
	if client.userID == 0 {
		client.sendEvent(EventMessageError, errorPayload{Message: "Join before sending messages"})
		return
	}

	message, err := SaveMessage(client.userID, payload)
	if err != nil {
		client.sendEvent(EventMessageError, errorPayload{Message: err.Error()})
		return
	}

	if client.hub.unread != nil {
		client.hub.unread.Increment(context.Background(), message.ReceiverID, message.SenderID)
	}

	client.hub.SendToUser(message.ReceiverID, EventReceiveMessage, message)
	client.sendEvent(EventMessageSent, message)
}

func handleDeleteMessage(client *Client, payload DeleteMessagePayload) {
	if client.userID == 0 {
		client.sendEvent(EventDeleteError, errorPayload{Message: "Join before deleting messages"})
		return
	}

	var message models.Message
	if err := database.DB.First(&message, payload.MessageID).Error; err != nil {
		client.sendEvent(EventDeleteError, errorPayload{Message: "Message not found"})
		return
	}

	if message.SenderID != client.userID {
		client.sendEvent(EventDeleteError, errorPayload{Message: "Only the sender can delete a message"})
		return
	}

	if err := database.DB.Delete(&message).Error; err != nil {
		log.Printf("error deleting message %d: %v", payload.MessageID, err)
		client.sendEvent(EventDeleteError, errorPayload{Message: "Failed to delete message"})
		return
	}

	deleted := DeleteMessagePayload{MessageID: message.ID}
	client.hub.SendToUser(message.ReceiverID, EventMessageDeleted, deleted)
	client.sendEvent(EventMessageDeleted, deleted)
}

// SaveMessage validates and persists a direct message. The sender must be
// connected to the receiver. Shared by the socket path and the REST path.
func SaveMessage(senderID uint, payload SendMessagePayload) (models.Message, error) {
	messageType := payload.MessageType
	if messageType == "" {
		messageType = models.MessagePlain
	}

	message := models.Message{
		SenderID:    senderID,
		ReceiverID:  payload.ReceiverID,
		Content:     payload.Content,
		Images:      payload.Images,
		MessageType: messageType,
	}

	// Snapshot shared posts server-side so clients cannot forge the
	// embedded author or counts
	if messageType == models.MessageSharedPost {
		var post models.Post
		if err := database.DB.Preload("Author").First(&post, payload.SharedPostID).Error; err != nil {
			return message, ErrPostNotFound
		}
		message.SharedPost = post.Snapshot()
	}

	if message.Empty() {
		return message, ErrEmptyMessage
	}

	var conn models.Connection
	err := database.DB.Where(
		"((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
		senderID, payload.ReceiverID, payload.ReceiverID, senderID, models.ConnectionAccepted,
	).First(&conn).Error
	if err != nil {
		return message, ErrNotConnected
	}

	if err := database.DB.Create(&message).Error; err != nil {
		return message, ErrSaveFailed
	}

	if err := database.DB.Preload("Sender").Preload("Receiver").First(&message, message.ID).Error; err != nil {
		log.Printf("error loading participants for message %d: %v", message.ID, err)
	}

	return message, nil
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/cache"
	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/campusbuzz/backend/websocket"
	"github.com/gin-gonic/gin"
)

type CreateMessageInput struct {
	ReceiverID   uint     `json:"receiver_id" binding:"required" example:"2"`
	Content      string   `json:"content" example:"See you at the fest!"`
	Images       []string `json:"images"`
	MessageType  string   `json:"message_type" binding:"omitempty,oneof=plain shared_post"`
	SharedPostID uint     `json:"shared_post_id"`
}

// MessageController serves the direct-message endpoints. The hub is
// injected so HTTP sends reuse the same delivery path as socket sends.
type MessageController struct {
	hub    *websocket.Hub
	unread *cache.UnreadStore
}

func NewMessageController(hub *websocket.Hub, unread *cache.UnreadStore) *MessageController {
	return &MessageController{hub: hub, unread: unread}
}

// CreateMessage godoc
// @Summary Send a direct message
// @Description Persists a message and pushes it to the receiver's sockets
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body CreateMessageInput true "Message"
// @Success 201 {object} map[string]interface{} "Message sent"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not connected to receiver"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages [post]
func (ctrl *MessageController) CreateMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := websocket.SaveMessage(userID, websocket.SendMessagePayload{
		ReceiverID:   input.ReceiverID,
		Content:      input.Content,
		Images:       input.Images,
		MessageType:  input.MessageType,
		SharedPostID: input.SharedPostID,
	})
	if err != nil {
		switch {
		case errors.Is(err, websocket.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, websocket.ErrNotConnected):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, websocket.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	if ctrl.unread != nil {
		ctrl.unread.Increment(c.Request.Context(), message.ReceiverID, userID)
	}
	ctrl.hub.SendToUser(message.ReceiverID, websocket.EventReceiveMessage, message)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// GetThread godoc
// @Summary Get the message thread with another user
// @Description Returns the full thread in ascending order and resets the
// conversation's unread count to zero
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Peer user ID"
// @Success 200 {object} map[string]interface{} "Messages"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/{userId} [get]
func (ctrl *MessageController) GetThread(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	peerID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var messages []models.Message
	if err := database.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID,
	).Order("created_at ASC").
		Preload("Sender").Preload("Receiver").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	// Viewing the thread marks it read
	if ctrl.unread != nil {
		ctrl.unread.Reset(c.Request.Context(), userID, uint(peerID))
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations godoc
// @Summary List conversation summaries
// @Description Returns one summary per peer, sorted descending by the last
// message's timestamp
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Conversation summaries"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/conversations [get]
func (ctrl *MessageController) GetConversations(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var messages []models.Message
	if err := database.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Preload("Sender").Preload("Receiver").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	summaries := models.BuildSummaries(userID, messages, func(peerID uint) int64 {
		if ctrl.unread == nil {
			return 0
		}
		return ctrl.unread.Get(c.Request.Context(), userID, peerID)
	})

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetUnreadCount godoc
// @Summary Get total unread message count
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64 "Unread count"
// @Router /api/messages/unread-count [get]
func (ctrl *MessageController) GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var total int64
	if ctrl.unread != nil {
		total = ctrl.unread.Total(c.Request.Context(), userID)
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": total})
}

// DeleteMessage godoc
// @Summary Delete a message
// @Description Deletes a message the viewer sent. The HTTP response is
// authoritative; the socket broadcast to the peer is best-effort.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string "Message deleted"
// @Failure 400 {object} map[string]string "Invalid message ID"
// @Failure 403 {object} map[string]string "Not the sender"
// @Failure 404 {object} map[string]string "Message not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/{id} [delete]
func (ctrl *MessageController) DeleteMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message
	if err := database.DB.First(&message, messageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender can delete a message"})
		return
	}

	if err := database.DB.Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	deleted := websocket.DeleteMessagePayload{MessageID: message.ID}
	ctrl.hub.SendToUser(message.ReceiverID, websocket.EventMessageDeleted, deleted)
	ctrl.hub.SendToUser(message.SenderID, websocket.EventMessageDeleted, deleted)

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

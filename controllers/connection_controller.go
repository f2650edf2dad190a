package controllers

import (
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/cache"
	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
)

type BatchStatusInput struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

// ConnectionController mutates the bilateral relationship between two
// users. Every transition maps to one endpoint; state is kept in a single
// row per pair so both sides always derive consistent views.
type ConnectionController struct {
	presence *cache.PresenceStore
}

func NewConnectionController(presence *cache.PresenceStore) *ConnectionController {
	return &ConnectionController{presence: presence}
}

func parseSubjectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

func pairQuery(a, b uint) (string, []interface{}) {
	return "(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		[]interface{}{a, b, b, a}
}

// Connect godoc
// @Summary Send a connection request
// @Description Moves the pair from not_connected to pending
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 201 {object} map[string]string "Request sent"
// @Failure 400 {object} map[string]string "Invalid target"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Pair already has a state"
// @Router /api/user/connect/{id} [post]
func (ctrl *ConnectionController) Connect(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	if subjectID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot connect to yourself"})
		return
	}

	var subject models.User
	if err := database.DB.First(&subject, subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Any existing row means the transition is illegal from this state
	var existing models.Connection
	query, args := pairQuery(userID, subjectID)
	if err := database.DB.Where(query, args...).First(&existing).Error; err == nil {
		switch existing.StatusFor(userID) {
		case models.StatusConnected:
			c.JSON(http.StatusConflict, gin.H{"error": "Already connected"})
		case models.StatusPending:
			c.JSON(http.StatusConflict, gin.H{"error": "Request already sent"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "This user has already sent you a request"})
		}
		return
	}

	conn := models.Connection{
		RequesterID: userID,
		AddresseeID: subjectID,
		Status:      models.ConnectionPending,
	}

	if err := database.DB.Create(&conn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send connection request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Connection request sent", "status": models.StatusPending})
}

// Accept godoc
// @Summary Accept a connection request
// @Description Moves the pair from request_received to connected
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 200 {object} map[string]string "Request accepted"
// @Failure 404 {object} map[string]string "No pending request"
// @Router /api/user/connect/{id}/accept [post]
func (ctrl *ConnectionController) Accept(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	var conn models.Connection
	if err := database.DB.Where("requester_id = ? AND addressee_id = ? AND status = ?",
		subjectID, userID, models.ConnectionPending).First(&conn).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found or already processed"})
		return
	}

	conn.Status = models.ConnectionAccepted
	if err := database.DB.Save(&conn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept connection request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request accepted", "status": models.StatusConnected})
}

// Decline godoc
// @Summary Decline a connection request
// @Description Moves the pair from request_received back to not_connected
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 200 {object} map[string]string "Request declined"
// @Failure 404 {object} map[string]string "No pending request"
// @Router /api/user/connect/{id}/decline [post]
func (ctrl *ConnectionController) Decline(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	result := database.DB.Where("requester_id = ? AND addressee_id = ? AND status = ?",
		subjectID, userID, models.ConnectionPending).Delete(&models.Connection{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline connection request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found or already processed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request declined", "status": models.StatusNotConnected})
}

// Cancel godoc
// @Summary Cancel an outgoing connection request
// @Description Moves the pair from pending back to not_connected
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 200 {object} map[string]string "Request cancelled"
// @Failure 404 {object} map[string]string "No pending request"
// @Router /api/user/connect/{id}/cancel [post]
func (ctrl *ConnectionController) Cancel(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	result := database.DB.Where("requester_id = ? AND addressee_id = ? AND status = ?",
		userID, subjectID, models.ConnectionPending).Delete(&models.Connection{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel connection request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connection request not found or already processed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request cancelled", "status": models.StatusNotConnected})
}

// Disconnect godoc
// @Summary Remove an established connection
// @Description Moves the pair from connected back to not_connected
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 200 {object} map[string]string "Connection removed"
// @Failure 404 {object} map[string]string "Not connected"
// @Router /api/user/connect/{id}/disconnect [post]
func (ctrl *ConnectionController) Disconnect(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	query, args := pairQuery(userID, subjectID)
	result := database.DB.Where("status = ?", models.ConnectionAccepted).
		Where(query, args...).Delete(&models.Connection{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove connection"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not connected to this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection removed", "status": models.StatusNotConnected})
}

// Status godoc
// @Summary Get the connection status toward a user
// @Description Returns the viewer-perspective status for the subject user
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject user ID"
// @Success 200 {object} map[string]string "Current status"
// @Router /api/user/connect/{id}/status [get]
func (ctrl *ConnectionController) Status(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	subjectID, ok := parseSubjectID(c)
	if !ok {
		return
	}

	status := models.StatusNotConnected
	var conn models.Connection
	query, args := pairQuery(userID, subjectID)
	if err := database.DB.Where(query, args...).First(&conn).Error; err == nil {
		status = conn.StatusFor(userID)
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// BatchStatuses godoc
// @Summary Get connection statuses for several users at once
// @Description Returns a map of user ID to viewer-perspective status
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BatchStatusInput true "User IDs"
// @Success 200 {object} map[string]interface{} "Status map"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/user/connect/statuses [post]
func (ctrl *ConnectionController) BatchStatuses(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input BatchStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var conns []models.Connection
	if err := database.DB.Where(
		"(requester_id = ? AND addressee_id IN ?) OR (addressee_id = ? AND requester_id IN ?)",
		userID, input.UserIDs, userID, input.UserIDs,
	).Find(&conns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statuses"})
		return
	}

	statuses := make(map[uint]string, len(input.UserIDs))
	for _, id := range input.UserIDs {
		statuses[id] = models.StatusNotConnected
	}
	for _, conn := range conns {
		statuses[conn.PeerOf(userID)] = conn.StatusFor(userID)
	}

	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// ListConnections godoc
// @Summary List established connections
// @Description Returns the viewer's accepted connections with online flags
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Connections"
// @Router /api/user/connections [get]
func (ctrl *ConnectionController) ListConnections(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var conns []models.Connection
	if err := database.DB.Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, models.ConnectionAccepted).
		Preload("Requester").Preload("Addressee").
		Find(&conns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connections"})
		return
	}

	peers := make([]gin.H, 0, len(conns))
	for _, conn := range conns {
		peer := conn.Requester
		if conn.RequesterID == userID {
			peer = conn.Addressee
		}

		online := false
		if ctrl.presence != nil {
			online = ctrl.presence.IsOnline(c.Request.Context(), peer.ID)
		}

		peers = append(peers, gin.H{
			"user":         peer,
			"online":       online,
			"connected_at": conn.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"connections": peers})
}

// PendingRequests godoc
// @Summary List incoming connection requests
// @Description Returns pending requests addressed to the viewer
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Pending requests"
// @Router /api/user/connect/pending [get]
func (ctrl *ConnectionController) PendingRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var conns []models.Connection
	if err := database.DB.Where("addressee_id = ? AND status = ?", userID, models.ConnectionPending).
		Preload("Requester").
		Find(&conns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": conns})
}

// SearchUsers godoc
// @Summary Search users by name or email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Success 200 {object} map[string]interface{} "Matching users"
// @Router /api/user/search [get]
func (ctrl *ConnectionController) SearchUsers(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"users": []models.User{}})
		return
	}

	var users []models.User
	if err := database.DB.Where("id <> ?", userID).
		Where("name ILIKE ? OR email ILIKE ?", "%"+q+"%", "%"+q+"%").
		Limit(20).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

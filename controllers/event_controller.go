package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
)

type CreateEventInput struct {
	Title       string    `json:"title" binding:"required" example:"Tech Fest 2026"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ClubID      *uint     `json:"club_id"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

// GetEvents godoc
// @Summary List upcoming events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Events, soonest first"
// @Router /api/events [get]
func GetEvents(c *gin.Context) {
	var events []models.Event
	if err := database.DB.Order("starts_at ASC").
		Preload("Club").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventInput true "Event"
// @Success 201 {object} map[string]interface{} "Event created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a member of the club"
// @Router /api/events [post]
func CreateEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Club events can only be posted by members
	if input.ClubID != nil {
		var member models.ClubMember
		if err := database.DB.Where("club_id = ? AND user_id = ?", *input.ClubID, userID).
			First(&member).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "You must be a club member to post its events"})
			return
		}
	}

	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		ClubID:      input.ClubID,
		StartsAt:    input.StartsAt,
		CreatedBy:   userID,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": event})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string "Event deleted"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /api/events/{id} [delete]
func DeleteEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var event models.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the event creator can delete the event"})
		return
	}

	if err := database.DB.Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

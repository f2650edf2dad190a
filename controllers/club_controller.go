package controllers

import (
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
)

type CreateClubInput struct {
	Name        string `json:"name" binding:"required" example:"Robotics Club"`
	Description string `json:"description"`
}

// GetClubs godoc
// @Summary List all clubs
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Clubs"
// @Router /api/clubs [get]
func GetClubs(c *gin.Context) {
	var clubs []models.Club
	if err := database.DB.Preload("Members").Find(&clubs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clubs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

// CreateClub godoc
// @Summary Create a club
// @Description Creates a club with the authenticated user as first member
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club body CreateClubInput true "Club"
// @Success 201 {object} map[string]interface{} "Club created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/clubs [post]
func CreateClub(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateClubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club := models.Club{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   userID,
	}

	if err := database.DB.Create(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create club"})
		return
	}

	// Creator joins automatically
	member := models.ClubMember{
		ClubID: club.ID,
		UserID: userID,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add creator to club"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Club created successfully", "club": club})
}

// JoinClub godoc
// @Summary Join a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]string "Joined"
// @Failure 404 {object} map[string]string "Club not found"
// @Failure 409 {object} map[string]string "Already a member"
// @Router /api/clubs/{id}/join [post]
func JoinClub(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	clubID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid club ID"})
		return
	}

	var club models.Club
	if err := database.DB.First(&club, clubID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var existing models.ClubMember
	if err := database.DB.Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already a member of this club"})
		return
	}

	member := models.ClubMember{ClubID: uint(clubID), UserID: userID}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined club successfully"})
}

// LeaveClub godoc
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]string "Left"
// @Failure 404 {object} map[string]string "Not a member"
// @Router /api/clubs/{id}/leave [post]
func LeaveClub(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	clubID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid club ID"})
		return
	}

	result := database.DB.Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&models.ClubMember{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave club"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not a member of this club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left club successfully"})
}

// DeleteClub godoc
// @Summary Delete a club
// @Description Deletes a club and its memberships. Creator only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]string "Club deleted"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 404 {object} map[string]string "Club not found"
// @Router /api/clubs/{id} [delete]
func DeleteClub(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	clubID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid club ID"})
		return
	}

	var club models.Club
	if err := database.DB.First(&club, clubID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	if club.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the club creator can delete the club"})
		return
	}

	if err := database.DB.Where("club_id = ?", clubID).Delete(&models.ClubMember{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete club members"})
		return
	}

	if err := database.DB.Delete(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Club deleted successfully"})
}

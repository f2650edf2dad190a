package controllers

import (
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
)

type CreateNoticeInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	FileURL  string `json:"file_url"`
}

// GetNotices godoc
// @Summary List notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} map[string]interface{} "Notices, newest first"
// @Router /api/notices [get]
func GetNotices(c *gin.Context) {
	query := database.DB.Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var notices []models.Notice
	if err := query.Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

// CreateNotice godoc
// @Summary Publish a notice
// @Description Faculty and admin only
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notice body CreateNoticeInput true "Notice"
// @Success 201 {object} map[string]interface{} "Notice published"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Students cannot publish notices"
// @Router /api/notices [post]
func CreateNotice(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.Role == models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only faculty and admins can publish notices"})
		return
	}

	var input CreateNoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice := models.Notice{
		Title:     input.Title,
		Content:   input.Content,
		Author:    user.Name,
		Category:  input.Category,
		FileURL:   input.FileURL,
		CreatedBy: userID,
	}

	if err := database.DB.Create(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish notice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Notice published successfully", "notice": notice})
}

// DeleteNotice godoc
// @Summary Delete a notice
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} map[string]string "Notice deleted"
// @Failure 403 {object} map[string]string "Not the publisher"
// @Failure 404 {object} map[string]string "Notice not found"
// @Router /api/notices/{id} [delete]
func DeleteNotice(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	noticeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notice ID"})
		return
	}

	var notice models.Notice
	if err := database.DB.First(&notice, noticeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}

	if notice.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the publisher can delete a notice"})
		return
	}

	if err := database.DB.Delete(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted successfully"})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
)

type CreateItemInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=lost found"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

// GetLostFoundItems godoc
// @Summary List lost-and-found items
// @Tags lostfound
// @Produce json
// @Security BearerAuth
// @Param category query string false "lost or found"
// @Success 200 {object} map[string]interface{} "Items, newest first"
// @Router /api/lostfound [get]
func GetLostFoundItems(c *gin.Context) {
	query := database.DB.Order("created_at DESC").Preload("Creator")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.LostFoundItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateLostFoundItem godoc
// @Summary Report a lost or found item
// @Tags lostfound
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body CreateItemInput true "Item"
// @Success 201 {object} map[string]interface{} "Item reported"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/lostfound [post]
func CreateLostFoundItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.LostFoundItem{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		CreatedBy:   userID,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item reported successfully", "item": item})
}

// ResolveLostFoundItem godoc
// @Summary Mark an item as resolved
// @Tags lostfound
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string "Item resolved"
// @Failure 403 {object} map[string]string "Not the reporter"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /api/lostfound/{id}/resolve [post]
func ResolveLostFoundItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.LostFoundItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if item.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the reporter can resolve an item"})
		return
	}

	if err := database.DB.Model(&item).Update("resolved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item marked as resolved"})
}

// DeleteLostFoundItem godoc
// @Summary Delete a lost-and-found item
// @Tags lostfound
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string "Item deleted"
// @Failure 403 {object} map[string]string "Not the reporter"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /api/lostfound/{id} [delete]
func DeleteLostFoundItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.LostFoundItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if item.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the reporter can delete an item"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

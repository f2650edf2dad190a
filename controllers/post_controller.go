package controllers

import (
	"net/http"
	"strconv"

	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

type CreateCommentInput struct {
	Content string `json:"content" binding:"required"`
}

// GetPosts godoc
// @Summary Get the campus feed
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Feed posts, newest first"
// @Router /api/posts [get]
func GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := database.DB.Order("created_at DESC").
		Preload("Author").
		Limit(100).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost godoc
// @Summary Create a feed post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostInput true "Post"
// @Success 201 {object} map[string]interface{} "Post created"
// @Failure 400 {object} map[string]string "Empty post"
// @Router /api/posts [post]
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Content == "" && len(input.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must contain text or images"})
		return
	}

	post := models.Post{
		AuthorID: userID,
		Content:  input.Content,
		Images:   input.Images,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("Author").First(&post, post.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string "Post deleted"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /api/posts/{id} [delete]
func DeletePost(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete a post"})
		return
	}

	// Remove likes and comments with the post
	if err := database.DB.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post likes"})
		return
	}
	if err := database.DB.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post comments"})
		return
	}
	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description Toggles the viewer's like and returns the new count
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "Like state"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /api/posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var like models.PostLike
	liked := false
	err = database.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err == nil {
		database.DB.Delete(&like)
		database.DB.Model(&post).Update("like_count", gorm.Expr("like_count - 1"))
	} else {
		database.DB.Create(&models.PostLike{PostID: uint(postID), UserID: userID})
		database.DB.Model(&post).Update("like_count", gorm.Expr("like_count + 1"))
		liked = true
	}

	database.DB.First(&post, postID)

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": post.LikeCount})
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param comment body CreateCommentInput true "Comment"
// @Success 201 {object} map[string]interface{} "Comment created"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /api/posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:   uint(postID),
		AuthorID: userID,
		Content:  input.Content,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Model(&post).Update("comment_count", gorm.Expr("comment_count + 1"))
	database.DB.Preload("Author").First(&comment, comment.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "comment": comment})
}

// GetComments godoc
// @Summary List comments on a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "Comments"
// @Router /api/posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Where("post_id = ?", postID).
		Order("created_at ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

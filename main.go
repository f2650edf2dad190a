package main

import (
	"log"
	"os"

	"github.com/campusbuzz/backend/cache"
	"github.com/campusbuzz/backend/controllers"
	"github.com/campusbuzz/backend/database"
	"github.com/campusbuzz/backend/docs"
	"github.com/campusbuzz/backend/middleware"
	"github.com/campusbuzz/backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           CampusBuzz API
// @version         1.0
// @description     API Server for the CampusBuzz campus social network
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database and Redis
	database.Connect()
	database.Migrate()
	database.ConnectRedis()

	presence := cache.NewPresenceStore(database.RDB)
	unread := cache.NewUnreadStore(database.RDB)

	// The hub is the single connection manager; everything that pushes
	// realtime events gets it injected here.
	hub := websocket.NewHub(presence, unread)
	go hub.Run()

	connectionCtrl := controllers.NewConnectionController(presence)
	messageCtrl := controllers.NewMessageController(hub, unread)

	// Set up Swagger info
	docs.SwaggerInfo.Title = "CampusBuzz API"
	docs.SwaggerInfo.Description = "API Server for the CampusBuzz campus social network"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded files
	router.Static("/uploads", "./uploads")

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Connection routes
		api.POST("/user/connect/statuses", connectionCtrl.BatchStatuses)
		api.GET("/user/connect/pending", connectionCtrl.PendingRequests)
		api.POST("/user/connect/:id", connectionCtrl.Connect)
		api.POST("/user/connect/:id/accept", connectionCtrl.Accept)
		api.POST("/user/connect/:id/decline", connectionCtrl.Decline)
		api.POST("/user/connect/:id/cancel", connectionCtrl.Cancel)
		api.POST("/user/connect/:id/disconnect", connectionCtrl.Disconnect)
		api.GET("/user/connect/:id/status", connectionCtrl.Status)
		api.GET("/user/connections", connectionCtrl.ListConnections)
		api.GET("/user/search", connectionCtrl.SearchUsers)

		// Message routes
		api.POST("/messages", messageCtrl.CreateMessage)
		api.GET("/messages/conversations", messageCtrl.GetConversations)
		api.GET("/messages/unread-count", messageCtrl.GetUnreadCount)
		api.GET("/messages/:userId", messageCtrl.GetThread)
		api.DELETE("/messages/:id", messageCtrl.DeleteMessage)

		// Feed routes
		api.GET("/posts", controllers.GetPosts)
		api.POST("/posts", controllers.CreatePost)
		api.DELETE("/posts/:id", controllers.DeletePost)
		api.POST("/posts/:id/like", controllers.ToggleLike)
		api.GET("/posts/:id/comments", controllers.GetComments)
		api.POST("/posts/:id/comments", controllers.CreateComment)

		// Club routes
		api.GET("/clubs", controllers.GetClubs)
		api.POST("/clubs", controllers.CreateClub)
		api.POST("/clubs/:id/join", controllers.JoinClub)
		api.POST("/clubs/:id/leave", controllers.LeaveClub)
		api.DELETE("/clubs/:id", controllers.DeleteClub)

		// Event routes
		api.GET("/events", controllers.GetEvents)
		api.POST("/events", controllers.CreateEvent)
		api.DELETE("/events/:id", controllers.DeleteEvent)

		// Notice routes
		api.GET("/notices", controllers.GetNotices)
		api.POST("/notices", controllers.CreateNotice)
		api.DELETE("/notices/:id", controllers.DeleteNotice)

		// Lost and found routes
		api.GET("/lostfound", controllers.GetLostFoundItems)
		api.POST("/lostfound", controllers.CreateLostFoundItem)
		api.POST("/lostfound/:id/resolve", controllers.ResolveLostFoundItem)
		api.DELETE("/lostfound/:id", controllers.DeleteLostFoundItem)

		// Uploads
		api.POST("/upload", controllers.UploadFile)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/users/:id/role", controllers.UpdateUserRole)
		admin.DELETE("/users/:id", controllers.DeleteUser)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection(hub))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

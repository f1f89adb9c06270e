package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"techstore-backend/internal/shared/middleware"
	"techstore-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupSessionRoutes(v1, c)
		setupAIRoutes(v1, c)
	}

	return router
}

// ========================================
// SESSION ROUTES
// ========================================
func setupSessionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/sessions", c.SessionHandler.CreateSession)

	s := v1.Group("/session", middleware.SessionAuth(c.JWTManager, c.Sessions))
	{
		s.DELETE("", c.SessionHandler.CloseSession)
		s.GET("/user", c.SessionHandler.GetUser)
		s.PUT("/user", c.SessionHandler.ReplaceUser)

		setupAddressRoutes(s, c)
		setupNotificationRoutes(s, c)
		setupProfileRoutes(s, c)
		setupChatRoutes(s, c)
	}
}

// ========================================
// ADDRESS ROUTES
// ========================================
func setupAddressRoutes(s *gin.RouterGroup, c *container.Container) {
	addresses := s.Group("/addresses")
	{
		addresses.GET("", c.AddressHandler.ListAddresses)
		addresses.GET("/default", c.AddressHandler.GetDefaultAddress)
		addresses.POST("", c.AddressHandler.CreateAddress)
		addresses.PUT("/:id", c.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", c.AddressHandler.DeleteAddress)
		addresses.PUT("/:id/default", c.AddressHandler.SetDefaultAddress)
	}
}

// ========================================
// NOTIFICATION ROUTES
// ========================================
func setupNotificationRoutes(s *gin.RouterGroup, c *container.Container) {
	notifications := s.Group("/notifications")
	{
		notifications.GET("", c.NotificationHandler.ListNotifications)
		notifications.PUT("/read-all", c.NotificationHandler.MarkAllAsRead)
		notifications.PUT("/:id/read", c.NotificationHandler.MarkAsRead)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(s *gin.RouterGroup, c *container.Container) {
	profile := s.Group("/profile")
	{
		profile.GET("", c.ProfileHandler.GetProfile)
		profile.PATCH("", c.ProfileHandler.EditProfile)
		profile.POST("/commit", c.ProfileHandler.CommitProfile)
	}
}

// ========================================
// CHAT ROUTES
// ========================================
func setupChatRoutes(s *gin.RouterGroup, c *container.Container) {
	chat := s.Group("/chat")
	{
		chat.GET("", c.ChatHandler.GetTranscript)
		chat.POST("/messages", c.ChatHandler.SubmitMessage)
		chat.GET("/hints", c.ChatHandler.GetHints)
	}
}

// ========================================
// AI ROUTES
// ========================================
func setupAIRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/ai/analyze", c.AIHandler.AnalyzeProduct)
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"sessions":  appCtx.Sessions.Len(),
		}

		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(c.Request.Context()); err != nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		}
		health["services"] = gin.H{"redis": redisStatus}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"policy-vault.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	policyHandler    *handlers.PolicyHandler
	dashboardHandler *handlers.DashboardHandler
	chatbotHandler   *handlers.ChatbotHandler
	authMiddleware   gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Policy routes (protected)
		policies := api.Group("/policies")
		policies.Use(d.authMiddleware)
		{
			policies.POST("", d.policyHandler.Create)
			policies.GET("", d.policyHandler.List)
			policies.GET("/dashboard", d.dashboardHandler.GetStats)
			policies.GET("/:id", d.policyHandler.GetByID)
			policies.DELETE("/:id", d.policyHandler.Delete)
		}

		// Chatbot routes (protected)
		chatbot := api.Group("/chatbot")
		chatbot.Use(d.authMiddleware)
		{
			chatbot.POST("/query", d.chatbotHandler.Query)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "policy-vault-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

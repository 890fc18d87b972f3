package api

import (
	"github.com/gin-gonic/gin"
	"github.com/payperplay/mcstatus/internal/middleware"
	"github.com/payperplay/mcstatus/pkg/config"
)

func SetupRouter(
	statusHandler *StatusHandler,
	healthHandler *HealthHandler,
	prometheusHandler *PrometheusHandler,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	if !cfg.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (in order)
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger("/health", "/live", "/ready", "/prometheus"))
	router.Use(middleware.ErrorHandler())

	// CORS (the lookup API is read-only and public)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.HEAD("/health", healthHandler.HealthCheck) // Docker healthcheck uses HEAD
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", healthHandler.MetricsCheck)

	// Prometheus metrics endpoint
	router.GET("/prometheus", prometheusHandler.MetricsEndpoint)

	api := router.Group("/api")
	{
		status := api.Group("/status")
		{
			status.GET("/java/:address", statusHandler.GetJavaStatus)
			status.GET("/bedrock/:address", statusHandler.GetBedrockStatus)
		}

		icon := api.Group("/icon")
		{
			icon.GET("/:address", statusHandler.GetIcon)
			icon.GET("/:address/url", statusHandler.GetIconURL)
		}

		api.GET("/history/:edition/:address", statusHandler.GetHistory)
	}

	return router
}

package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rideshare/internal/handler"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RiderHandler   *handler.RiderHandler
	DriverHandler  *handler.DriverHandler
	RideHandler    *handler.RideHandler
	ProfileHandler *handler.ProfileHandler
	Caller         middleware.CallerConfig
	// ResponseCache enables Idempotency-Key replay when set.
	ResponseCache middleware.ResponseCache
	NewRelicApp   *newrelic.Application
	Logger        *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.CallerMiddleware(deps.Caller))

	if deps.ResponseCache != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.ResponseCache, logger))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Rider routes.
		riders := v1.Group("/riders")
		{
			riders.POST("", deps.RiderHandler.Register)
			riders.GET("", deps.RiderHandler.GetAll)
			riders.GET("/search", deps.RiderHandler.Search)
			riders.GET("/find", deps.RiderHandler.Find)
			riders.PUT("/replace", deps.RiderHandler.Replace)
			riders.DELETE("", deps.RiderHandler.Remove)
			riders.PATCH("/fields/:field", deps.RiderHandler.UpdateField)
			riders.DELETE("/fields/:field", deps.RiderHandler.ClearField)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.Register)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/search", deps.DriverHandler.Search)
			drivers.GET("/find", deps.DriverHandler.Find)
			drivers.PUT("/rating", deps.DriverHandler.UpdateRating)
			drivers.PUT("/status", deps.DriverHandler.UpdateStatus)
			drivers.PUT("/replace", deps.DriverHandler.Replace)
			drivers.PATCH("/fields/:field", deps.DriverHandler.UpdateField)
			drivers.DELETE("/fields/:field", deps.DriverHandler.ClearField)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.Register)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/search", deps.RideHandler.Search)
			rides.GET("/find", deps.RideHandler.Find)
			rides.POST("/request", deps.RideHandler.RequestRide)
			rides.PUT("/replace", deps.RideHandler.Replace)
			rides.DELETE("", deps.RideHandler.Remove)
			rides.PATCH("/fields/:field", deps.RideHandler.UpdateField)
			rides.DELETE("/fields/:field", deps.RideHandler.ClearField)
			rides.PUT("/driver", deps.RideHandler.UpdateDriver)
			rides.PUT("/rider", deps.RideHandler.UpdateRider)
		}

		// Profile routes.
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/self", deps.ProfileHandler.GetSelf)
			profiles.GET("", deps.ProfileHandler.Get)
			profiles.PUT("", deps.ProfileHandler.Update)
		}
	}

	return router
}

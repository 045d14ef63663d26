package routes

import (
	"time"

	"skyward/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCORS applies the CORS policy for browser clients.
func RegisterCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterFlightRoutes registers flight search and booking endpoints.
func RegisterFlightRoutes(r *gin.Engine, h *handlers.FlightHandler) {
	api := r.Group("/api/flights")
	{
		api.GET("/search", h.SearchFlights)
		api.POST("/book", h.BookFlight)
		api.GET("/:bookingId", h.GetBooking)
		api.DELETE("/:bookingId/cancel", h.CancelBooking)
	}
}

// RegisterHealthRoutes registers the store probe endpoint.
func RegisterHealthRoutes(r *gin.Engine, h *handlers.StoreHealthHandler) {
	api := r.Group("/api/health")
	{
		api.POST("/stores", h.CheckStores)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyward/config"
	"skyward/database"
	bookingRepo "skyward/database/repository/booking"
	"skyward/handlers"
	"skyward/middleware"
	"skyward/routes"
	"skyward/services/amadeus"
	"skyward/services/booking"
	"skyward/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterCORS(router)

	// repositories.
	primaryRepo := bookingRepo.NewFirestoreBookingRepo()
	mirrorRepo := bookingRepo.NewMongoBookingRepo()

	// services.
	amadeusClient := amadeus.NewClient(logger)
	offerCache := &booking.RedisOfferCache{
		Client: utils.GetCacheClient(),
		TTL:    time.Duration(config.AppConfig.OffersCacheTTLSecs) * time.Second,
	}
	bookingService := &booking.DefaultBookingService{
		Primary: primaryRepo,
		Mirror:  mirrorRepo,
		Amadeus: amadeusClient,
		Offers:  offerCache,
		Logger:  logger,
	}

	// handlers and routes.
	flightHandler := handlers.NewFlightHandler(bookingService)
	healthHandler := handlers.NewStoreHealthHandler(primaryRepo, mirrorRepo, logger)
	routes.RegisterFlightRoutes(router, flightHandler)
	routes.RegisterHealthRoutes(router, healthHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("Server exited.")
}

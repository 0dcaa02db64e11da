// File: armora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"armora/config"
	"armora/database"
	"armora/database/repository"
	"armora/handlers"
	"armora/middleware"
	"armora/routes"
	"armora/services/booking"
	"armora/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
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

	// Payment gateway: Stripe when a key is configured, otherwise the
	// in-process simulator.
	var gateway booking.PaymentGateway
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		gateway = booking.NewStripeGateway(logger)
	} else {
		logger.Warn("main: no Stripe key configured, using simulated payment gateway")
		gateway = &booking.StaticGateway{}
	}

	store := booking.NewRedisStore(utils.GetBookingCacheClient())
	archiveRepo := repository.NewMongoArchiveRepo()

	coordinator := booking.NewCoordinator(store, gateway, logger)
	coordinator.Archive = archiveRepo
	coordinator.PaymentTimeout = time.Duration(config.AppConfig.PaymentTimeoutSeconds) * time.Second

	// Crash/restart recovery: rehydrate any persisted active booking.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if restored, err := coordinator.LoadFromStorage(bootCtx); err != nil {
		logger.Sugar().Warnf("main: failed to restore active booking: %v", err)
	} else if restored != nil {
		logger.Sugar().Infof("main: restored active booking %s (%s)", restored.ID, restored.Status)
	}
	bootCancel()

	matcher := booking.NewFleetOfficerMatcher()
	bookingHandler := handlers.NewBookingHandler(coordinator, matcher, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler)

	utils.StartHealthMonitor(utils.GetBookingCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

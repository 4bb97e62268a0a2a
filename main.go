// File: glowtheory/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowtheory/config"
	"glowtheory/database"
	bookingRepoPkg "glowtheory/database/repository/booking"
	catalogRepoPkg "glowtheory/database/repository/catalog"
	otpRepoPkg "glowtheory/database/repository/otp"
	userRepoPkg "glowtheory/database/repository/user"
	"glowtheory/handlers"
	"glowtheory/middleware"
	"glowtheory/routes"
	"glowtheory/services/availability"
	"glowtheory/services/checkout"
	"glowtheory/services/otp"
	"glowtheory/services/sms"
	"glowtheory/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	otpRepo := otpRepoPkg.NewMongoOtpRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	smsClient := sms.NewClient()
	notifier := &sms.ConfirmationNotifier{Sender: smsClient}

	otpService := &otp.DefaultOtpService{
		Repo:     otpRepo,
		Users:    userRepo,
		Cooldown: utils.GetOTPCacheClient(),
		Auth:     utils.GetAuthCacheClient(),
		Sender:   smsClient,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Catalog:     catalogRepo,
		Bookings:    bookingRepo,
		OpenMinute:  config.AppConfig.BusinessOpen,
		CloseMinute: config.AppConfig.BusinessClose,
		Interval:    config.AppConfig.SlotInterval,
	}

	checkoutService := &checkout.DefaultCheckoutService{
		Cache:        utils.GetCacheClient(),
		Bookings:     bookingRepo,
		Catalog:      catalogRepo,
		Availability: availabilityService,
		Notifier:     notifier,
	}

	// handlers.
	otpHandler := handlers.NewOtpHandler(otpService)
	smsHandler := handlers.NewSmsHandler(notifier)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	cartHandler := handlers.NewCartHandler(checkoutService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// OTP endpoints.
		SendOTPHandler:   otpHandler.SendOTPHandler,
		VerifyOTPHandler: otpHandler.VerifyOTPHandler,

		// SMS endpoints.
		ConfirmationHandler: smsHandler.ConfirmationHandler,

		// Catalog endpoints.
		ListServicesHandler:        catalogHandler.ListServicesHandler,
		ListServiceStylistsHandler: catalogHandler.ListServiceStylistsHandler,

		// Availability endpoints.
		GetSlotsHandler: availabilityHandler.GetSlotsHandler,

		// Cart and checkout endpoints.
		CreateCartHandler:     cartHandler.CreateCartHandler,
		GetCartHandler:        cartHandler.GetCartHandler,
		AddCartItemHandler:    cartHandler.AddCartItemHandler,
		RemoveCartItemHandler: cartHandler.RemoveCartItemHandler,
		CheckoutHandler:       cartHandler.CheckoutHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

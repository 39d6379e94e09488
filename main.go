package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festivo/config"
	"festivo/cron"
	"festivo/database"
	bookingRepoPkg "festivo/database/repository/booking"
	cartRepoPkg "festivo/database/repository/cart"
	catalogRepoPkg "festivo/database/repository/catalog"
	userRepoPkg "festivo/database/repository/user"
	"festivo/handlers"
	"festivo/routes"
	"festivo/services/booking"
	"festivo/services/catalog"
	"festivo/services/tasks"
	"festivo/services/user"
	"festivo/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	cartRepo := cartRepoPkg.NewMongoCartRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	catalogService := &catalog.DefaultCatalogService{
		Repo:  catalogRepo,
		Cache: utils.GetCacheClient(),
	}

	availabilityChecker := &booking.DefaultAvailabilityChecker{
		Catalog: catalogRepo,
		Cache:   utils.GetCacheClient(),
	}

	cartService := &booking.DefaultCartService{
		Catalog: catalogRepo,
		Carts:   cartRepo,
	}

	var payments booking.PaymentProcessor
	if config.AppConfig.StripeKey != "" {
		payments = &booking.StripePaymentProcessor{}
	}

	checkoutEngine := &booking.DefaultCheckoutEngine{
		Catalog:   catalogRepo,
		Carts:     cartRepo,
		Bookings:  bookingRepo,
		Locks:     &utils.AdvisoryLock{Client: utils.GetLockClient()},
		Payments:  payments,
		Reminders: tasks.NewReminderScheduler(),
	}

	// Background worker for booking reminders.
	cron.InitReminderWorker()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users: &handlers.UserHandler{
			UserService: userService,
			Logger:      logger,
		},
		Catalog: &handlers.CatalogHandler{
			CatalogService: catalogService,
			Logger:         logger,
		},
		Bookings: &handlers.BookingHandler{
			Availability: availabilityChecker,
			Cart:         cartService,
			Checkout:     checkoutEngine,
			Logger:       logger,
		},
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

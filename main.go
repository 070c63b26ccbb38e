package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-core/config"
	"hotel-core/controllers"
	"hotel-core/middleware"
	"hotel-core/routes"
	"hotel-core/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	if db == nil {
		logger.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Info("database connection established, migrations applied")

	// Services
	roomService := services.NewRoomService(db, logger)
	roomTypeService := services.NewRoomTypeService(db)
	bookingService := services.NewBookingService(db, logger)
	housekeepingService := services.NewHousekeepingService(db, logger)
	inventoryService := services.NewInventoryService(db)
	reportService := services.NewReportService(db)
	customerService := services.NewCustomerService(db)
	agentService := services.NewAgentService(db)

	// Controllers
	roomController := controllers.NewRoomController(roomService)
	roomTypeController := controllers.NewRoomTypeController(roomTypeService)
	bookingController := controllers.NewBookingController(bookingService)
	housekeepingController := controllers.NewHousekeepingController(housekeepingService)
	inventoryController := controllers.NewInventoryController(inventoryService)
	reportController := controllers.NewReportController(reportService)
	customerController := controllers.NewCustomerController(customerService)
	agentController := controllers.NewAgentController(agentService)

	router := routes.SetupRouter(
		logger,
		roomController,
		roomTypeController,
		bookingController,
		housekeepingController,
		inventoryController,
		reportController,
		customerController,
		agentController,
		middleware.JWTSecretFromEnv(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

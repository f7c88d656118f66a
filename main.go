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

	"hotelhub-backend/config"
	"hotelhub-backend/controllers"
	"hotelhub-backend/routes"
	"hotelhub-backend/services"
	"hotelhub-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Token secret is required: without it every issued token would verify
	// against an empty key.
	if os.Getenv("ACCESS_TOKEN_SECRET") == "" {
		log.Fatal("❌ ERROR: ACCESS_TOKEN_SECRET environment variable is not set.")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional redis for refresh-token tracking
	config.InitRedis()

	// Initialize services
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)
	guestService := services.NewGuestService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService)
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService)
	guestController := controllers.NewGuestController(guestService)

	// Build router
	router := routes.SetupRouter(authController, roomController, bookingController, guestController)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

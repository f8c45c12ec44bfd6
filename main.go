package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fotostudio-backend/config"
	"fotostudio-backend/controllers"
	"fotostudio-backend/routes"
	"fotostudio-backend/services"
	"fotostudio-backend/storage"
	"fotostudio-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
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

	// Gallery file store: MinIO when configured, local disk otherwise
	var store storage.FileStore
	uploadsDir := ""
	if minioHost := os.Getenv("MINIO_HOST"); minioHost != "" {
		ms, err := storage.NewMinioStore(
			minioHost,
			utils.EnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			utils.EnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			utils.EnvOrDefault("MINIO_BUCKET", "gallery"),
			utils.EnvOrDefault("MINIO_USE_SSL", "false") == "true",
		)
		if err != nil {
			log.Fatalf("❌ MinIO init failed: %v", err)
		}
		store = ms
		log.Printf("✅ Gallery files stored in MinIO bucket at %s", minioHost)
	} else {
		uploadsDir = utils.EnvOrDefault("UPLOADS_DIR", "./uploads")
		ls, err := storage.NewLocalStore(uploadsDir)
		if err != nil {
			log.Fatalf("❌ Uploads dir init failed: %v", err)
		}
		store = ls
		log.Printf("✅ Gallery files stored under %s", uploadsDir)
	}

	// Admin registration stays open until the configured number of admin
	// accounts exists (default: a single admin).
	adminLimit, err := strconv.ParseInt(utils.EnvOrDefault("ADMIN_REGISTRATION_LIMIT", "1"), 10, 64)
	if err != nil || adminLimit < 1 {
		adminLimit = 1
	}
	canRegisterAdmin := func(adminCount int64) bool { return adminCount < adminLimit }

	tokenTTLHours, err := strconv.Atoi(utils.EnvOrDefault("TOKEN_TTL_HOURS", "168"))
	if err != nil || tokenTTLHours < 1 {
		tokenTTLHours = 168
	}

	resetExpireMinutes, err := strconv.Atoi(utils.EnvOrDefault("RESET_TOKEN_EXPIRE_MINUTES", "60"))
	if err != nil || resetExpireMinutes < 1 {
		resetExpireMinutes = 60
	}

	frontendURL := utils.EnvOrDefault("FRONTEND_URL", "http://localhost:3000")
	buildResetURL := services.FrontendResetURLBuilder(frontendURL)

	// Initialize services
	bookingService := services.NewBookingService(db)
	galleryService := services.NewGalleryService(db, store)
	authService := services.NewAuthService(db, canRegisterAdmin, time.Duration(tokenTTLHours)*time.Hour)
	resetService := services.NewPasswordResetService(db, authService, buildResetURL, utils.SendResetPasswordEmail, resetExpireMinutes)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	galleryController := controllers.NewGalleryController(galleryService)
	authController := controllers.NewAuthController(authService, resetService)

	// Build router
	router := routes.SetupRouter(bookingController, galleryController, authController, authService, uploadsDir)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

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

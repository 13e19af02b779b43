package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/routes"
	"rental-backend/seed"
	"rental-backend/services"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load())
		},
	}
}

func serve(settings *config.Settings) error {
	db, err := config.OpenDatabase(settings.DB)
	if err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	propertyService := services.NewPropertyService(db)
	authService := services.NewAuthService(db, settings.JWTSecret)

	store, err := config.NewObjectStore(context.Background(), settings.Upload)
	if err != nil {
		return fmt.Errorf("upload store: %w", err)
	}
	uploadService := services.NewUploadService(store)

	if err := authService.EnsureAdmin(settings.Admin.Email, settings.Admin.Password, settings.Admin.Name); err != nil {
		log.Printf("warning: failed to seed admin: %v", err)
	}
	if settings.SeedOnStart {
		if _, err := seed.Properties(propertyService, false); err != nil {
			log.Printf("warning: failed to seed properties: %v", err)
		}
	}

	// Initialize controllers
	propertyController := controllers.NewPropertyController(propertyService)
	uploadController := controllers.NewUploadController(uploadService)
	authController := controllers.NewAuthController(authService, settings.CookieSecure)

	opts := routes.Options{
		CORSOrigins: settings.CORSOrigins,
		Redis:       config.NewRedis(settings.Redis),
	}
	if settings.Upload.Driver == "" || settings.Upload.Driver == "local" {
		opts.UploadDir = settings.Upload.Dir
		opts.UploadURL = settings.Upload.BaseURL
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(propertyController, uploadController, authController, authService, opts)

	addr := ":" + settings.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       30 * time.Second, // multipart uploads of several images
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealtrack-v2/backend/config"
	"github.com/pageza/mealtrack-v2/backend/internal/api"
	"github.com/pageza/mealtrack-v2/backend/internal/database"
	"github.com/pageza/mealtrack-v2/backend/internal/middleware"
	"github.com/pageza/mealtrack-v2/backend/internal/router"
	"github.com/pageza/mealtrack-v2/backend/internal/server"
	"github.com/pageza/mealtrack-v2/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	geminiService, err := service.NewGeminiService(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini service: %v", err)
	}
	storageService := service.NewStorageService(s3Config)
	mealService := service.NewMealService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "ratelimit:analyze",
	})

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewMealHandler(mealService, geminiService, storageService, profileService),
		api.NewProfileHandler(profileService),
		authService,
		rateLimiter,
		cfg.CORSAllowedOrigins,
	)

	srv := server.New(engine)
	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		errChan <- srv.Start(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

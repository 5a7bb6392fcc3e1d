package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classwatch-backend/internal/config"
	"classwatch-backend/internal/database"
	"classwatch-backend/internal/handlers"
	"classwatch-backend/internal/middleware"
	"classwatch-backend/internal/repository"
	"classwatch-backend/internal/router"
	"classwatch-backend/internal/services"
)

func main() {
	log.Println("Starting Classwatch Backend...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Repositories ────
	teacherRepo := repository.NewTeacherRepo(pool)
	classroomRepo := repository.NewClassroomRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	behaviourRepo := repository.NewBehaviourRepo(pool)

	// ──── Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(teacherRepo, redisClient, jwtAuth)
	statsCache := services.NewStatsCache(redisClient)
	detector := services.NewStubDetector()

	imageStore, err := services.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("✗ Upload directory setup failed: %v", err)
	}

	// ──── Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	classroomHandler := handlers.NewClassroomHandler(classroomRepo)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, statsCache)
	detectionHandler := handlers.NewDetectionHandler(sessionRepo, behaviourRepo, detector, imageStore, statsCache, cfg.MaxUploadMB)
	statsHandler := handlers.NewStatsHandler(sessionRepo, behaviourRepo, classroomRepo, statsCache)

	r := router.New(
		jwtAuth,
		authHandler,
		classroomHandler,
		sessionHandler,
		detectionHandler,
		statsHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Classwatch Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

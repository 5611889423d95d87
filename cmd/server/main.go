package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/api"
	"avihayshai/hypertrophy-toolbox/internal/config"
	"avihayshai/hypertrophy-toolbox/internal/repository/mongo"
	"avihayshai/hypertrophy-toolbox/internal/service"
	"avihayshai/hypertrophy-toolbox/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Hypertrophy Toolbox Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureSelectionIndexes(ctx, appDB.Collection("user_selections"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_log"))
		mongo.EnsureBackupIndexes(ctx, appDB.Collection("plan_backups"))
		mongo.EnsureArtifactIndexes(ctx, appDB.Collection("export_artifacts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	selectionRepo := mongo.NewMongoSelectionRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	backupRepo := mongo.NewMongoBackupRepository(appDB)
	artifactRepo := mongo.NewMongoArtifactRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogService := service.NewCatalogService(exerciseRepo)
	plannerService := service.NewPlannerService(exerciseRepo, selectionRepo, workoutLogRepo, cfg.Planner)
	planService := service.NewPlanService(selectionRepo, exerciseRepo, backupRepo)
	workoutService := service.NewWorkoutService(workoutLogRepo, selectionRepo, exerciseRepo)
	exportService := service.NewExportService(selectionRepo, workoutLogRepo, artifactRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, catalogService, plannerService, planService, workoutService, exportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"typepet/internal/config"
	"typepet/internal/handlers"
	"typepet/internal/service"
	"typepet/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Open the persistence backend (sqlite/postgres/mysql or redis)
	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	log.Printf("Storage ready (backend: %s)", cfg.StorageBackend)

	// The celebration queue is shared by both engines
	queue := service.NewCelebrationQueue()

	// Initialize services
	petService := service.NewPetService(store, queue, cfg.UserID)
	achievementService := service.NewAchievementService(store, queue, cfg.UserID)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ParentEmail, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if emailService.IsEnabled() {
		achievementService.SetNotifier(emailService)
	}

	// A configured pet name overrides the default on first boot
	if cfg.PetName != "" {
		if err := petService.Rename(context.Background(), cfg.PetName); err != nil {
			log.Printf("Warning: failed to apply configured pet name: %v", err)
		}
	}

	// Initialize handlers
	petHandler := handlers.NewPetHandler(petService)
	achievementHandler := handlers.NewAchievementHandler(achievementService, petService)
	celebrationHandler := handlers.NewCelebrationHandler(queue)

	// Setup routes
	mux := http.NewServeMux()

	// Pet routes
	mux.HandleFunc("GET /api/pet", petHandler.GetPet)
	mux.HandleFunc("POST /api/pet/feed", petHandler.FeedWord)
	mux.HandleFunc("POST /api/pet/happiness", petHandler.UpdateHappiness)
	mux.HandleFunc("GET /api/pet/evolution", petHandler.CheckEvolution)
	mux.HandleFunc("POST /api/pet/evolve", petHandler.Evolve)
	mux.HandleFunc("POST /api/pet/rename", petHandler.Rename)
	mux.HandleFunc("POST /api/pet/reset", petHandler.Reset)

	// Session and achievement routes
	mux.HandleFunc("POST /api/sessions/complete", achievementHandler.CompleteSession)
	mux.HandleFunc("GET /api/achievements", achievementHandler.GetAchievements)
	mux.HandleFunc("POST /api/achievements/{id}/unlock", achievementHandler.UnlockAchievement)
	mux.HandleFunc("GET /api/accessories", achievementHandler.GetAccessories)
	mux.HandleFunc("POST /api/accessories/{id}/equip", achievementHandler.EquipAccessory)
	mux.HandleFunc("GET /api/personal-bests", achievementHandler.GetPersonalBests)
	mux.HandleFunc("GET /api/weekly-goals", achievementHandler.GetWeeklyGoals)

	// Celebration routes
	mux.HandleFunc("GET /api/celebrations", celebrationHandler.List)
	mux.HandleFunc("GET /api/celebrations/next", celebrationHandler.Next)
	mux.HandleFunc("POST /api/celebrations/{id}/shown", celebrationHandler.MarkShown)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/booknest/booknest-be/internal/api"
	"github.com/booknest/booknest-be/internal/catalog"
	"github.com/booknest/booknest-be/internal/config"
	"github.com/booknest/booknest-be/internal/database"
	"github.com/booknest/booknest-be/internal/logger"
	"github.com/booknest/booknest-be/internal/monitoring"
	"github.com/booknest/booknest-be/internal/services"
	"github.com/booknest/booknest-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, eventService)
	shelfService := services.NewShelfService(db, eventService)
	challengeService := services.NewChallengeService(db, userService, eventService)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	// Set up and run the event retention job
	retention := monitoring.NewRetention(eventService, time.Duration(cfg.EventRetentionDays)*24*time.Hour)
	go retention.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Hub:          hub,
		UserSvc:      userService,
		ShelfSvc:     shelfService,
		ChallengeSvc: challengeService,
		EventSvc:     eventService,
		Catalog:      catalogClient,
		JWTSecret:    []byte(cfg.JWTSecret),
		TokenTTL:     cfg.TokenTTL,
		Origin:       cfg.AllowedOrigin,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

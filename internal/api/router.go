package api

import (
	"time"

	"github.com/booknest/booknest-be/internal/api/handlers"
	"github.com/booknest/booknest-be/internal/auth"
	"github.com/booknest/booknest-be/internal/catalog"
	"github.com/booknest/booknest-be/internal/services"
	"github.com/booknest/booknest-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Hub          *websocket.Hub
	UserSvc      services.UserServiceProvider
	ShelfSvc     services.ShelfServiceProvider
	ChallengeSvc services.ChallengeServiceProvider
	EventSvc     services.EventServiceProvider
	Catalog      catalog.LookupProvider
	JWTSecret    []byte
	TokenTTL     time.Duration
	Origin       string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserSvc, deps.JWTSecret, deps.TokenTTL)
	challengeHandler := handlers.NewChallengeHandler(deps.ShelfSvc, deps.ChallengeSvc)
	bookHandler := handlers.NewBookHandler(deps.Catalog)
	eventHandler := handlers.NewEventHandler(deps.EventSvc)
	systemHandler := handlers.NewSystemHandler()
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	bearer := auth.Middleware(deps.JWTSecret)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(bearer)
			r.Get("/profile/{userId}", userHandler.GetProfile)
			r.Put("/updateProfile", userHandler.UpdateProfile)
			r.Put("/changePassword", userHandler.ChangePassword)
			r.With(auth.RequireOwner("userId")).Get("/favorites/genres/{userId}", userHandler.GetFavoriteGenres)
		})

		// Legacy unauthenticated read/write paths, kept for the pages that
		// still call them.
		r.Get("/user/{userId}", userHandler.GetUser)
		r.Put("/user/{userId}", userHandler.UpdateUser)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.Ping)
		r.Get("/search", bookHandler.Search)
		r.Get("/{volumeId}", bookHandler.GetVolume)
	})

	r.Route("/readingChallenge", func(r chi.Router) {
		r.Post("/updateBookStatus", challengeHandler.UpdateBookStatus)
		r.Delete("/removeBook", challengeHandler.RemoveBook)
		r.Get("/shelf/{userId}", challengeHandler.ListShelf)

		r.Group(func(r chi.Router) {
			r.Use(bearer)
			r.With(auth.RequireOwner("userId")).Get("/getChallenge/{userId}", challengeHandler.GetChallenge)
			r.Put("/setChallenge/{userId}/{year}", challengeHandler.SetChallenge)
		})

		r.Get("/{userId}", challengeHandler.GetProgress)
	})

	r.Get("/events", eventHandler.GetRecent)
	r.Get("/system/stats", systemHandler.Stats)
	r.Get("/ws", wsHandler.Serve)

	return r
}

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"symcalc/internal/auth"
	"symcalc/internal/config"
	"symcalc/internal/database"
	"symcalc/internal/dispatch"
)

// Server связывает HTTP API с конфигурацией, хранилищем и диспетчером.
type Server struct {
	cfg        *config.Config
	store      *database.Store
	dispatcher *dispatch.Dispatcher
}

func NewServer(cfg *config.Config, store *database.Store, dispatcher *dispatch.Dispatcher) *Server {
	return &Server{cfg: cfg, store: store, dispatcher: dispatcher}
}

// Router настраивает маршруты для API.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты (без аутентификации)
		r.Group(func(r chi.Router) {
			r.Post("/register", s.RegisterHandler)
			r.Post("/login", s.LoginHandler)
			r.Get("/token-info", s.TokenInfoHandler)
		})

		// Защищенные маршруты (с аутентификацией)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Post("/parse", s.ParseHandler)
			r.Post("/calculate", s.CalculateHandler)
			r.Get("/history", s.HistoryHandler)
		})
	})

	return r
}

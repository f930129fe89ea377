package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api/itinerary"
	"github.com/AnuragWaskle/Ghoomo-mincoders/internal/api/transport"
)

// Config carries the handlers and middleware the router wires together.
type Config struct {
	ItineraryHandler       *itinerary.ItineraryHandler
	TransportHandler       *transport.TransportHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter builds the application router. Server-wide middleware (logger,
// requestID, recoverer) are applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Transport pricing is public: quotes need no identity.
		r.Route("/transport", func(r chi.Router) {
			r.Post("/fair-price", cfg.TransportHandler.FairPrice)
			r.Get("/options", cfg.TransportHandler.AvailableVehicles)
			r.Get("/daily-budget", cfg.TransportHandler.DailyBudget)
		})

		// Itineraries are owner-scoped and require a valid token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Route("/itineraries", func(r chi.Router) {
				r.Post("/generate", cfg.ItineraryHandler.Generate)
				r.Get("/", cfg.ItineraryHandler.List)
				r.Get("/{itineraryID}", cfg.ItineraryHandler.Get)
				r.Put("/{itineraryID}", cfg.ItineraryHandler.Update)
				r.Delete("/{itineraryID}", cfg.ItineraryHandler.Delete)
			})
		})
	})

	return r
}

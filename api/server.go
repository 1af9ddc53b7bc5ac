/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Client routes
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Delete("/{id}", h.DeleteClient)
			r.Get("/{id}/appointments", h.GetClientAppointments)
		})

		// Provider routes
		r.Route("/providers", func(r chi.Router) {
			r.Get("/", h.ListProviders)
			r.Get("/{id}/slots", h.GetProviderSlots)
		})

		// Slot routes
		r.Route("/slots", func(r chi.Router) {
			r.Get("/", h.ListSlots)
			r.Post("/", h.CreateSlot)
			r.Get("/available", h.ListAvailableSlots)
			r.Post("/{id}/cancel", h.CancelSlot)
			r.Post("/{id}/attend", h.AttendSlot)
			r.Get("/{id}/events", h.GetSlotEvents)
		})

		// Booking routes
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/category", h.BookByCategory)
			r.Post("/provider", h.BookByProvider)
			r.Post("/reschedule", h.Reschedule)
		})

		// Report, audit trail and clock
		r.Get("/report", h.GetReport)
		r.Get("/events", h.ListEvents)
		r.Get("/time", h.GetTime)
		r.Post("/time", h.SetTime)

		// Demo dataset
		r.Post("/demo/load", h.LoadDemo)
	})

	return r
}

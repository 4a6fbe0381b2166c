package router

import (
	"net/http"

	"carwash-backend/internal/handlers"
	"carwash-backend/internal/metrics"
	customMiddleware "carwash-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Contact *handlers.ContactHandler
	Booking *handlers.BookingHandler
}

func New(logger zerolog.Logger, allowedOrigins []string, h Handlers) http.Handler {
	metrics.Register()

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(customMiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"carwash-backend"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/add-user", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Post("/contact-us", h.Contact.Submit)

	r.Post("/book-car-wash", h.Booking.Create)
	r.Put("/bookings/{id}/status", h.Booking.UpdateStatus)
	r.Get("/bookings", h.Booking.List)

	return r
}

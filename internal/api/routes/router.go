package routes

import (
	"net/http"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/middleware"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	authHandler        *handlers.AuthHandler

	tokenValidator middleware.TokenValidator
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	authHandler *handlers.AuthHandler,
	tokenValidator middleware.TokenValidator,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		appointmentHandler: appointmentHandler,
		authHandler:        authHandler,
		tokenValidator:     tokenValidator,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Admin login
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// Appointment endpoints. Listing and booking are open to the patient
	// form; the diagnosis and prescription updates are admin-only.
	requireAdmin := middleware.AuthMiddleware(r.tokenValidator)

	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.Handle("PATCH /api/appointments", requireAdmin(http.HandlerFunc(r.appointmentHandler.UpdateStatus)))
	r.mux.Handle("PUT /api/appointments", requireAdmin(http.HandlerFunc(r.appointmentHandler.UpdatePrescription)))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so preflight requests short-circuit with
	// headers set before anything else runs.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}

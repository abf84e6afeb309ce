package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	"github.com/clinicdesk/backend/pkg/config"
)

type stubAppointmentService struct {
	appointments []*entities.Appointment
}

func (s *stubAppointmentService) List(ctx context.Context, query string) ([]*entities.Appointment, error) {
	return s.appointments, nil
}

func (s *stubAppointmentService) Create(ctx context.Context, appointment *entities.Appointment) (string, error) {
	return "new-id", nil
}

func (s *stubAppointmentService) UpdateStatus(ctx context.Context, id string, diagnosed bool) error {
	return nil
}

func (s *stubAppointmentService) UpdatePrescription(ctx context.Context, id string, prescription string) error {
	return nil
}

func newTestHandler(t *testing.T) (http.Handler, *services.AuthService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)
	authService := services.NewAuthService(config.AuthConfig{
		AdminEmail:        "admin@clinic.example.com",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
	})

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	router := NewRouter(
		handlers.NewAppointmentHandler(&stubAppointmentService{}),
		handlers.NewAuthHandler(authService),
		authService,
		metrics,
	)
	return router.SetupRoutes(), authService
}

func TestSetupRoutes(t *testing.T) {
	handler, authService := newTestHandler(t)

	adminToken := func(t *testing.T) string {
		t.Helper()
		token, err := authService.Login(context.Background(), "admin@clinic.example.com", "admin-password")
		require.NoError(t, err)
		return token
	}

	t.Run("health check is open", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("listing is open to the patient form", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("booking is open to the patient form", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{
			"name":             "Amara Okafor",
			"phone":            "+2348012345678",
			"preferred_date":   "2026-09-07",
			"appointment_type": "Check-up",
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(payload)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("status update requires a session token", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"appointment_id": "id-1", "diagnosed": true})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/appointments", bytes.NewReader(payload)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodPatch, "/api/appointments", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("prescription update requires a session token", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{"appointment_id": "id-1", "prescription": "Amoxicillin"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/appointments", bytes.NewReader(payload)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodPut, "/api/appointments", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("login issues tokens the admin routes accept", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{
			"email":    "admin@clinic.example.com",
			"password": "admin-password",
		})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload)))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("preflight is answered before auth runs", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, POST, PATCH, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}

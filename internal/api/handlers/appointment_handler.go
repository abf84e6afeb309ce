package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	List(ctx context.Context, query string) ([]*entities.Appointment, error)
	Create(ctx context.Context, appointment *entities.Appointment) (string, error)
	UpdateStatus(ctx context.Context, id string, diagnosed bool) error
	UpdatePrescription(ctx context.Context, id string, prescription string) error
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

type createAppointmentRequest struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	PreferredDate   string `json:"preferred_date" validate:"required"`
	AppointmentType string `json:"appointment_type" validate:"required,oneof=Check-up Consultation Follow-up"`
	Notes           string `json:"notes"`
}

type updateStatusRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
	Diagnosed     *bool  `json:"diagnosed" validate:"required"`
}

type updatePrescriptionRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
	Prescription  string `json:"prescription"`
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if appointments == nil {
		appointments = []*entities.Appointment{}
	}
	respondWithJSON(w, http.StatusOK, appointments)
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var payload createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid input",
			"errors":  fieldErrors(err),
		})
		return
	}

	appointment := &entities.Appointment{
		Name:          payload.Name,
		Phone:         payload.Phone,
		Email:         payload.Email,
		PreferredDate: payload.PreferredDate,
		Type:          entities.AppointmentType(payload.AppointmentType),
		Notes:         payload.Notes,
	}

	id, err := h.service.Create(r.Context(), appointment)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"message":        "Appointment created",
		"appointment_id": id,
	})
}

// UpdateStatus handles PATCH /api/appointments
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid input",
			"errors":  fieldErrors(err),
		})
		return
	}

	if err := h.service.UpdateStatus(r.Context(), payload.AppointmentID, *payload.Diagnosed); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Appointment updated successfully",
	})
}

// UpdatePrescription handles PUT /api/appointments
func (h *AppointmentHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	var payload updatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid input",
			"errors":  fieldErrors(err),
		})
		return
	}

	if err := h.service.UpdatePrescription(r.Context(), payload.AppointmentID, payload.Prescription); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Appointment updated successfully",
	})
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
)

// AppointmentService handles appointment booking and admin update logic
type AppointmentService struct {
	repo     repositories.AppointmentRepository
	eventBus providers.EventBus
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// SetEventBus enables appointment change events
func (s *AppointmentService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// List returns all appointments, optionally filtered by a case-insensitive
// substring query over name, phone, email and appointment type.
func (s *AppointmentService) List(ctx context.Context, query string) ([]*entities.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return appointments, nil
	}

	filtered := make([]*entities.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if matchesQuery(a, query) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Create books a new appointment. The id and creation timestamp are assigned
// here and never change; diagnosis state starts empty.
func (s *AppointmentService) Create(ctx context.Context, appointment *entities.Appointment) (string, error) {
	appointment.ID = uuid.New().String()
	appointment.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	appointment.Diagnosed = false
	appointment.Prescription = ""

	if err := s.repo.Create(ctx, appointment); err != nil {
		return "", err
	}

	s.publish(ctx, appointment.ID, entities.AppointmentEventTypeCreated)
	return appointment.ID, nil
}

// UpdateStatus sets the diagnosed flag of an existing appointment.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, diagnosed bool) error {
	if err := s.repo.UpdateStatus(ctx, id, diagnosed); err != nil {
		return err
	}
	s.publish(ctx, id, entities.AppointmentEventTypeStatusUpdated)
	return nil
}

// UpdatePrescription sets the prescription text of an existing appointment.
func (s *AppointmentService) UpdatePrescription(ctx context.Context, id string, prescription string) error {
	if err := s.repo.UpdatePrescription(ctx, id, prescription); err != nil {
		return err
	}
	s.publish(ctx, id, entities.AppointmentEventTypePrescriptionUpdated)
	return nil
}

// publish emits an appointment change event. A failed publish only costs
// cache freshness, so it is logged and the operation still succeeds.
func (s *AppointmentService) publish(ctx context.Context, appointmentID string, eventType entities.AppointmentEventType) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewAppointmentEvent(appointmentID, eventType)
	if err := s.eventBus.Publish(ctx, providers.EventChannelAppointmentUpdates, event); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointmentID).Msg("failed to publish appointment event")
	}
}

func matchesQuery(a *entities.Appointment, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{a.Name, a.Phone, a.Email, string(a.Type)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

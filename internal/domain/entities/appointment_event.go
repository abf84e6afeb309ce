package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AppointmentEventType represents the type of appointment event
type AppointmentEventType string

const (
	AppointmentEventTypeCreated             AppointmentEventType = "created"
	AppointmentEventTypeStatusUpdated       AppointmentEventType = "status_updated"
	AppointmentEventTypePrescriptionUpdated AppointmentEventType = "prescription_updated"
)

// AppointmentEvent represents a change to an appointment record, published so
// interested listeners (cache invalidation for one) can react.
type AppointmentEvent struct {
	ID            string               `json:"id"`
	AppointmentID string               `json:"appointment_id"`
	EventType     AppointmentEventType `json:"event_type"`
	Timestamp     time.Time            `json:"timestamp"`
}

// NewAppointmentEvent creates a new appointment event
func NewAppointmentEvent(appointmentID string, eventType AppointmentEventType) *AppointmentEvent {
	return &AppointmentEvent{
		ID:            generateEventID(),
		AppointmentID: appointmentID,
		EventType:     eventType,
		Timestamp:     time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}

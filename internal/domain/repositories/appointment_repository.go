package repositories

import (
	"context"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment persistence.
//
// Implementations distinguish their failures through the pkg/errors taxonomy:
// Create returns a conflict error for a duplicate booking, the update methods
// return a not-found error for an unknown id, and any backing-store failure
// surfaces as an external or configuration error.
type AppointmentRepository interface {
	// List retrieves all appointments in sheet order
	List(ctx context.Context) ([]*entities.Appointment, error)

	// Create appends a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// UpdateStatus overwrites only the diagnosed field of the record with the given id
	UpdateStatus(ctx context.Context, id string, diagnosed bool) error

	// UpdatePrescription overwrites only the prescription field of the record with the given id
	UpdatePrescription(ctx context.Context, id string, prescription string) error
}

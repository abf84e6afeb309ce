package entities

// AppointmentType is the kind of visit a patient requests
type AppointmentType string

const (
	AppointmentTypeCheckup      AppointmentType = "Check-up"
	AppointmentTypeConsultation AppointmentType = "Consultation"
	AppointmentTypeFollowUp     AppointmentType = "Follow-up"
)

// AppointmentTypes lists the recognized appointment types.
func AppointmentTypes() []AppointmentType {
	return []AppointmentType{
		AppointmentTypeCheckup,
		AppointmentTypeConsultation,
		AppointmentTypeFollowUp,
	}
}

// Appointment represents a patient's booking and its diagnosis state.
//
// ID and CreatedAt are assigned at creation and immutable afterwards;
// Diagnosed and Prescription are the only fields mutable after creation.
// CreatedAt is kept as the ISO-8601 string stored in the sheet so records
// round-trip without reformatting.
type Appointment struct {
	ID            string          `json:"appointment_id"`
	CreatedAt     string          `json:"created_at"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	PreferredDate string          `json:"preferred_date"`
	Type          AppointmentType `json:"appointment_type"`
	Notes         string          `json:"notes"`
	Diagnosed     bool            `json:"diagnosed"`
	Prescription  string          `json:"prescription"`
}

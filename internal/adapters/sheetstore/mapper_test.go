package sheetstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

func TestRowRoundTrip(t *testing.T) {
	appointment := &entities.Appointment{
		ID:            "a1b2c3",
		CreatedAt:     "2026-08-28T09:15:00Z",
		Name:          "Amara Okafor",
		Phone:         "+2348012345678",
		Email:         "amara.okafor@example.com",
		PreferredDate: "2026-09-07",
		Type:          entities.AppointmentTypeCheckup,
		Notes:         "Annual physical",
		Diagnosed:     true,
		Prescription:  "Vitamin D 1000IU daily",
	}

	got := rowToAppointment(appointmentToRow(appointment))
	assert.Equal(t, appointment, got)
}

func TestRowValues_CanonicalOrder(t *testing.T) {
	appointment := &entities.Appointment{
		ID:            "id-1",
		CreatedAt:     "2026-08-28T09:15:00Z",
		Name:          "Tunde Balogun",
		Phone:         "+2348023456789",
		Email:         "tunde@example.com",
		PreferredDate: "2026-09-08",
		Type:          entities.AppointmentTypeConsultation,
		Notes:         "",
		Diagnosed:     false,
		Prescription:  "",
	}

	values := rowValues(appointment)

	assert.Equal(t, []string{
		"id-1",
		"2026-08-28T09:15:00Z",
		"Tunde Balogun",
		"+2348023456789",
		"tunde@example.com",
		"2026-09-08",
		"Consultation",
		"",
		"false",
		"",
	}, values)
}

func TestRowToAppointment_DiagnosedParsing(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected bool
	}{
		{"lowercase true", "true", true},
		{"uppercase true", "TRUE", true},
		{"mixed case", "True", true},
		{"false", "false", false},
		{"empty", "", false},
		{"garbage", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := appointmentToRow(&entities.Appointment{})
			row["diagnosed"] = tt.cell

			got := rowToAppointment(row)
			assert.Equal(t, tt.expected, got.Diagnosed)
		})
	}
}

func TestCellsToRow_PadsShortRows(t *testing.T) {
	// The values API trims trailing empty cells, so a row written before the
	// admin filled in diagnosis may come back with only seven cells.
	cells := []string{"id-1", "2026-08-28T09:15:00Z", "Chiamaka Eze", "+2348034567890", "chiamaka@example.com", "2026-09-08", "Follow-up"}

	row := cellsToRow(cells)

	assert.Equal(t, "id-1", row["appointment_id"])
	assert.Equal(t, "Follow-up", row["appointment_type"])
	assert.Equal(t, "", row["notes"])
	assert.Equal(t, "", row["diagnosed"])
	assert.Equal(t, "", row["prescription"])

	got := rowToAppointment(row)
	assert.False(t, got.Diagnosed)
	assert.Empty(t, got.Prescription)
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(colAppointmentID))
	assert.Equal(t, "I", columnLetter(colDiagnosed))
	assert.Equal(t, "J", columnLetter(colPrescription))
}

package sheetstore

import (
	"strings"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// rowToAppointment converts a row, keyed by canonical column name, into an
// Appointment. Absent optional cells become empty strings; the diagnosed
// cell is compared case-insensitively against "true" and anything else,
// including garbage or absence, resolves to false rather than an error.
func rowToAppointment(row map[string]string) *entities.Appointment {
	return &entities.Appointment{
		ID:            row["appointment_id"],
		CreatedAt:     row["created_at"],
		Name:          row["name"],
		Phone:         row["phone"],
		Email:         row["email"],
		PreferredDate: row["preferred_date"],
		Type:          entities.AppointmentType(row["appointment_type"]),
		Notes:         row["notes"],
		Diagnosed:     strings.EqualFold(row["diagnosed"], "true"),
		Prescription:  row["prescription"],
	}
}

// appointmentToRow converts an Appointment into a row keyed by canonical
// column name, serializing the diagnosed flag as "true"/"false".
func appointmentToRow(a *entities.Appointment) map[string]string {
	return map[string]string{
		"appointment_id":   a.ID,
		"created_at":       a.CreatedAt,
		"name":             a.Name,
		"phone":            a.Phone,
		"email":            a.Email,
		"preferred_date":   a.PreferredDate,
		"appointment_type": string(a.Type),
		"notes":            a.Notes,
		"diagnosed":        formatBool(a.Diagnosed),
		"prescription":     a.Prescription,
	}
}

// rowValues flattens an Appointment into cell values in canonical column order.
func rowValues(a *entities.Appointment) []string {
	row := appointmentToRow(a)
	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = row[col]
	}
	return values
}

// cellsToRow zips raw cell values with the canonical column names,
// substituting empty strings for cells the API omitted at the row's tail.
func cellsToRow(cells []string) map[string]string {
	row := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			row[col] = cells[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

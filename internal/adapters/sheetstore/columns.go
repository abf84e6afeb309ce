package sheetstore

// Canonical column list of the appointments worksheet. The header row must
// equal this list, in this order, before any read or write proceeds.
var columns = []string{
	"appointment_id",
	"created_at",
	"name",
	"phone",
	"email",
	"preferred_date",
	"appointment_type",
	"notes",
	"diagnosed",
	"prescription",
}

const (
	colAppointmentID = iota
	colCreatedAt
	colName
	colPhone
	colEmail
	colPreferredDate
	colAppointmentType
	colNotes
	colDiagnosed
	colPrescription
)

// columnLetter maps a column index to its A1-notation letter.
// The canonical list has ten columns, so a single letter always suffices.
func columnLetter(i int) string {
	return string(rune('A' + i))
}

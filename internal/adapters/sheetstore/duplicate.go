package sheetstore

import (
	"github.com/clinicdesk/backend/internal/domain/entities"
)

// isDuplicate reports whether any existing record already books the same
// (phone, preferred_date) pair. Matching is exact string equality: phone
// formatting and date representation are not normalized, so "987 654" and
// "987654" count as different callers. Checked at create time only.
func isDuplicate(phone, preferredDate string, existing []*entities.Appointment) bool {
	for _, a := range existing {
		if a.Phone == phone && a.PreferredDate == preferredDate {
			return true
		}
	}
	return false
}

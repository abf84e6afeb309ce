package sheetstore

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
	"github.com/clinicdesk/backend/pkg/retry"
)

// SheetsAPI is the slice of the spreadsheet client the adapter needs.
type SheetsAPI interface {
	SheetName() string
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string) error
	GetRange(ctx context.Context, rng string) ([][]string, error)
	UpdateRange(ctx context.Context, rng string, values [][]string) error
	AppendRow(ctx context.Context, rng string, row []string) error
}

// AppointmentAdapter implements AppointmentRepository against a Google
// Sheets worksheet. Every operation first repairs the header row if needed,
// so a hand-edited or freshly created spreadsheet heals on the next call.
//
// The duplicate check and the append are separate round trips with no
// locking; two near-simultaneous creates for the same phone/date can both
// pass the check. The values API has no conditional write, so this race is
// documented rather than closed.
type AppointmentAdapter struct {
	api      SheetsAPI
	retryCfg retry.Config
	metrics  *observability.Metrics
}

// NewAppointmentAdapter creates a new sheet-backed appointment adapter
func NewAppointmentAdapter(api SheetsAPI) *AppointmentAdapter {
	return &AppointmentAdapter{
		api:      api,
		retryCfg: retry.DefaultConfig(),
	}
}

// SetMetrics enables spreadsheet call duration metrics
func (a *AppointmentAdapter) SetMetrics(m *observability.Metrics) {
	a.metrics = m
}

// List retrieves all appointments in sheet order. Fetch failures propagate
// as external/configuration errors; the API layer decides how to degrade.
func (a *AppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	if err := a.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return a.fetchAll(ctx)
}

// Create appends a new appointment after checking for a duplicate booking.
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	if err := a.ensureSchema(ctx); err != nil {
		return err
	}

	existing, err := a.fetchAll(ctx)
	if err != nil {
		return err
	}
	if isDuplicate(appointment.Phone, appointment.PreferredDate, existing) {
		return apperrors.NewConflictError("already have an appointment booked for this date")
	}

	// Appends are never retried: a timed-out append may still have landed,
	// and retrying it would write the row twice.
	start := time.Now()
	if err := a.api.AppendRow(ctx, a.dataRange(), rowValues(appointment)); err != nil {
		return err
	}
	a.record(ctx, "append", start)
	return nil
}

// UpdateStatus overwrites only the diagnosed cell of the row with the given id.
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id string, diagnosed bool) error {
	return a.updateCell(ctx, id, colDiagnosed, formatBool(diagnosed))
}

// UpdatePrescription overwrites only the prescription cell of the row with the given id.
func (a *AppointmentAdapter) UpdatePrescription(ctx context.Context, id string, prescription string) error {
	return a.updateCell(ctx, id, colPrescription, prescription)
}

func (a *AppointmentAdapter) updateCell(ctx context.Context, id string, col int, value string) error {
	if err := a.ensureSchema(ctx); err != nil {
		return err
	}

	rows, err := a.fetchRows(ctx)
	if err != nil {
		return err
	}

	for i, cells := range rows {
		if len(cells) > colAppointmentID && cells[colAppointmentID] == id {
			// Data starts on sheet row 2, below the header.
			cell := fmt.Sprintf("%s!%s%d", a.api.SheetName(), columnLetter(col), i+2)
			start := time.Now()
			if err := a.api.UpdateRange(ctx, cell, [][]string{{value}}); err != nil {
				return err
			}
			a.record(ctx, "update_cell", start)
			return nil
		}
	}

	return apperrors.NewNotFoundError("Appointment not found")
}

// ensureSchema guarantees the worksheet exists and its header row equals the
// canonical column list, rewriting it when it differs. Re-running against a
// correct header is a no-op, so it is safe before every operation.
func (a *AppointmentAdapter) ensureSchema(ctx context.Context) error {
	name := a.api.SheetName()

	titles, err := a.api.SheetTitles(ctx)
	if err != nil {
		return err
	}

	if !slices.Contains(titles, name) {
		if err := a.api.AddSheet(ctx, name); err != nil {
			return err
		}
		return a.writeHeader(ctx)
	}

	rows, err := a.api.GetRange(ctx, a.headerRange())
	if err != nil {
		return err
	}
	if len(rows) == 0 || !slices.Equal(rows[0], columns) {
		return a.writeHeader(ctx)
	}
	return nil
}

func (a *AppointmentAdapter) writeHeader(ctx context.Context) error {
	return a.api.UpdateRange(ctx, a.headerRange(), [][]string{columns})
}

// fetchAll reads the data rows and maps them to appointments.
func (a *AppointmentAdapter) fetchAll(ctx context.Context) ([]*entities.Appointment, error) {
	rows, err := a.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	appointments := make([]*entities.Appointment, 0, len(rows))
	for _, cells := range rows {
		appointments = append(appointments, rowToAppointment(cellsToRow(cells)))
	}
	return appointments, nil
}

// fetchRows reads the raw data rows, retrying transient connectivity
// failures. Configuration errors (rejected credentials, wrong sheet id)
// fail immediately since a retry cannot fix them.
func (a *AppointmentAdapter) fetchRows(ctx context.Context) ([][]string, error) {
	var rows [][]string
	start := time.Now()
	err := retry.Do(ctx, a.retryCfg, func() error {
		fetched, err := a.api.GetRange(ctx, a.dataRange())
		if err != nil {
			return err
		}
		rows = fetched
		return nil
	}, func(err error) bool {
		return apperrors.IsType(err, apperrors.ErrorTypeExternal)
	})
	if err != nil {
		return nil, err
	}
	a.record(ctx, "read_rows", start)
	return rows, nil
}

func (a *AppointmentAdapter) headerRange() string {
	return fmt.Sprintf("%s!A1:%s1", a.api.SheetName(), columnLetter(len(columns)-1))
}

func (a *AppointmentAdapter) dataRange() string {
	return fmt.Sprintf("%s!A2:%s", a.api.SheetName(), columnLetter(len(columns)-1))
}

func (a *AppointmentAdapter) record(ctx context.Context, op string, start time.Time) {
	if a.metrics != nil {
		observability.RecordSheetMetric(ctx, a.metrics, op, time.Since(start))
	}
}

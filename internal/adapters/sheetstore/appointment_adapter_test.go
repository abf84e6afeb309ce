package sheetstore

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
	"github.com/clinicdesk/backend/pkg/retry"
)

// fakeSheetsAPI is an in-memory spreadsheet holding one worksheet: a header
// row plus data rows. It understands the three range shapes the adapter
// uses (header row, data block, single cell).
type fakeSheetsAPI struct {
	name         string
	titles       []string
	header       []string
	rows         [][]string
	dataErrs     []error
	dataCalls    int
	appendCalls  int
	headerWrites int
	cellWrites   map[string]string
}

func newFakeSheetsAPI() *fakeSheetsAPI {
	return &fakeSheetsAPI{
		name:       "Appointments",
		titles:     []string{"Appointments"},
		header:     append([]string(nil), columns...),
		cellWrites: map[string]string{},
	}
}

func (f *fakeSheetsAPI) SheetName() string { return f.name }

func (f *fakeSheetsAPI) SheetTitles(ctx context.Context) ([]string, error) {
	return f.titles, nil
}

func (f *fakeSheetsAPI) AddSheet(ctx context.Context, title string) error {
	f.titles = append(f.titles, title)
	f.header = nil
	return nil
}

func (f *fakeSheetsAPI) GetRange(ctx context.Context, rng string) ([][]string, error) {
	if strings.HasSuffix(rng, "!A1:J1") {
		if f.header == nil {
			return [][]string{}, nil
		}
		return [][]string{f.header}, nil
	}

	f.dataCalls++
	if len(f.dataErrs) > 0 {
		err := f.dataErrs[0]
		f.dataErrs = f.dataErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.rows, nil
}

func (f *fakeSheetsAPI) UpdateRange(ctx context.Context, rng string, values [][]string) error {
	if strings.HasSuffix(rng, "!A1:J1") {
		f.header = append([]string(nil), values[0]...)
		f.headerWrites++
		return nil
	}

	// Single cell, e.g. "Appointments!I3".
	f.cellWrites[rng] = values[0][0]
	ref := rng[strings.Index(rng, "!")+1:]
	col := int(ref[0] - 'A')
	sheetRow, err := strconv.Atoi(ref[1:])
	if err != nil {
		return err
	}
	row := f.rows[sheetRow-2]
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = values[0][0]
	f.rows[sheetRow-2] = row
	return nil
}

func (f *fakeSheetsAPI) AppendRow(ctx context.Context, rng string, row []string) error {
	f.appendCalls++
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSheetsAPI) addAppointment(a *entities.Appointment) {
	f.rows = append(f.rows, rowValues(a))
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Second,
	}
}

func TestAppointmentAdapter_List(t *testing.T) {
	t.Run("creates missing worksheet with header", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.titles = []string{"Sheet1"}
		api.header = nil
		adapter := NewAppointmentAdapter(api)

		appointments, err := adapter.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, appointments)
		assert.Contains(t, api.titles, "Appointments")
		assert.Equal(t, 1, api.headerWrites)
		assert.Equal(t, columns, api.header)
	})

	t.Run("rewrites a corrupted header", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.header = []string{"name", "phone"}
		adapter := NewAppointmentAdapter(api)

		_, err := adapter.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, api.headerWrites)
		assert.Equal(t, columns, api.header)
	})

	t.Run("leaves a correct header untouched", func(t *testing.T) {
		api := newFakeSheetsAPI()
		adapter := NewAppointmentAdapter(api)

		_, err := adapter.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, api.headerWrites)
	})

	t.Run("maps rows in sheet order", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{
			ID: "id-1", Name: "Amara Okafor", Phone: "+2348012345678",
			PreferredDate: "2026-09-07", Type: entities.AppointmentTypeCheckup,
			Diagnosed: true, Prescription: "Vitamin D",
		})
		api.addAppointment(&entities.Appointment{
			ID: "id-2", Name: "Tunde Balogun", Phone: "+2348023456789",
			PreferredDate: "2026-09-08", Type: entities.AppointmentTypeConsultation,
		})
		adapter := NewAppointmentAdapter(api)

		appointments, err := adapter.List(context.Background())

		require.NoError(t, err)
		require.Len(t, appointments, 2)
		assert.Equal(t, "id-1", appointments[0].ID)
		assert.True(t, appointments[0].Diagnosed)
		assert.Equal(t, "Vitamin D", appointments[0].Prescription)
		assert.Equal(t, "id-2", appointments[1].ID)
		assert.False(t, appointments[1].Diagnosed)
	})

	t.Run("retries transient read failures", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.dataErrs = []error{
			apperrors.NewExternalError("sheets API unavailable", nil),
			apperrors.NewExternalError("sheets API unavailable", nil),
		}
		adapter := NewAppointmentAdapter(api)
		adapter.retryCfg = fastRetry()

		_, err := adapter.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, api.dataCalls)
	})

	t.Run("does not retry configuration failures", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.dataErrs = []error{
			apperrors.NewConfigurationError("spreadsheet not found, check GOOGLE_SHEET_ID"),
		}
		adapter := NewAppointmentAdapter(api)
		adapter.retryCfg = fastRetry()

		_, err := adapter.List(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
		assert.Equal(t, 1, api.dataCalls)
	})

	t.Run("propagates persistent connectivity failures", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.dataErrs = []error{
			apperrors.NewExternalError("sheets API unavailable", nil),
			apperrors.NewExternalError("sheets API unavailable", nil),
			apperrors.NewExternalError("sheets API unavailable", nil),
		}
		adapter := NewAppointmentAdapter(api)
		adapter.retryCfg = fastRetry()

		_, err := adapter.List(context.Background())

		require.Error(t, err)
		assert.Equal(t, 3, api.dataCalls)
	})
}

func TestAppointmentAdapter_Create(t *testing.T) {
	appointment := &entities.Appointment{
		ID:            "id-new",
		CreatedAt:     "2026-08-28T09:15:00Z",
		Name:          "Chiamaka Eze",
		Phone:         "+2348034567890",
		Email:         "chiamaka@example.com",
		PreferredDate: "2026-09-08",
		Type:          entities.AppointmentTypeFollowUp,
	}

	t.Run("appends the row in canonical order", func(t *testing.T) {
		api := newFakeSheetsAPI()
		adapter := NewAppointmentAdapter(api)

		err := adapter.Create(context.Background(), appointment)

		require.NoError(t, err)
		assert.Equal(t, 1, api.appendCalls)
		require.Len(t, api.rows, 1)
		assert.Equal(t, rowValues(appointment), api.rows[0])
	})

	t.Run("rejects a duplicate phone and date", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{
			ID: "id-old", Phone: "+2348034567890", PreferredDate: "2026-09-08",
		})
		adapter := NewAppointmentAdapter(api)

		err := adapter.Create(context.Background(), appointment)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		assert.Equal(t, 0, api.appendCalls)
	})

	t.Run("allows the same phone on another date", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{
			ID: "id-old", Phone: "+2348034567890", PreferredDate: "2026-09-01",
		})
		adapter := NewAppointmentAdapter(api)

		err := adapter.Create(context.Background(), appointment)

		require.NoError(t, err)
		assert.Equal(t, 1, api.appendCalls)
	})
}

func TestAppointmentAdapter_UpdateStatus(t *testing.T) {
	t.Run("writes only the diagnosed cell of the matching row", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{ID: "id-1", Name: "Amara Okafor"})
		api.addAppointment(&entities.Appointment{ID: "id-2", Name: "Tunde Balogun"})
		adapter := NewAppointmentAdapter(api)

		err := adapter.UpdateStatus(context.Background(), "id-2", true)

		require.NoError(t, err)
		// id-2 sits on sheet row 3, column I.
		assert.Equal(t, "true", api.cellWrites["Appointments!I3"])
		assert.Len(t, api.cellWrites, 1)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{ID: "id-1"})
		adapter := NewAppointmentAdapter(api)

		err := adapter.UpdateStatus(context.Background(), "missing", true)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		assert.Empty(t, api.cellWrites)
	})
}

func TestAppointmentAdapter_UpdatePrescription(t *testing.T) {
	t.Run("writes only the prescription cell of the matching row", func(t *testing.T) {
		api := newFakeSheetsAPI()
		api.addAppointment(&entities.Appointment{ID: "id-1"})
		adapter := NewAppointmentAdapter(api)

		err := adapter.UpdatePrescription(context.Background(), "id-1", "Amoxicillin 500mg x7 days")

		require.NoError(t, err)
		assert.Equal(t, "Amoxicillin 500mg x7 days", api.cellWrites["Appointments!J2"])
		assert.Len(t, api.cellWrites, 1)

		appointments, err := adapter.List(context.Background())
		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, "Amoxicillin 500mg x7 days", appointments[0].Prescription)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		api := newFakeSheetsAPI()
		adapter := NewAppointmentAdapter(api)

		err := adapter.UpdatePrescription(context.Background(), "missing", "anything")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/adapters/sheetstore"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/sheets"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// seed populates the appointments sheet with a handful of demo requests so
// the admin views have something to show on a fresh spreadsheet.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("clinicdesk-seed", cfg.Environment)

	if err := cfg.Sheets.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid sheets configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := sheets.NewClient(ctx, &cfg.Sheets)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sheets client")
	}

	adapter := sheetstore.NewAppointmentAdapter(client)
	service := services.NewAppointmentService(adapter)

	seedAppointments := []*entities.Appointment{
		{
			Name:          "Amara Okafor",
			Phone:         "+2348012345678",
			Email:         "amara.okafor@example.com",
			PreferredDate: "2026-09-07",
			Type:          entities.AppointmentTypeCheckup,
			Notes:         "Annual physical",
		},
		{
			Name:          "Tunde Balogun",
			Phone:         "+2348023456789",
			Email:         "tunde.balogun@example.com",
			PreferredDate: "2026-09-08",
			Type:          entities.AppointmentTypeConsultation,
			Notes:         "Recurring headaches over the past two weeks",
		},
		{
			Name:          "Chiamaka Eze",
			Phone:         "+2348034567890",
			Email:         "chiamaka.eze@example.com",
			PreferredDate: "2026-09-08",
			Type:          entities.AppointmentTypeFollowUp,
			Notes:         "Post-op review",
		},
		{
			Name:          "Ibrahim Musa",
			Phone:         "+2348045678901",
			Email:         "ibrahim.musa@example.com",
			PreferredDate: "2026-09-10",
			Type:          entities.AppointmentTypeConsultation,
			Notes:         "",
		},
	}

	created := 0
	for _, appt := range seedAppointments {
		id, err := service.Create(ctx, appt)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
				log.Info().Str("name", appt.Name).Str("preferred_date", appt.PreferredDate).
					Msg("appointment already seeded, skipping")
				continue
			}
			log.Fatal().Err(err).Str("name", appt.Name).Msg("failed to seed appointment")
		}
		created++
		log.Info().Str("appointment_id", id).Str("name", appt.Name).Msg("seeded appointment")
	}

	log.Info().Int("created", created).Int("total", len(seedAppointments)).Msg("seeding complete")
}

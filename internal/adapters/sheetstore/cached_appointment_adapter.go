package sheetstore

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// appointmentsListTTL bounds cache staleness in seconds. A sheet row edited
// by hand shows up after at most this long even if no event fires.
const appointmentsListTTL = 30

// AppointmentsListCacheKey is the cache key for the full appointment list.
func AppointmentsListCacheKey() string {
	return "appointments:list"
}

// CachedAppointmentAdapter wraps an AppointmentRepository with list caching.
// Every spreadsheet read is at least two remote round trips (schema check
// plus values fetch), so the admin dashboard polls hit the cache instead.
// Mutations invalidate the list key before returning.
type CachedAppointmentAdapter struct {
	adapter repositories.AppointmentRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedAppointmentAdapter creates a new cached appointment adapter
func NewCachedAppointmentAdapter(adapter repositories.AppointmentRepository, cache providers.CacheProvider) *CachedAppointmentAdapter {
	return &CachedAppointmentAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// SetMetrics enables cache hit/miss metrics
func (a *CachedAppointmentAdapter) SetMetrics(m *observability.Metrics) {
	a.metrics = m
}

// List retrieves all appointments, served from cache when fresh.
func (a *CachedAppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	cacheKey := AppointmentsListCacheKey()

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var appointments []*entities.Appointment
		if err := json.Unmarshal(cached, &appointments); err == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, cacheKey)
			}
			return appointments, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached appointment list")
	}

	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, cacheKey)
	}

	appointments, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(appointments); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, appointmentsListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache appointment list")
			}
		}
	}()

	return appointments, nil
}

// Create appends a new appointment and invalidates the cached list.
func (a *CachedAppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	if err := a.adapter.Create(ctx, appointment); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// UpdateStatus updates the diagnosed field and invalidates the cached list.
func (a *CachedAppointmentAdapter) UpdateStatus(ctx context.Context, id string, diagnosed bool) error {
	if err := a.adapter.UpdateStatus(ctx, id, diagnosed); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// UpdatePrescription updates the prescription field and invalidates the cached list.
func (a *CachedAppointmentAdapter) UpdatePrescription(ctx context.Context, id string, prescription string) error {
	if err := a.adapter.UpdatePrescription(ctx, id, prescription); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

func (a *CachedAppointmentAdapter) invalidate(ctx context.Context) {
	if err := a.cache.Delete(ctx, AppointmentsListCacheKey()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate appointment list cache")
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/adapters/sheetstore"
	"github.com/clinicdesk/backend/internal/domain/entities"
	"github.com/clinicdesk/backend/internal/domain/providers"
)

// CacheInvalidationService drops cached appointment data when change events
// arrive. With several API replicas sharing one Redis, an update handled by
// one replica invalidates the others' cache through the event bus.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelAppointmentUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to appointment updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.AppointmentEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			key := sheetstore.AppointmentsListCacheKey()
			if err := s.cache.Delete(s.ctx, key); err != nil {
				log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to invalidate appointment cache")
				continue
			}
			log.Debug().
				Str("event_id", event.ID).
				Str("event_type", string(event.EventType)).
				Msg("invalidated appointment cache")
		}
	}
}

package l1_service

import (
	"context"
	"finplan/internal/cache"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"finplan/internal/repository"
	"time"
)

// UniverseService serves the latest NAV universe. It never returns an
// error: when the feed is unavailable the snapshot is marked not live
type UniverseService interface {
	GetUniverse(ctx context.Context) domain.UniverseSnapshot
}

type universeServiceHandler struct {
	NavFeedRepository repository.NavFeedRepository
	Cache             *cache.TTLCache[[]domain.Instrument]
}

func NewUniverseService(navFeedRepository repository.NavFeedRepository, ttl time.Duration, opts ...cache.Option) UniverseService {
	return universeServiceHandler{
		NavFeedRepository: navFeedRepository,
		Cache:             cache.New[[]domain.Instrument]("nav universe", ttl, opts...),
	}
}

func (h universeServiceHandler) GetUniverse(ctx context.Context) domain.UniverseSnapshot {
	log := logger.FromContext(ctx)

	result, err := h.Cache.Get(ctx, func(ctx context.Context) ([]domain.Instrument, error) {
		log.Info("fetching live nav universe")
		return h.NavFeedRepository.FetchUniverse(ctx)
	})
	if err != nil {
		if len(result.Value) > 0 {
			log.Warnf("serving stale nav universe from %s: %s", result.FetchedAt.Format(time.RFC3339), err.Error())
		} else {
			log.Errorf("nav universe unavailable: %s", err.Error())
		}
	}

	return domain.UniverseSnapshot{
		Instruments: result.Value,
		FetchedAt:   result.FetchedAt,
		IsLive:      err == nil && result.Fresh && len(result.Value) > 0,
	}
}

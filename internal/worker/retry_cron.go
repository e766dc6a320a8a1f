package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues cleanup jobs for orphan
// uploads whose next_retry_at is in the past. Skips ticks while the storage
// circuit breaker is open to avoid hammering a downed backend.

import (
	"context"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OrphanRepo repository.OrphanUploadRepository
	CB         *infra.CircuitBreaker
	Dispatcher *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues due orphan cleanups. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	orphans, err := cfg.OrphanRepo.ListPendingRetries(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(orphans) == 0 {
		return
	}

	log.Info().Int("count", len(orphans)).Msg("retry_cron: re-enqueueing orphan cleanups")

	for i := range orphans {
		payload := CleanupJobPayload{OrphanID: orphans[i].ID.String()}
		if err := cfg.Dispatcher.EnqueueCleanup(ctx, payload); err != nil {
			log.Error().Err(err).Str("orphan_id", payload.OrphanID).Msg("retry_cron: enqueue failed")
		}
	}
}

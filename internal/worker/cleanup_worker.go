package worker

// cleanup_worker.go
// Deletes orphaned bucket objects — uploads whose product row never committed.
// Failures are rescheduled with exponential backoff; after MaxCleanupRetries
// the job lands in the DLQ and the orphan row keeps its last error.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxCleanupRetries = 5

// CleanupJobPayload identifies the orphan row whose object must be removed.
type CleanupJobPayload struct {
	OrphanID string `json:"orphan_id"`
}

// CleanupWorker removes orphaned objects from the storage bucket.
type CleanupWorker struct {
	storage *infra.ObjectStorage
	cb      *infra.CircuitBreaker
	repo    repository.OrphanUploadRepository
	rdb     *redis.Client
}

func NewCleanupWorker(storage *infra.ObjectStorage, cb *infra.CircuitBreaker, repo repository.OrphanUploadRepository, rdb *redis.Client) *CleanupWorker {
	return &CleanupWorker{storage: storage, cb: cb, repo: repo, rdb: rdb}
}

// Process attempts to delete the orphan's object through the circuit breaker.
func (w *CleanupWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CleanupJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cleanup_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.OrphanID)
	if err != nil {
		log.Error().Str("orphan_id", payload.OrphanID).Msg("cleanup_worker: malformed orphan id")
		return
	}

	orphan, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orphan_id", payload.OrphanID).Msg("cleanup_worker: orphan row not found")
		return
	}
	if orphan.Deleted {
		return // already collected
	}

	cbErr := w.cb.Execute(func() error {
		return w.storage.Remove(ctx, orphan.Path)
	})
	if cbErr == nil {
		if err := w.repo.MarkDeleted(ctx, orphan.ID); err != nil {
			log.Error().Err(err).Str("path", orphan.Path).Msg("cleanup_worker: object removed but row not marked")
			return
		}
		log.Info().Str("path", orphan.Path).Msg("cleanup_worker: orphaned object removed")
		return
	}

	// Failure — schedule the next attempt or give up to the DLQ.
	orphan.RetryCount++
	errMsg := cbErr.Error()
	orphan.LastError = &errMsg

	if orphan.RetryCount >= MaxCleanupRetries {
		orphan.NextRetryAt = nil
		if err := w.repo.Update(ctx, orphan); err != nil {
			log.Error().Err(err).Msg("cleanup_worker: failed to persist final state")
		}
		SendToDLQ(ctx, w.rdb, QueueCleanup, "cleanup", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxCleanupRetries, errMsg),
			orphan.RetryCount)
		return
	}

	next := time.Now().Add(computeRetryBackoff(orphan.RetryCount))
	orphan.NextRetryAt = &next
	if err := w.repo.Update(ctx, orphan); err != nil {
		log.Error().Err(err).Msg("cleanup_worker: failed to schedule retry")
		return
	}
	log.Warn().
		Str("path", orphan.Path).
		Int("retry_count", orphan.RetryCount).
		Time("next_retry_at", next).
		Msg("cleanup_worker: removal failed, scheduled next attempt")
}

// computeRetryBackoff doubles per attempt starting at 1 minute, capped at 1 hour.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount > 7 { // 64min already past the cap; larger shifts overflow
		return time.Hour
	}
	backoff := time.Minute << uint(retryCount-1)
	if backoff > time.Hour {
		backoff = time.Hour
	}
	return backoff
}

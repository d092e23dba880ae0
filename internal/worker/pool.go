package worker

import (
	"context"
	"encoding/json"
	"time"

	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAudit = "jobs:audit"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP. It is the production AuditSink: stock operations hand their
// activity events here and move on without waiting for persistence.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Record builds the activity row and enqueues it for async persistence.
// Fire-and-forget: any failure is logged and swallowed, returning nil —
// the calling stock operation must never be aborted by the audit path.
func (d *Dispatcher) Record(ctx context.Context, action, category, description string, details map[string]any, actor string) *model.ActivityLog {
	entry := &model.ActivityLog{
		ID:          uuid.New(),
		Action:      action,
		Category:    category,
		Description: description,
		Actor:       actor,
		CreatedAt:   time.Now().UTC(),
	}
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("audit: failed to marshal details")
			return nil
		}
		entry.Details = string(data)
	}

	if err := d.enqueue(ctx, QueueAudit, "audit", entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit: failed to enqueue activity log")
		return nil
	}
	return entry
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the audit queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, activityRepo repository.ActivityLogRepository, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, activityRepo, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, activityRepo repository.ActivityLogRepository, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAudit).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, activityRepo, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, activityRepo repository.ActivityLogRepository, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", []byte(raw), "unmarshal failure", 1)
		return
	}

	var entry model.ActivityLog
	if err := json.Unmarshal(job.Payload, &entry); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("audit: invalid payload")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "invalid activity log payload", 1)
		return
	}

	if err := activityRepo.Create(ctx, &entry); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("audit: failed to persist activity log")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), 1)
		return
	}
	log.Debug().Str("action", entry.Action).Str("category", entry.Category).Msg("audit: activity log persisted")
}

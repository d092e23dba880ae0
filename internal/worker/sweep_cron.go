package worker

// sweep_cron.go
// Background goroutine that periodically removes expired semi-processed
// batches so stale stock never lingers between manual sweeps.

import (
	"context"
	"time"

	"stallpos/internal/service"

	"github.com/rs/zerolog/log"
)

const sweepActor = "system"

// StartSweepCron launches a background goroutine that ticks at the configured
// interval and runs the expiry sweep. It respects the context for graceful
// shutdown.
func StartSweepCron(ctx context.Context, kitchen *service.KitchenService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("sweep_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sweep_cron: shutting down")
				return
			case <-ticker.C:
				runSweep(ctx, kitchen)
			}
		}
	}()
}

func runSweep(ctx context.Context, kitchen *service.KitchenService) {
	result, err := kitchen.SweepExpired(ctx, sweepActor)
	if err != nil {
		log.Error().Err(err).Msg("sweep_cron: sweep failed")
		return
	}
	if result.BatchesRemoved == 0 {
		return
	}
	log.Info().
		Int("items_affected", result.ItemsAffected).
		Int("batches_removed", result.BatchesRemoved).
		Str("quantity_removed", result.QuantityRemoved.String()).
		Msg("sweep_cron: removed expired batches")
}

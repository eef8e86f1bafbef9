package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RecomputeWorker triggers a full batch pass on a fixed interval. The worker
// carries no retry logic of its own: a failed pass commits nothing and the
// next tick retries the whole pass from a fresh snapshot.
type RecomputeWorker struct {
	svc      *RecomputeService
	interval time.Duration
	log      zerolog.Logger
	stopCh   chan struct{}
}

// NewRecomputeWorker creates a worker that ticks every interval.
func NewRecomputeWorker(svc *RecomputeService, interval time.Duration, log zerolog.Logger) *RecomputeWorker {
	return &RecomputeWorker{
		svc:      svc,
		interval: interval,
		log:      log.With().Str("component", "recompute-worker").Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic recomputation loop. It runs one pass immediately,
// then every interval, until the context is cancelled or Stop is called.
func (w *RecomputeWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.log.Info().Msg("stopping (context cancelled)")
			return
		case <-w.stopCh:
			w.log.Info().Msg("stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RecomputeWorker) Stop() {
	close(w.stopCh)
}

func (w *RecomputeWorker) tick(ctx context.Context) {
	summary, err := w.svc.RecomputeAll(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("pass aborted, previous scores left untouched")
		return
	}

	w.log.Info().
		Int("users_scored", summary.UsersScored).
		Int64("duration_ms", summary.DurationMs).
		Msg("tick complete")
}

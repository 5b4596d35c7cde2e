package retention

import (
	"context"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/observability/metrics"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Worker periodically sweeps the client base for retention candidates so the
// admin dashboard has a fresh count without scanning on every page load.
type Worker struct {
	service  *Service
	interval time.Duration
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
}

// NewWorker creates a sweep worker. interval <= 0 defaults to 24h.
func NewWorker(service *Service, interval time.Duration, logger *logging.Logger, m *metrics.BookingMetrics) *Worker {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Worker{service: service, interval: interval, logger: logger, metrics: m}
}

// Run sweeps until the context is cancelled. One sweep runs immediately on
// start.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	candidates, err := w.service.Candidates(ctx)
	if err != nil {
		w.logger.Error("retention sweep failed", "error", err)
		return
	}
	w.metrics.ObserveRetentionSweep()
	w.logger.Info("retention sweep completed", "candidates", len(candidates))
}

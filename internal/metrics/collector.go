package metrics

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SystemCollector samples process uptime, goroutines and memory for the
// ledger process until Stop.
type SystemCollector struct {
	metrics   *Metrics
	logger    *zap.Logger
	startTime time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewSystemCollector(metrics *Metrics, logger *zap.Logger) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
	}
}

func (sc *SystemCollector) Start(interval time.Duration) {
	if sc.cancel != nil {
		return
	}

	sc.metrics.SetServiceVersion(Version, Commit, BuildDate)

	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	sc.done = make(chan struct{})

	go sc.run(ctx, interval)
	sc.logger.Info("System metrics collector started",
		zap.Duration("interval", interval),
		zap.String("version", Version),
	)
}

// Stop waits for the sampling goroutine to exit. It is safe to call more
// than once.
func (sc *SystemCollector) Stop() {
	if sc.cancel == nil {
		return
	}

	sc.cancel()
	<-sc.done
	sc.cancel = nil
	sc.logger.Info("System metrics collector stopped")
}

func (sc *SystemCollector) run(ctx context.Context, interval time.Duration) {
	defer close(sc.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sc.collect()
	for {
		select {
		case <-ticker.C:
			sc.collect()
		case <-ctx.Done():
			return
		}
	}
}

func (sc *SystemCollector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sc.metrics.UpdateSystemMetrics(time.Since(sc.startTime), &memStats)
}

package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// SystemMetricsCollector collects system-level metrics periodically
type SystemMetricsCollector struct {
	metrics  *Metrics
	logger   zerolog.Logger
	interval time.Duration
	done     chan struct{}
}

// NewSystemMetricsCollector creates a new system metrics collector
func NewSystemMetricsCollector(metrics *Metrics, logger zerolog.Logger, interval time.Duration) *SystemMetricsCollector {
	return &SystemMetricsCollector{
		metrics:  metrics,
		logger:   logger.With().Str("component", "system_metrics").Logger(),
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start collects system metrics until ctx is cancelled or Stop is called
func (c *SystemMetricsCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug().
		Dur("interval", c.interval).
		Msg("Starting system metrics collection")

	c.collect()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

// Stop stops the metrics collection
func (c *SystemMetricsCollector) Stop() {
	close(c.done)
}

func (c *SystemMetricsCollector) collect() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.metrics.UpdateSystemMetrics(runtime.NumGoroutine(), m.Alloc)
}

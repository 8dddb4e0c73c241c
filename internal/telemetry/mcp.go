package telemetry

import (
	"context"
	"sync"
	"time"

	"weather-mcp-client/internal/mcp"
	"weather-mcp-client/internal/normalize"
)

// DialerWrapper wraps a dialer so every connection it opens reports telemetry
type DialerWrapper struct {
	mcp.Dialer
	metrics *Metrics
}

// NewDialerWrapper creates a new telemetry-aware dialer wrapper
func NewDialerWrapper(dialer mcp.Dialer, metrics *Metrics) *DialerWrapper {
	return &DialerWrapper{
		Dialer:  dialer,
		metrics: metrics,
	}
}

// Dial wraps the original Dial to track open connections
func (w *DialerWrapper) Dial(ctx context.Context) (mcp.Conn, error) {
	conn, err := w.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	w.metrics.RecordConnectionOpened()
	return &connWrapper{Conn: conn, metrics: w.metrics}, nil
}

type connWrapper struct {
	mcp.Conn
	metrics   *Metrics
	closeOnce sync.Once
}

// CallTool wraps the original CallTool to add telemetry
func (w *connWrapper) CallTool(ctx context.Context, name string, args map[string]any) (normalize.Payload, error) {
	start := time.Now()

	result, err := w.Conn.CallTool(ctx, name, args)

	status := "success"
	if err != nil {
		status = "error"
	}
	w.metrics.RecordToolCall(name, status, time.Since(start))

	return result, err
}

// Close wraps the original Close; the gauge drops once even if Close fails
func (w *connWrapper) Close() error {
	w.closeOnce.Do(w.metrics.RecordConnectionClosed)
	return w.Conn.Close()
}

package telemetry

import (
	"weather-mcp-client/internal/session"
)

// ClientWrapper wraps a session client to add telemetry
type ClientWrapper struct {
	session.Client
	metrics *Metrics
}

// NewClientWrapper creates a new telemetry-aware session client wrapper
func NewClientWrapper(client session.Client, metrics *Metrics) *ClientWrapper {
	return &ClientWrapper{
		Client:  client,
		metrics: metrics,
	}
}

// Connect wraps the original Connect to add telemetry
func (w *ClientWrapper) Connect() session.Reply {
	reply := w.Client.Connect()

	toolCount := 0
	if reply.OK() {
		toolCount = len(w.Client.Status().Tools)
	}
	w.metrics.RecordConnect(reply.OK(), toolCount)

	return reply
}

// GetWeather wraps the original GetWeather to add telemetry
func (w *ClientWrapper) GetWeather(location string) session.Reply {
	reply := w.Client.GetWeather(location)
	w.metrics.RecordReply(reply.Kind)
	return reply
}

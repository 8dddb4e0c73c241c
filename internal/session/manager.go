package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"weather-mcp-client/internal/loop"
	"weather-mcp-client/internal/mcp"
	"weather-mcp-client/internal/normalize"
	"weather-mcp-client/internal/tools"
	"weather-mcp-client/internal/tools/weather"
)

// Manager owns the lifecycle of the single session to the tool server.
// Every operation runs on the loop, so session state is only touched from
// the loop goroutine.
type Manager struct {
	dialer  mcp.Dialer
	loop    *loop.Loop
	session *Session
	logger  zerolog.Logger
}

// NewManager creates a manager with an empty, disconnected session
func NewManager(dialer mcp.Dialer, l *loop.Loop, logger zerolog.Logger) *Manager {
	return &Manager{
		dialer:  dialer,
		loop:    l,
		session: &Session{},
		logger:  logger.With().Str("component", "session_manager").Logger(),
	}
}

// Connect releases any previous connection, opens a new one, negotiates and
// caches the advertised tools.
func (m *Manager) Connect() Reply {
	reply, err := loop.Run(m.loop, func(ctx context.Context) (reply Reply) {
		defer m.recoverInto(&reply, NewConnectionError)
		return m.connect(ctx)
	})
	if err != nil {
		return NewConnectionError(err).Reply()
	}
	return reply
}

// GetWeather calls the first tool whose name mentions weather with the city
// and country parsed from location.
func (m *Manager) GetWeather(location string) Reply {
	reply, err := loop.Run(m.loop, func(ctx context.Context) (reply Reply) {
		defer m.recoverInto(&reply, NewCallError)
		return m.getWeather(ctx, location)
	})
	if err != nil {
		return NewCallError(err).Reply()
	}
	return reply
}

// Status returns a snapshot of the session
func (m *Manager) Status() Status {
	status, _ := loop.Run(m.loop, func(ctx context.Context) Status {
		return Status{
			Connected:   m.session.Connected,
			Tools:       m.session.Tools.Names(),
			ConnectedAt: m.session.ConnectedAt,
		}
	})
	return status
}

// Tools returns the cached tool descriptors
func (m *Manager) Tools() []tools.Tool {
	list, _ := loop.Run(m.loop, func(ctx context.Context) []tools.Tool {
		return m.session.Tools.List()
	})
	return list
}

// Close releases the current connection
func (m *Manager) Close() error {
	return m.loop.Do(func(ctx context.Context) {
		m.release()
	})
}

func (m *Manager) connect(ctx context.Context) Reply {
	start := time.Now()

	m.release()

	conn, err := m.dialer.Dial(ctx)
	if err != nil {
		m.logger.Error().
			Err(err).
			Msg("Failed to open connection")
		return NewConnectionError(err).Reply()
	}

	if err := conn.Initialize(ctx); err != nil {
		m.logger.Error().
			Err(err).
			Msg("Capability negotiation failed")
		m.closeConn(conn)
		return NewConnectionError(err).Reply()
	}

	list, err := conn.ListTools(ctx)
	if err != nil {
		m.logger.Error().
			Err(err).
			Msg("Failed to list tools")
		m.closeConn(conn)
		return NewConnectionError(err).Reply()
	}

	m.session = &Session{
		conn:        conn,
		Connected:   true,
		Tools:       tools.NewCatalog(list),
		ConnectedAt: time.Now(),
	}

	names := m.session.Tools.Names()
	m.logger.Info().
		Int("tool_count", len(names)).
		Strs("tools", names).
		Dur("duration", time.Since(start)).
		Msg("Connected to tool server")

	return Reply{
		Text: fmt.Sprintf("✅ Connected to weather server!\nAvailable tools: %s", strings.Join(names, ", ")),
	}
}

func (m *Manager) getWeather(ctx context.Context, location string) Reply {
	if !m.session.Connected {
		return NewNotConnectedError().Reply()
	}

	if strings.TrimSpace(location) == "" {
		return NewEmptyLocationError().Reply()
	}

	args := weather.ParseLocation(location)

	tool, err := m.session.Tools.FindByKeyword(weather.Keyword)
	if err != nil {
		m.logger.Warn().
			Strs("tools", m.session.Tools.Names()).
			Msg("No weather tool advertised")
		return NewToolNotFoundError(err).Reply()
	}

	m.logger.Debug().
		Str("tool", tool.Name).
		Str("city", args.City).
		Str("country", args.Country).
		Msg("Calling tool")

	payload, err := m.session.conn.CallTool(ctx, tool.Name, args.Map())
	if err != nil {
		m.logger.Error().
			Err(err).
			Str("tool", tool.Name).
			Msg("Tool call failed")
		return withTool(NewCallError(err).Reply(), tool.Name)
	}

	text, err := normalize.Format(payload)
	if err != nil {
		var formatErr *normalize.Error
		if errors.As(err, &formatErr) && formatErr.Code == normalize.ErrRemote {
			return withTool(NewRemoteError(formatErr.Message).Reply(), tool.Name)
		}
		return withTool(NewNoContentError(err).Reply(), tool.Name)
	}

	return Reply{Text: text, Tool: tool.Name}
}

// release closes the current connection, if any, and resets the session.
// Close errors are logged and dropped so they never block a reconnect.
func (m *Manager) release() {
	if m.session.conn != nil {
		m.closeConn(m.session.conn)
	}
	m.session = &Session{}
}

func (m *Manager) closeConn(conn mcp.Conn) {
	if err := conn.Close(); err != nil {
		m.logger.Warn().
			Err(err).
			Msg("Failed to close connection")
	}
}

// recoverInto turns a panic inside an operation into an error reply.
func (m *Manager) recoverInto(reply *Reply, wrap func(error) *Error) {
	if r := recover(); r != nil {
		m.logger.Error().
			Interface("panic", r).
			Msg("Recovered from panic in session operation")
		*reply = wrap(fmt.Errorf("%v", r)).Reply()
	}
}

func withTool(reply Reply, tool string) Reply {
	reply.Tool = tool
	return reply
}

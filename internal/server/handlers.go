package server

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"weather-mcp-client/internal/session"
	"weather-mcp-client/internal/tools/weather"
)

//go:embed templates/index.html
var templateFS embed.FS

// FormHandler serves the weather form and forwards its triggers to the session
type FormHandler struct {
	client session.Client
	page   *template.Template
	logger zerolog.Logger
}

// NewFormHandler creates a new form handler
func NewFormHandler(client session.Client, logger zerolog.Logger) (*FormHandler, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &FormHandler{
		client: client,
		page:   page,
		logger: logger.With().Str("component", "form_handler").Logger(),
	}, nil
}

// WeatherRequest represents the request body for a weather lookup
type WeatherRequest struct {
	Location string `json:"location" form:"location"`
}

// Bind implements render.Binder
func (req *WeatherRequest) Bind(r *http.Request) error {
	return nil
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   map[string]interface{} `json:"error"`
}

type pageData struct {
	Title    string
	Status   string
	Location string
	Examples []string
}

// Page handles GET / - renders the form
func (h *FormHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:    "Weather MCP Test Client",
		Status:   "Click Connect to start",
		Location: weather.Examples[0],
		Examples: weather.Examples,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		h.logger.Error().
			Err(err).
			Msg("Failed to render page")
	}
}

// Connect handles POST /api/connect - (re)connects the session
func (h *FormHandler) Connect(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Msg("Connect requested")

	reply := h.client.Connect()

	h.logger.Info().
		Bool("ok", reply.OK()).
		Str("kind", reply.Kind).
		Msg("Connect finished")

	render.JSON(w, r, reply)
}

// GetWeather handles POST /api/weather - looks up the weather for a location
func (h *FormHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	req := &WeatherRequest{}
	// An empty body is a blank location, not a malformed request
	if err := render.Bind(r, req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug().
			Err(err).
			Msg("Failed to decode weather request")
		h.sendError(w, r, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"content_type": r.Header.Get("Content-Type"),
		})
		return
	}

	h.logger.Debug().
		Str("location", req.Location).
		Msg("Weather requested")

	reply := h.client.GetWeather(req.Location)

	h.logger.Info().
		Str("location", strings.TrimSpace(req.Location)).
		Str("tool", reply.Tool).
		Str("kind", reply.Kind).
		Msg("Weather request finished")

	render.JSON(w, r, reply)
}

// Status handles GET /api/status - reports the connection state
func (h *FormHandler) Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.client.Status())
}

// Examples handles GET /api/examples - lists the example locations
func (h *FormHandler) Examples(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, weather.Examples)
}

// sendError sends a JSON error response
func (h *FormHandler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, message string, details map[string]interface{}) {
	errorResponse := ErrorResponse{
		Success: false,
		Error: map[string]interface{}{
			"message": message,
			"code":    statusCode,
		},
	}

	if details != nil {
		errorResponse.Error["details"] = details
	}

	render.Status(r, statusCode)
	render.JSON(w, r, errorResponse)
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"weather-mcp-client/internal/session"
	"weather-mcp-client/internal/tools/weather"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Model is the terminal form. It only forwards triggers to the session client.
type Model struct {
	client   session.Client
	location []rune
	example  int
	status   string
	result   string
	busy     bool
	width    int
}

// NewModel creates a form prefilled with the first example location
func NewModel(client session.Client) Model {
	return Model{
		client:   client,
		location: []rune(weather.Examples[0]),
		status:   "Press ctrl+o to connect",
	}
}

// Run starts the terminal form and blocks until the user quits
func Run(client session.Client) error {
	program := tea.NewProgram(NewModel(client), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal form failed: %w", err)
	}

	return nil
}

// connectedMsg carries the reply of a connect trigger
type connectedMsg struct {
	reply session.Reply
}

// weatherMsg carries the reply of a weather trigger
type weatherMsg struct {
	reply session.Reply
}

func connectCmd(client session.Client) tea.Cmd {
	return func() tea.Msg {
		return connectedMsg{reply: client.Connect()}
	}
}

func weatherCmd(client session.Client, location string) tea.Cmd {
	return func() tea.Msg {
		return weatherMsg{reply: client.GetWeather(location)}
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case connectedMsg:
		m.busy = false
		m.status = msg.reply.Text
		return m, nil

	case weatherMsg:
		m.busy = false
		m.result = msg.reply.Text
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlO:
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Connecting..."
			return m, connectCmd(m.client)

		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, weatherCmd(m.client, string(m.location))

		case tea.KeyTab:
			m.example = (m.example + 1) % len(weather.Examples)
			m.location = []rune(weather.Examples[m.example])
			return m, nil

		case tea.KeyBackspace:
			if len(m.location) > 0 {
				m.location = m.location[:len(m.location)-1]
			}
			return m, nil

		case tea.KeySpace:
			m.location = append(m.location, ' ')
			return m, nil

		case tea.KeyRunes:
			m.location = append(m.location, msg.Runes...)
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	width := m.width - 4
	if width < 40 {
		width = 60
	}

	title := titleStyle.Render("🌤️ Weather MCP Test Client")

	status := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Status"),
		boxStyle.Width(width).Render(m.status),
	)

	input := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Location"),
		inputStyle.Width(width).Render(string(m.location)+"█"),
	)

	result := m.result
	if result == "" {
		result = labelStyle.Render("Weather information will appear here...")
	}
	output := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Weather Result"),
		boxStyle.Width(width).Render(result),
	)

	footer := helpStyle.Render("[ctrl+o] Connect | [enter] Get Weather | [tab] Next example | [esc] Quit")
	if m.busy {
		footer = busyStyle.Render("Working...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", status, input, output, footer)
}

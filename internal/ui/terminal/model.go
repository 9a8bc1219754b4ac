package terminal

import (
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 40

// Controller is the part of the session engine the terminal drives.
type Controller interface {
	Start()
	Pause()
	Reset()
	SwitchMode(mode model.Mode) bool
	Snapshot() session.Snapshot
}

// EventMsg carries one engine event into the update loop.
type EventMsg session.Event

type eventsClosedMsg struct{}

var modeColors = map[model.Mode]lipgloss.Color{
	model.ModeWork:       lipgloss.Color("#E53935"),
	model.ModeShortBreak: lipgloss.Color("#43A047"),
	model.ModeLongBreak:  lipgloss.Color("#1E88E5"),
}

var (
	clockStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54F"))
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
)

// Model is the root Bubble Tea model.
type Model struct {
	engine    Controller
	events    <-chan session.Event
	keys      KeyMap
	help      help.Model
	progress  progress.Model
	snapshot  session.Snapshot
	completed model.Mode
}

// New creates the terminal model over engine, reading updates from events.
func New(engine Controller, events <-chan session.Event) Model {
	bar := progress.New(progress.WithoutPercentage(), progress.WithWidth(progressWidth))
	return Model{
		engine:   engine,
		events:   events,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: bar,
		snapshot: engine.Snapshot(),
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(engine Controller, events <-chan session.Event) error {
	_, err := tea.NewProgram(New(engine, events), tea.WithAltScreen()).Run()
	return err
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.snapshot = msg.Snapshot
		switch msg.Type {
		case session.EventCompleted:
			m.completed = msg.Snapshot.Mode
		case session.EventStarted, session.EventReset, session.EventModeSwitched:
			m.completed = ""
		}
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if m.engine.Snapshot().Running {
			m.engine.Pause()
		} else {
			m.completed = ""
			m.engine.Start()
		}
	case key.Matches(msg, m.keys.Reset):
		m.completed = ""
		m.engine.Reset()
	case key.Matches(msg, m.keys.Work):
		m.switchMode(model.ModeWork)
	case key.Matches(msg, m.keys.ShortBreak):
		m.switchMode(model.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.switchMode(model.ModeLongBreak)
	default:
		return m, nil
	}
	m.snapshot = m.engine.Snapshot()
	return m, nil
}

func (m *Model) switchMode(mode model.Mode) {
	if m.engine.SwitchMode(mode) {
		m.completed = ""
	}
}

// View renders the timer.
func (m Model) View() string {
	accent := modeColors[m.snapshot.Mode]
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(m.snapshot.Mode.Title())

	clock := clockStyle
	if m.snapshot.Running {
		clock = clock.Foreground(accent)
	}

	status := "Ready"
	if m.snapshot.Running {
		status = "Running..."
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(clock.Render(m.snapshot.Clock()))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.snapshot.Progress()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	if m.completed != "" {
		b.WriteString(bannerStyle.Render(m.completed.Label() + " complete!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg(event)
	}
}

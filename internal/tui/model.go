package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wireget/wireget/internal/core"
	"github.com/wireget/wireget/internal/transport"
)

// focusField identifies which input has focus.
type focusField int

const (
	focusHost focusField = iota
	focusPath
)

// fetchResultMsg carries the outcome of an asynchronous fetch.
type fetchResultMsg struct {
	body    string
	err     error
	elapsed time.Duration
}

// Model is the Bubble Tea model
type Model struct {
	transport core.Transport

	hostInput textinput.Model
	pathInput textinput.Model
	focus     focusField

	spinner  spinner.Model
	fetching bool

	viewport  viewport.Model
	hasResult bool
	result    fetchResultMsg

	width  int
	height int
}

// NewModel creates a new TUI model with the TLS transport.
func NewModel() Model {
	return NewModelWithTransport(transport.NewTLSTransport())
}

// NewModelWithTransport creates a model with an injected transport.
// Tests pass a core.MockTransport.
func NewModelWithTransport(tr core.Transport) Model {
	host := textinput.New()
	host.Placeholder = "example.com"
	host.Prompt = "Host: "
	host.CharLimit = 253
	host.Focus()

	path := textinput.New()
	path.Placeholder = "/"
	path.Prompt = "Path: "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		transport: tr,
		hostInput: host,
		pathInput: path,
		focus:     focusHost,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// fetchCmd runs the fetch off the event loop and delivers a fetchResultMsg.
func (m Model) fetchCmd(host, path string) tea.Cmd {
	tr := m.transport
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		start := time.Now()
		fetcher := core.NewFetcher(tr)
		body, err := fetcher.Fetch(ctx, host, path)
		return fetchResultMsg{body: body, err: err, elapsed: time.Since(start)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			if !m.fetching {
				m.toggleFocus()
			}
			return m, nil
		case tea.KeyEnter:
			if !m.fetching {
				return m.startFetch()
			}
			return m, nil
		}

	case fetchResultMsg:
		m.fetching = false
		m.hasResult = true
		m.result = msg
		m.viewport.SetContent(resultContent(msg))
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// startFetch validates the inputs and kicks off the fetch command.
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	host := strings.TrimSpace(m.hostInput.Value())
	path := strings.TrimSpace(m.pathInput.Value())
	if host == "" {
		return m, nil
	}
	if path == "" {
		path = "/"
	}

	m.fetching = true
	m.hasResult = false
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(host, path))
}

func (m *Model) toggleFocus() {
	if m.focus == focusHost {
		m.focus = focusPath
		m.hostInput.Blur()
		m.pathInput.Focus()
	} else {
		m.focus = focusHost
		m.pathInput.Blur()
		m.hostInput.Focus()
	}
}

// updateFocused forwards remaining messages to the focused component.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.hasResult {
		m.viewport, cmd = m.viewport.Update(msg)
		if cmd != nil {
			return m, cmd
		}
	}
	if m.focus == focusHost {
		m.hostInput, cmd = m.hostInput.Update(msg)
	} else {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

// resultContent renders the fetch outcome for the viewport.
func resultContent(r fetchResultMsg) string {
	if r.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", r.err))
	}
	if r.body == "" {
		return labelStyle.Render("(empty response)")
	}
	return r.body
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("wireget %s - raw HTTP/1.1 fetch", Version)))
	b.WriteString("\n\n")
	b.WriteString("  " + m.hostInput.View() + "\n")
	b.WriteString("  " + m.pathInput.View() + "\n\n")

	switch {
	case m.fetching:
		b.WriteString(labelStyle.Render(m.spinner.View() + " fetching..."))
		b.WriteString("\n")
	case m.hasResult && m.result.err == nil:
		status := fmt.Sprintf("%d bytes in %s", len(m.result.body), m.result.elapsed.Round(time.Millisecond))
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
		b.WriteString(viewportStyle.Render(m.viewport.View()))
		b.WriteString("\n")
	case m.hasResult:
		b.WriteString(viewportStyle.Render(m.viewport.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: switch field | enter: fetch | esc: quit"))
	b.WriteString("\n")

	return b.String()
}

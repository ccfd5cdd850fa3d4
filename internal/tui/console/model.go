// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     console
// Description: Main Bubbletea model for the interactive script console
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cmdscript/foundation/script"
	"github.com/msto63/cmdscript/foundation/script/interp"
	"github.com/msto63/cmdscript/internal/tui"
	"github.com/msto63/cmdscript/pkg/core/version"
)

// Config holds console configuration
type Config struct {
	// Engine runs the submitted lines
	Engine *script.Engine

	// Env keeps bindings between lines (optional, defaults to a new env)
	Env *interp.Env

	// Prompt is shown in front of echoed input lines
	Prompt string

	// HistorySize limits the input history
	HistorySize int

	// HistoryFile persists the input history (optional)
	HistoryFile string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:      "> ",
		HistorySize: 100,
	}
}

// Model is the main Bubbletea model for the console
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	running bool
	cancel  context.CancelFunc
	runs    int
	last    *interp.Summary

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Session
	engine  *script.Engine
	env     *interp.Env
	prompt  string
	entries []Entry
	history *History
}

// New creates a new console model
func New(cfg Config) Model {
	defaults := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaults.HistorySize
	}
	if cfg.Env == nil {
		cfg.Env = interp.NewEnv()
	}
	if cfg.Engine == nil {
		cfg.Engine = script.NewEngine(script.Options{})
	}

	ta := textarea.New()
	ta.Placeholder = "Enter a script line (Enter to run, :help for commands)"
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.SpinnerStyle

	m := Model{
		textarea: ta,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		engine:   cfg.Engine,
		env:      cfg.Env,
		prompt:   cfg.Prompt,
		history:  NewHistory(cfg.HistorySize, cfg.HistoryFile),
	}
	m.addEntry(Entry{Kind: EntrySystem, Text: "cmdscript console v" + version.Tool + ", :help lists the console commands"})
	return m
}

// Env returns the session environment
func (m Model) Env() *interp.Env {
	return m.env
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + blank line
		footerHeight := 8 // Input + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		m.viewport.Width = msg.Width - 4
		m.viewport.Height = viewportHeight
		m.ready = true
		m.textarea.SetWidth(msg.Width - 4)
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.running {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case runDoneMsg:
		m.running = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		for _, ev := range msg.summary.Events {
			m.addEntry(Entry{Kind: EntryEvent, Text: tui.FormatEvent(ev), Event: ev})
		}
		if msg.err != nil {
			m.addEntry(Entry{Kind: EntryError, Text: msg.err.Error()})
		}
		summary := msg.summary
		m.last = &summary
		m.runs++
		m.textarea.Focus()
		m.updateViewportContent()
		m.viewport.GotoBottom()
	}

	if !m.running {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case tea.KeyEsc:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			m.addEntry(Entry{Kind: EntrySystem, Text: "cancelling run..."})
			m.updateViewportContent()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	// Input is locked while a run is in progress
	if m.running {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" {
			return m, nil
		}
		m.textarea.Reset()
		return m.submit(input)

	case tea.KeyUp:
		if line, ok := m.history.Prev(m.textarea.Value()); ok {
			m.textarea.SetValue(line)
			m.textarea.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if line, ok := m.history.Next(); ok {
			m.textarea.SetValue(line)
			m.textarea.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// submit handles one input line
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	m.history.Add(input)
	m.addEntry(Entry{Kind: EntryInput, Text: input})

	if strings.HasPrefix(input, ":") {
		quit := m.consoleCommand(input)
		m.updateViewportContent()
		m.viewport.GotoBottom()
		if quit {
			return m, tea.Quit
		}
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.textarea.Blur()
	m.updateViewportContent()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.execute(ctx, input))
}

// execute runs input in the session environment
func (m Model) execute(ctx context.Context, input string) tea.Cmd {
	engine, env := m.engine, m.env
	return func() tea.Msg {
		summary, err := engine.Execute(ctx, input, env, nil)
		return runDoneMsg{summary: summary, err: err}
	}
}

// consoleCommand handles ':' commands. It reports whether to quit.
func (m *Model) consoleCommand(input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true

	case ":help":
		m.addEntry(Entry{Kind: EntrySystem, Text: strings.Join([]string{
			":vars         list the session variables",
			":unset NAME   remove a variable",
			":reset        remove all variables",
			":clear        clear the transcript",
			":quit         leave the console",
		}, "\n")})

	case ":vars":
		names := m.env.Names()
		if len(names) == 0 {
			m.addEntry(Entry{Kind: EntrySystem, Text: "no variables set"})
			break
		}
		lines := make([]string, 0, len(names))
		for _, name := range names {
			value, _ := m.env.Get(name)
			lines = append(lines, name+" = "+tui.FormatValue(value))
		}
		m.addEntry(Entry{Kind: EntrySystem, Text: strings.Join(lines, "\n")})

	case ":unset":
		if len(fields) < 2 {
			m.addEntry(Entry{Kind: EntryError, Text: "usage: :unset NAME"})
			break
		}
		for _, name := range fields[1:] {
			m.env.Delete(name)
		}

	case ":reset":
		for _, name := range m.env.Names() {
			m.env.Delete(name)
		}
		m.addEntry(Entry{Kind: EntrySystem, Text: "variables cleared"})

	case ":clear":
		m.entries = nil

	default:
		m.addEntry(Entry{Kind: EntryError, Text: fmt.Sprintf("unknown console command %s", fields[0])})
	}
	return false
}

func (m *Model) addEntry(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	m.entries = append(m.entries, e)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading console..."
	}

	var b strings.Builder
	b.WriteString(tui.RenderTitle("cmdscript console"))
	b.WriteString("\n\n")
	b.WriteString(tui.BoxStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderInputArea())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderInputArea renders the input textarea
func (m Model) renderInputArea() string {
	if m.running {
		return tui.BoxStyle.Width(m.width - 2).Render(m.spinner.View() + tui.StatusBusyStyle.Render(" running..."))
	}
	return tui.FocusedBoxStyle.Width(m.width - 2).Render(m.textarea.View())
}

// renderStatusBar renders variables, runs and the last outcome
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("vars: %d  runs: %d", m.env.Len(), m.runs)

	var right string
	switch {
	case m.running:
		right = tui.StatusBusyStyle.Render("running")
	case m.last == nil:
		right = tui.HelpStyle.Render("ready")
	case m.last.OK():
		right = tui.StatusOKStyle.Render("ok")
	default:
		right = tui.StatusErrorStyle.Render(fmt.Sprintf("%d failed", m.last.Failed))
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 2 {
		padding = 2
	}
	return tui.StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		tui.RenderKeyHint("Enter", "run"),
		tui.RenderKeyHint("↑/↓", "history"),
		tui.RenderKeyHint("Ctrl+L", "clear"),
	}
	if m.running {
		items = append(items, tui.RenderKeyHint("Esc", "cancel"))
	} else {
		items = append(items, tui.RenderKeyHint("Esc", "quit"))
	}
	items = append(items, tui.RenderKeyHint("Ctrl+C", "quit"))
	return tui.RenderHelp(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with the transcript
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, e := range m.entries {
		switch e.Kind {
		case EntryInput:
			lines := strings.Split(e.Text, "\n")
			for i, line := range lines {
				prefix := m.prompt
				if i > 0 {
					prefix = strings.Repeat(" ", lipgloss.Width(m.prompt))
				}
				content.WriteString(tui.InputLineStyle.Render(prefix + line))
				content.WriteString("\n")
			}
		case EntryEvent:
			content.WriteString(tui.RenderEvent(e.Event))
			content.WriteString("\n")
		case EntryError:
			content.WriteString(tui.RenderError(e.Text))
			content.WriteString("\n")
		case EntrySystem:
			content.WriteString(tui.SystemMessageStyle.Render(e.Text))
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// Run starts the console TUI
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

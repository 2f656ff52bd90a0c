// Package tui is an interactive terminal view over a state container.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskmgr/internal/state"
)

// Session is the part of *state.Container the view uses.
type Session interface {
	Snapshot() state.UIState
	Subscribe() (<-chan state.UIState, func())
	Fetch()
	Add(title, description string, priority int)
	Delete(id int)
}

// snapshotMsg carries a new state snapshot into the model.
type snapshotMsg state.UIState

// closedMsg reports that the session ended.
type closedMsg struct{}

// Model renders snapshots and turns keys into intents.
type Model struct {
	session Session
	updates <-chan state.UIState
	cancel  func()

	snap   state.UIState
	cursor int
	form   *addForm
	width  int
	height int
}

// New subscribes to session. Call Close when done.
func New(session Session) Model {
	updates, cancel := session.Subscribe()
	return Model{
		session: session,
		updates: updates,
		cancel:  cancel,
		snap:    session.Snapshot(),
	}
}

// Close ends the subscription.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, session Session, in io.Reader, out io.Writer) error {
	m := New(session)
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}

func waitForSnapshot(ch <-chan state.UIState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = state.UIState(msg)
		m.clampCursor()
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "r":
		m.session.Fetch()
	case "a":
		m.form = &addForm{}
	case "d", "delete":
		if len(m.snap.Tasks) > 0 {
			m.session.Delete(m.snap.Tasks[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.form = nil
		return m, nil
	case tea.KeyEnter:
		f := m.form
		m.session.Add(f.values[fieldTitle], f.values[fieldDescription], f.priority())
		if f.valid() {
			m.form = nil
		}
		return m, nil
	}

	// Copy so earlier Model values keep their own form.
	f := *m.form
	f.input(msg)
	m.form = &f
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Tasks) {
		m.cursor = len(m.snap.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Manager"))
	b.WriteString("\n\n")

	if m.snap.HasError() {
		b.WriteString(errorStyle.Render(m.snap.Error))
		b.WriteString("\n\n")
	}

	if m.form != nil {
		b.WriteString(m.form.view())
		b.WriteString("\n")
		return b.String()
	}

	switch {
	case m.snap.Loading:
		b.WriteString(loadingStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(m.snap.Tasks) == 0:
		b.WriteString(emptyStyle.Render("No tasks. Press a to add one."))
		b.WriteString("\n")
	}

	for i, t := range m.snap.Tasks {
		cursor := "  "
		title := t.Title
		if i == m.cursor {
			cursor = "> "
			title = selected.Render(title)
		}
		chip := priorityStyle(t.Priority).Render(fmt.Sprintf("■ %2d", t.Priority))
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, chip, title)
		if t.Description != "" {
			fmt.Fprintf(&b, "         %s\n", descStyle.Render(t.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a: add • d: delete • r: refresh • j/k: move • q: quit"))
	b.WriteString("\n")
	return b.String()
}

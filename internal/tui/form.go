package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskmgr/internal/service"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Priority (1-10)"}

// addForm collects the three task fields.
type addForm struct {
	values [fieldCount]string
	focus  int
}

// priority parses the priority field; unparsable input becomes 0, which
// validation rejects.
func (f *addForm) priority() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.values[fieldPriority]))
	if err != nil {
		return 0
	}
	return n
}

func (f *addForm) valid() bool {
	return service.Validate(f.values[fieldTitle], f.values[fieldDescription], f.priority()) == nil
}

// input applies an editing key to the focused field. It reports whether
// the key was consumed.
func (f *addForm) input(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus - 1 + fieldCount) % fieldCount
	case tea.KeyBackspace:
		v := []rune(f.values[f.focus])
		if len(v) > 0 {
			f.values[f.focus] = string(v[:len(v)-1])
		}
	case tea.KeySpace:
		f.values[f.focus] += " "
	case tea.KeyRunes:
		f.values[f.focus] += string(msg.Runes)
	default:
		return false
	}
	return true
}

func (f *addForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task"))
	b.WriteString("\n\n")
	for i, label := range fieldLabels {
		cursor := "  "
		style := labelStyle
		if i == f.focus {
			cursor = "> "
			style = focusStyle
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", cursor, style.Render(label), f.values[i])
	}
	if !f.valid() {
		b.WriteString("\n")
		b.WriteString(invalidHint.Render("title and description must not be empty, priority 1-10"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field • enter: save • esc: cancel"))
	return formStyle.Render(b.String())
}

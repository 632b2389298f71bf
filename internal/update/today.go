package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Tasks.Tasks())-1 {
			m.Cursor++
		}
	case m.Keys.Toggle, " ", "x":
		m = m.toggleSelected()
	}
	return m
}

func (m Model) toggleSelected() Model {
	tasks := m.Tasks.Tasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return m
	}
	target := tasks[m.Cursor]
	if !m.Tasks.Toggle(m.ctx, target) {
		m.Status = StatusBar{Text: "task no longer in list", IsError: true}
		m.clampCursor()
		return m
	}
	verb := "completed"
	if target.IsCompleted {
		verb = "reopened"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", verb, target.Title)}
	return m
}

func (m *Model) clampCursor() {
	n := len(m.Tasks.Tasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/today/internal/commands"
	"github.com/sandeepkv93/today/internal/lifecycle"
)

func (m Model) openForm() Model {
	m.Form = AddFormState{Active: true, Field: FieldTitle}
	m.titleInput.SetValue("")
	m.timeInput.SetValue("")
	m.titleInput.Focus()
	m.timeInput.Blur()
	m.Status = StatusBar{Text: "new task"}
	return m
}

func (m Model) closeForm() Model {
	m.Form = AddFormState{}
	m.titleInput.Blur()
	m.timeInput.Blur()
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeForm()
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "tab", "shift+tab":
		if m.Form.Field == FieldTitle {
			m.Form.Field = FieldTime
			m.titleInput.Blur()
			m.timeInput.Focus()
		} else {
			m.Form.Field = FieldTitle
			m.timeInput.Blur()
			m.titleInput.Focus()
		}
		return m, nil
	case "enter":
		return m.submitForm(), nil
	}

	input := &m.titleInput
	if m.Form.Field == FieldTime {
		input = &m.timeInput
	}
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyRunes:
		input.SetValue(input.Value() + string(msg.Runes))
		input.CursorEnd()
	case tea.KeySpace:
		input.SetValue(input.Value() + " ")
		input.CursorEnd()
	default:
		*input, cmd = input.Update(msg)
	}
	return m, cmd
}

// submitForm adds the task when the title is acceptable. An invalid time
// keeps the form open so the user can fix it.
func (m Model) submitForm() Model {
	title := m.titleInput.Value()
	if !lifecycle.CanSubmit(title) {
		m.Status = StatusBar{Text: "title is required", IsError: true}
		return m
	}
	title = strings.TrimSpace(title)

	rawTime := strings.TrimSpace(m.timeInput.Value())
	if rawTime == "" {
		m.Tasks.AddTask(m.ctx, title, nil)
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", title)}
	} else {
		tm, err := commands.ParseTimeOfDay(rawTime)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		task := m.Tasks.AddTaskAt(m.ctx, title, commands.ClockIn(tm, m.Tasks.Location()))
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s until %s", title, task.ExpiresAt.In(m.Tasks.Location()).Format("15:04"))}
	}
	m = m.closeForm()
	m.Cursor = len(m.Tasks.Tasks()) - 1
	return m
}

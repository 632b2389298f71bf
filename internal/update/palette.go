package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/today/internal/commands"
	"github.com/sandeepkv93/today/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		switch msg.Type {
		case tea.KeyRunes:
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.commandInput.CursorEnd()
		case tea.KeySpace:
			m.commandInput.SetValue(m.commandInput.Value() + " ")
			m.commandInput.CursorEnd()
		default:
			m.commandInput, cmd = m.commandInput.Update(msg)
		}
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			var task model.Task
			if a.At != nil {
				task = m.Tasks.AddTaskAt(m.ctx, a.Title, commands.ClockIn(*a.At, m.Tasks.Location()))
			} else {
				task = m.Tasks.AddTask(m.ctx, a.Title, nil)
			}
			m.Cursor = len(m.Tasks.Tasks()) - 1
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Title)}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			task, err := m.Tasks.Lookup(a.Target)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if !m.Tasks.Toggle(m.ctx, task) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task no longer in list"}
			}
			return commands.Result{Message: fmt.Sprintf("toggled: %s", task.Title)}, nil
		},
		List: func() (commands.Result, error) {
			tasks := m.Tasks.Tasks()
			done := 0
			for _, t := range tasks {
				if t.IsCompleted {
					done++
				}
			}
			return commands.Result{Message: fmt.Sprintf("%d task(s), %d done", len(tasks), done)}, nil
		},
		Refresh: func() (commands.Result, error) {
			removed := m.Tasks.Refresh(m.ctx)
			return commands.Result{Message: fmt.Sprintf("refreshed, %d removed", removed)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	m.clampCursor()

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

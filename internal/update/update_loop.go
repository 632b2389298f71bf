package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/today/internal/lifecycle"
	"github.com/sandeepkv93/today/internal/views"
	"github.com/sandeepkv93/today/internal/widget"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshTickCmd(m.refreshEvery)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Add:
			return m.openForm(), nil
		case m.Keys.Refresh:
			m.Tasks.Refresh(m.ctx)
			m.clampCursor()
			m.Status = StatusBar{Text: "refreshed"}
			return m, nil
		case m.Keys.Widget:
			m.WidgetVisible = !m.WidgetVisible
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case tea.FocusMsg:
		m.Tasks.Refresh(m.ctx)
		m.clampCursor()
		return m, nil
	case RefreshTickMsg:
		m.Tasks.Refresh(m.ctx)
		m.clampCursor()
		return m, refreshTickCmd(m.refreshEvery)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case ReminderDueMsg:
		m.applyReminder(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	tasks := m.Tasks.Tasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		row := views.TaskRowData{
			Index:     i + 1,
			Title:     t.Title,
			Completed: t.IsCompleted,
			Selected:  i == m.Cursor,
		}
		if t.ExpiresAt != nil {
			row.ExpiresAt = t.ExpiresAt.In(m.Tasks.Location()).Format("15:04")
		}
		rows = append(rows, row)
	}

	form := views.RenderAddForm(views.AddFormData{
		Active:    m.Form.Active,
		TitleView: m.titleInput.View(),
		TimeView:  m.timeInput.View(),
		CanSubmit: lifecycle.CanSubmit(m.titleInput.Value()),
		Field:     int(m.Form.Field),
	})
	if palette := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input); palette != "" {
		form = palette
	}

	notification := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notification = views.RenderNotification("reminder", fmt.Sprintf("%s @ %s", last.Body, last.TriggerAt.Format("15:04")))
	}
	if m.WidgetVisible {
		s := widget.Summarize(tasks, m.Tasks.Now(), m.Tasks.Location())
		notification = joinNonEmpty(notification, views.RenderWidget(s))
	}
	if m.HelpVisible {
		notification = joinNonEmpty(notification, m.renderHelpView())
	}

	return views.RenderApp(views.AppData{
		Header:       "today | " + m.Tasks.Now().In(m.Tasks.Location()).Format("Mon Jan 2"),
		Body:         views.RenderTaskList(views.TaskListData{Rows: rows}),
		Form:         form,
		StatusLine:   status,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s add | %s/space toggle | %s refresh | %s widget | / cmd | %s help | %s quit", m.Keys.Add, m.Keys.Toggle, m.Keys.Refresh, m.Keys.Widget, m.Keys.Help, m.Keys.Quit),
	})
}

func refreshTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg { return RefreshTickMsg{At: t} })
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/today/internal/widget"
)

const (
	IconDone    = "✔"
	IconPending = "○"

	EmptyTitle = "A Fresh Start"
	EmptyBody  = "Tasks reset every day.\nAdd something to focus on today."
)

var (
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	pendingStyle  = lipgloss.NewStyle()
	doneIconStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	expiryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Align(lipgloss.Center)
	widgetStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type TaskRowData struct {
	Index     int
	Title     string
	Completed bool
	ExpiresAt string
	Selected  bool
}

type TaskListData struct {
	Rows []TaskRowData
}

type AddFormData struct {
	Active    bool
	TitleView string
	TimeView  string
	CanSubmit bool
	Field     int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func IconFor(completed bool) string {
	if completed {
		return IconDone
	}
	return IconPending
}

func ShouldStrikethrough(completed bool) bool {
	return completed
}

func RenderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	icon := IconFor(row.Completed)
	title := pendingStyle.Render(row.Title)
	if row.Completed {
		icon = doneIconStyle.Render(icon)
	}
	if ShouldStrikethrough(row.Completed) {
		title = doneStyle.Render(row.Title)
	}
	line := fmt.Sprintf("%s %2d. %s %s", cursor, row.Index, icon, title)
	if row.ExpiresAt != "" {
		line += " " + expiryStyle.Render("until "+row.ExpiresAt)
	}
	return line
}

func RenderTaskList(data TaskListData) string {
	if len(data.Rows) == 0 {
		return RenderEmptyState()
	}
	lines := make([]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		lines = append(lines, RenderTaskRow(row))
	}
	return strings.Join(lines, "\n")
}

func RenderEmptyState() string {
	return emptyStyle.Width(PanelWidth).Render(EmptyTitle + "\n\n" + EmptyBody)
}

func RenderAddForm(data AddFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString(fieldCursor(data.Field == 0) + "title: " + data.TitleView + "\n")
	b.WriteString(fieldCursor(data.Field == 1) + "until (HH:MM, optional): " + data.TimeView + "\n")
	if data.CanSubmit {
		b.WriteString("[enter] add  [tab] field  [esc] cancel")
	} else {
		b.WriteString("[tab] field  [esc] cancel")
	}
	return b.String()
}

func fieldCursor(active bool) string {
	if active {
		return "> "
	}
	return "  "
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

// RenderWidget draws the home-screen summary the same way the widget file
// stores it, inside a small box.
func RenderWidget(s widget.Summary) string {
	return widgetStyle.Render(strings.TrimSuffix(s.Text(), "\n"))
}

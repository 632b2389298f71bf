package update

import (
	"strings"
	"time"
)

const notificationLimit = 40

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
}

// notifyTitled records the notification and also sends it to the desktop
// when enabled.
func (m *Model) notifyTitled(title, body, level string) {
	m.notify(title, body, level)
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(title, body); err != nil {
			m.LastError = err
		}
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

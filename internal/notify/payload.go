// Package notify turns tasks into reminder payloads and hands them to a
// scheduler. Deriving a payload never touches the scheduler itself.
package notify

import (
	"time"

	"github.com/sandeepkv93/today/internal/model"
)

const ReminderTitle = "Task Reminder"

// DateComponents is a calendar-decomposed firing time, read in a specific
// location. Seconds are deliberately absent: reminders fire on the minute.
type DateComponents struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// In rebuilds the instant the components describe in loc.
func (c DateComponents) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, loc)
}

type Payload struct {
	Title      string
	Body       string
	Identifier string
	FireAt     DateComponents
}

// FromTask derives the reminder for task. ok is false when the task has no
// expiry. A nil loc means time.Local.
func FromTask(task model.Task, loc *time.Location) (p Payload, ok bool) {
	if task.ExpiresAt == nil {
		return Payload{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	at := task.ExpiresAt.In(loc)
	return Payload{
		Title:      ReminderTitle,
		Body:       task.Title,
		Identifier: task.Identifier(),
		FireAt: DateComponents{
			Year:   at.Year(),
			Month:  at.Month(),
			Day:    at.Day(),
			Hour:   at.Hour(),
			Minute: at.Minute(),
		},
	}, true
}

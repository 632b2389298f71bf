package lifecycle

import (
	"strings"
	"time"

	"github.com/sandeepkv93/today/internal/model"
)

// Toggle flips IsCompleted on the first task whose ID matches target.ID.
// The second result is false when no such task exists; the returned slice is
// nil in that case and tasks is left as it was.
func Toggle(target model.Task, tasks []model.Task) ([]model.Task, bool) {
	idx := -1
	for i := range tasks {
		if tasks[i].ID == target.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := cloneAll(tasks, 0)
	out[idx].IsCompleted = !out[idx].IsCompleted
	return out, true
}

// Add returns a new collection with task appended.
func Add(tasks []model.Task, task model.Task) []model.Task {
	out := cloneAll(tasks, 1)
	return append(out, task.Clone())
}

// CanSubmit reports whether title has any content once surrounding
// whitespace and newlines are trimmed.
func CanSubmit(title string) bool {
	return strings.TrimSpace(title) != ""
}

// MergeTimeOfDay puts the hour and minute of tm onto the calendar date of day,
// both read in loc, with seconds and below set to zero. A zero tm carries no
// time of day, so day is returned unchanged.
func MergeTimeOfDay(tm time.Time, loc *time.Location, day time.Time) time.Time {
	if tm.IsZero() {
		return day
	}
	if loc == nil {
		loc = time.Local
	}
	clock := tm.In(loc)
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
}

func cloneAll(tasks []model.Task, extra int) []model.Task {
	out := make([]model.Task, len(tasks), len(tasks)+extra)
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

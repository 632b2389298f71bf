// Package lifecycle holds the pure rules that decide which tasks are shown
// today and how the collection changes when the user acts on it.
//
// Every function takes "now" and the time zone explicitly and returns a new
// slice; inputs are never modified.
package lifecycle

import (
	"time"

	"github.com/sandeepkv93/today/internal/model"
)

// StartOfDay returns midnight of the calendar day containing now in loc.
// A nil loc means time.Local.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// FilterExpiredDay keeps tasks created at or after the start of now's day.
func FilterExpiredDay(tasks []model.Task, now time.Time, loc *time.Location) []model.Task {
	boundary := StartOfDay(now, loc)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CreatedAt.Before(boundary) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// FilterIndividuallyExpired keeps tasks without an expiry and tasks whose
// expiry is still strictly in the future. A task expiring exactly at now is dropped.
func FilterIndividuallyExpired(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ExpiresAt != nil && !t.ExpiresAt.After(now) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// Visible applies the day filter and then the individual expiry filter.
func Visible(tasks []model.Task, now time.Time, loc *time.Location) []model.Task {
	return FilterIndividuallyExpired(FilterExpiredDay(tasks, now, loc), now)
}

// Pending returns the incomplete tasks among those created today.
func Pending(tasks []model.Task, now time.Time, loc *time.Location) []model.Task {
	today := FilterExpiredDay(tasks, now, loc)
	out := today[:0]
	for _, t := range today {
		if !t.IsCompleted {
			out = append(out, t)
		}
	}
	return out
}

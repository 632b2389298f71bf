// Package app coordinates the pure lifecycle rules with the collaborators
// that do I/O: the store, the reminder scheduler, the widget and haptics.
package app

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/today/internal/clock"
	"github.com/sandeepkv93/today/internal/haptics"
	"github.com/sandeepkv93/today/internal/lifecycle"
	"github.com/sandeepkv93/today/internal/model"
	"github.com/sandeepkv93/today/internal/notify"
	"github.com/sandeepkv93/today/internal/storage"
	"github.com/sandeepkv93/today/internal/widget"
)

type Deps struct {
	Store     storage.Store
	Clock     clock.Clock
	Location  *time.Location
	Scheduler notify.Scheduler
	Widget    widget.Reloader
	Haptics   haptics.Feedback
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Store == nil {
		d.Store = storage.NewMemoryStore()
	}
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Scheduler == nil {
		d.Scheduler = notify.NoopScheduler{}
	}
	if d.Widget == nil {
		d.Widget = widget.NoopReloader{}
	}
	if d.Haptics == nil {
		d.Haptics = haptics.Noop{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// TaskList owns the current collection. Every change replaces the slice
// wholesale and operations run one at a time, so collaborators see saves in
// the order the changes happened. Each change starts from what the store
// holds, so other processes writing the same store are not overwritten.
type TaskList struct {
	deps Deps

	mu    sync.Mutex
	tasks []model.Task
}

// New loads the stored collection and drops everything that no longer
// belongs to today. A store that cannot be read starts the list empty.
func New(ctx context.Context, deps Deps) *TaskList {
	l := &TaskList{deps: deps.withDefaults(), tasks: []model.Task{}}
	l.Refresh(ctx)
	return l
}

func (l *TaskList) Tasks() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (l *TaskList) Location() *time.Location { return l.deps.Location }

func (l *TaskList) Now() time.Time { return l.deps.Clock.Now() }

// AddTask appends a new task created now and schedules its reminder. The
// title is stored as given; callers gate empty input with lifecycle.CanSubmit.
func (l *TaskList) AddTask(ctx context.Context, title string, expiresAt *time.Time) model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reloadLocked(ctx)
	task := model.NewTask(title, l.deps.Clock.Now(), expiresAt)
	l.tasks = lifecycle.Add(l.tasks, task)
	if err := l.deps.Scheduler.Schedule(task); err != nil {
		l.deps.Logger.Warn("schedule reminder failed", "task", task.Identifier(), "err", err)
	}
	l.persistLocked(ctx)
	l.deps.Logger.Info("task added", "task", task.Identifier(), "expires", task.HasExpiry())
	return task
}

// AddTaskAt is AddTask with the expiry built from a picked time of day on
// today's date.
func (l *TaskList) AddTaskAt(ctx context.Context, title string, timeOfDay time.Time) model.Task {
	exp := lifecycle.MergeTimeOfDay(timeOfDay, l.deps.Location, l.deps.Clock.Now())
	return l.AddTask(ctx, title, &exp)
}

// Toggle flips completion of the task with target's ID. It reports false and
// changes nothing when the task is no longer in the list.
func (l *TaskList) Toggle(ctx context.Context, target model.Task) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reloadLocked(ctx)
	next, ok := lifecycle.Toggle(target, l.tasks)
	if !ok {
		l.deps.Logger.Debug("toggle target not found", "task", target.Identifier())
		return false
	}
	l.tasks = next
	toggled := next[slices.IndexFunc(next, func(t model.Task) bool { return t.ID == target.ID })]

	l.deps.Haptics.Impact()
	if toggled.IsCompleted {
		if err := l.deps.Scheduler.Cancel(toggled); err != nil {
			l.deps.Logger.Warn("cancel reminder failed", "task", toggled.Identifier(), "err", err)
		}
	}
	l.persistLocked(ctx)
	return true
}

// ToggleByID looks the task up by id and toggles it.
func (l *TaskList) ToggleByID(ctx context.Context, id uuid.UUID) bool {
	return l.Toggle(ctx, model.Task{ID: id})
}

func (l *TaskList) RemoveExpiredDayTasks(ctx context.Context) int {
	now := l.deps.Clock.Now()
	return l.apply(ctx, func(tasks []model.Task) []model.Task {
		return lifecycle.FilterExpiredDay(tasks, now, l.deps.Location)
	})
}

func (l *TaskList) RemoveIndividuallyExpiredTasks(ctx context.Context) int {
	now := l.deps.Clock.Now()
	return l.apply(ctx, func(tasks []model.Task) []model.Task {
		return lifecycle.FilterIndividuallyExpired(tasks, now)
	})
}

// Refresh is run whenever the user comes back to the list. It picks up
// changes other writers made to the store, saves only when something was
// dropped and reports how many tasks were removed.
func (l *TaskList) Refresh(ctx context.Context) int {
	return l.RemoveExpiredDayTasks(ctx) + l.RemoveIndividuallyExpiredTasks(ctx)
}

// RestoreReminders schedules a reminder for every incomplete task with an
// expiry and reports how many were scheduled. Pending reminders live in
// process memory, so this runs once after New.
func (l *TaskList) RestoreReminders() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, t := range l.tasks {
		if t.IsCompleted || !t.HasExpiry() {
			continue
		}
		if err := l.deps.Scheduler.Schedule(t); err != nil {
			l.deps.Logger.Warn("restore reminder failed", "task", t.Identifier(), "err", err)
			continue
		}
		n++
	}
	return n
}

func (l *TaskList) apply(ctx context.Context, fn func([]model.Task) []model.Task) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reloadLocked(ctx)
	before := len(l.tasks)
	l.tasks = fn(l.tasks)
	dropped := before - len(l.tasks)
	if dropped == 0 {
		return 0
	}
	l.deps.Logger.Info("expired tasks removed", "count", dropped)
	l.persistLocked(ctx)
	return dropped
}

// reloadLocked replaces the in-memory list with the stored one. On a read
// failure the in-memory list is kept.
func (l *TaskList) reloadLocked(ctx context.Context) {
	tasks, err := l.deps.Store.Load(ctx)
	if err != nil {
		l.deps.Logger.Warn("reload tasks failed, keeping in-memory list", "err", err)
		return
	}
	l.tasks = tasks
}

// persistLocked saves the collection and refreshes the widget. Failures are
// logged; the in-memory list stays authoritative.
func (l *TaskList) persistLocked(ctx context.Context) {
	if err := l.deps.Store.Save(ctx, l.tasks); err != nil {
		l.deps.Logger.Warn("save tasks failed", "err", err)
	}
	if err := l.deps.Widget.Reload(ctx); err != nil {
		l.deps.Logger.Warn("widget reload failed", "err", err)
	}
}

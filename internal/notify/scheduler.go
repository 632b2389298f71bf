package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/today/internal/clock"
	"github.com/sandeepkv93/today/internal/model"
	"github.com/sandeepkv93/today/internal/scheduler"
)

// Scheduler is the reminder collaborator. Both operations are keyed by the
// task identifier string.
type Scheduler interface {
	Schedule(task model.Task) error
	Cancel(task model.Task) error
}

type NoopScheduler struct{}

func (NoopScheduler) Schedule(model.Task) error { return nil }
func (NoopScheduler) Cancel(model.Task) error   { return nil }

// EngineScheduler queues reminders on an in-process timer engine. Tasks
// without an expiry, or whose firing minute is not after now, are ignored.
type EngineScheduler struct {
	engine *scheduler.Engine
	clock  clock.Clock
	loc    *time.Location
}

func NewEngineScheduler(engine *scheduler.Engine, c clock.Clock, loc *time.Location) *EngineScheduler {
	if c == nil {
		c = clock.System{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &EngineScheduler{engine: engine, clock: c, loc: loc}
}

func (s *EngineScheduler) Schedule(task model.Task) error {
	p, ok := FromTask(task, s.loc)
	if !ok {
		return nil
	}
	at := p.FireAt.In(s.loc)
	if !at.After(s.clock.Now()) {
		s.engine.Cancel(p.Identifier)
		return nil
	}
	ev := scheduler.ReminderEvent{
		ID:        p.Identifier,
		Title:     p.Title,
		Body:      p.Body,
		TriggerAt: at,
	}
	if err := s.engine.Schedule(ev); err != nil {
		return fmt.Errorf("schedule reminder %s: %w", p.Identifier, err)
	}
	return nil
}

func (s *EngineScheduler) Cancel(task model.Task) error {
	s.engine.Cancel(task.Identifier())
	return nil
}

// Recorder remembers every call; tests use it as a spy.
type Recorder struct {
	mu        sync.Mutex
	loc       *time.Location
	Scheduled []Payload
	Cancelled []string
}

func NewRecorder(loc *time.Location) *Recorder {
	return &Recorder{loc: loc}
}

func (r *Recorder) Schedule(task model.Task) error {
	p, ok := FromTask(task, r.loc)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scheduled = append(r.Scheduled, p)
	return nil
}

func (r *Recorder) Cancel(task model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, task.Identifier())
	return nil
}

package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineConcurrentRescheduleKeepsOneEventPerID(t *testing.T) {
	engine := NewEngine(1024)

	const ids = 50
	const writers = 8
	base := time.Now().UTC().Add(20 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < ids; i++ {
				ev := ReminderEvent{
					ID:        fmt.Sprintf("task-%d", i),
					Title:     "Task Reminder",
					Body:      fmt.Sprintf("writer-%d", w),
					TriggerAt: base.Add(time.Duration(w) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := engine.Pending(); got != ids {
		t.Fatalf("pending = %d, want one event per id (%d)", got, ids)
	}

	engine.Start()
	defer engine.Stop()

	seen := make(map[string]int)
	deadline := time.After(5 * time.Second)
	for len(seen) < ids {
		select {
		case ev := <-engine.C():
			seen[ev.ID]++
		case <-deadline:
			t.Fatalf("timeout: received %d distinct ids of %d", len(seen), ids)
		}
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("replaced event delivered twice: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %s delivered %d times", id, n)
		}
	}
}

func TestEngineCancelRacingDelivery(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const total = 600
	now := time.Now().UTC()
	for i := 0; i < total; i++ {
		ev := ReminderEvent{
			ID:        fmt.Sprintf("r-%d", i),
			Title:     "Task Reminder",
			Body:      "race",
			TriggerAt: now.Add(time.Duration(i%30) * time.Millisecond),
		}
		if err := engine.Schedule(ev); err != nil {
			t.Fatalf("schedule failed: %v", err)
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		cancelled = make(map[string]bool)
	)
	const cancellers = 4
	wg.Add(cancellers)
	for c := 0; c < cancellers; c++ {
		go func() {
			defer wg.Done()
			for i := c; i < total; i += 2 * cancellers {
				id := fmt.Sprintf("r-%d", i)
				if engine.Cancel(id) {
					mu.Lock()
					cancelled[id] = true
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	want := total - len(cancelled)
	delivered := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(delivered) < want {
		select {
		case ev := <-engine.C():
			if cancelled[ev.ID] {
				t.Fatalf("cancelled event %s was delivered", ev.ID)
			}
			if delivered[ev.ID] {
				t.Fatalf("event %s delivered twice", ev.ID)
			}
			delivered[ev.ID] = true
		case <-deadline:
			t.Fatalf("timeout: delivered=%d want=%d dropped=%d", len(delivered), want, engine.Dropped())
		}
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

// Package widget produces the glanceable "pending today" summary. It reads
// the persisted collection on its own; nothing pushes state to it.
package widget

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/today/internal/clock"
	"github.com/sandeepkv93/today/internal/lifecycle"
	"github.com/sandeepkv93/today/internal/model"
	"github.com/sandeepkv93/today/internal/storage"
)

const (
	MaxTitles       = 3
	RefreshInterval = 15 * time.Minute
	Heading         = "Today"
	AllDoneText     = "All done 🎉"
)

type Summary struct {
	PendingCount int
	Titles       []string
}

func (s Summary) AllDone() bool { return s.PendingCount == 0 }

// Summarize counts incomplete tasks created today and keeps the first few titles.
func Summarize(tasks []model.Task, now time.Time, loc *time.Location) Summary {
	pending := lifecycle.Pending(tasks, now, loc)
	out := Summary{PendingCount: len(pending)}
	for i, t := range pending {
		if i == MaxTitles {
			break
		}
		out.Titles = append(out.Titles, t.Title)
	}
	return out
}

// Text renders the summary as plain lines for status bars and prompts.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", Heading, s.PendingCount)
	if s.AllDone() {
		b.WriteString(AllDoneText + "\n")
		return b.String()
	}
	for _, title := range s.Titles {
		b.WriteString("• " + title + "\n")
	}
	return b.String()
}

// Entry is one timeline snapshot with the instant it should be rebuilt.
type Entry struct {
	Date         time.Time
	Summary      Summary
	RefreshAfter time.Time
}

func Timeline(tasks []model.Task, now time.Time, loc *time.Location) Entry {
	return Entry{
		Date:         now,
		Summary:      Summarize(tasks, now, loc),
		RefreshAfter: now.Add(RefreshInterval),
	}
}

// Reloader asks the widget to rebuild from persisted state.
type Reloader interface {
	Reload(ctx context.Context) error
}

type NoopReloader struct{}

func (NoopReloader) Reload(context.Context) error { return nil }

// FileReloader re-reads the store and writes the rendered summary to path.
type FileReloader struct {
	store storage.Store
	clock clock.Clock
	loc   *time.Location
	path  string

	mu   sync.Mutex
	last Entry
}

func NewFileReloader(store storage.Store, c clock.Clock, loc *time.Location, path string) *FileReloader {
	return &FileReloader{store: store, clock: c, loc: loc, path: path}
}

func (r *FileReloader) Reload(ctx context.Context) error {
	tasks, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("widget: load tasks: %w", err)
	}
	entry := Timeline(tasks, r.clock.Now(), r.loc)

	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(entry.Summary.Text()), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return err
	}

	r.mu.Lock()
	r.last = entry
	r.mu.Unlock()
	return nil
}

// Last returns the most recently written entry.
func (r *FileReloader) Last() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Due reports whether the last snapshot has passed its refresh instant.
func (r *FileReloader) Due() bool {
	last := r.Last()
	return last.Date.IsZero() || !r.clock.Now().Before(last.RefreshAfter)
}

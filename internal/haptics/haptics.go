// Package haptics gives feedback when a task is toggled.
package haptics

import (
	"io"
	"sync"
)

type Feedback interface {
	Impact()
}

type Noop struct{}

func (Noop) Impact() {}

// Bell rings the terminal bell on w. Write errors are ignored; feedback is
// best effort.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Impact() {
	if b == nil || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// Counter counts impacts.
type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Impact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Progress tracks completion of parallel tasks with a counter display.
// A run is partitioned into named phases, each with its own counter.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker writing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Phase starts a named group of total tasks and resets the counter.
func (p *Progress) Phase(name string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.completed.Store(0)
	_, _ = fmt.Fprintln(p.out, TitleStyle.Render(name))
}

// Done marks one task as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "  [%d/%d] %s\n", n, p.total, label)
}

// Log prints an informational message within the current phase.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "  "+format+"\n", args...)
}

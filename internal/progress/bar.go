package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const width = 30

// Bar is a single-line progress indicator redrawn in place
type Bar struct {
	label     string
	total     int
	current   int
	out       io.Writer
	mu        sync.Mutex
	startTime time.Time
	lastDraw  time.Time
	done      bool
}

// New creates a bar on stdout
func New(label string, total int) *Bar {
	return NewWithWriter(os.Stdout, label, total)
}

// NewWithWriter creates a bar drawing to w
func NewWithWriter(w io.Writer, label string, total int) *Bar {
	now := time.Now()
	return &Bar{label: label, total: total, out: w, startTime: now, lastDraw: now}
}

// Increment advances the bar by one item, redrawing at most twice a second
func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return
	}
	b.current++

	now := time.Now()
	if now.Sub(b.lastDraw) > 500*time.Millisecond || b.current >= b.total {
		b.draw()
		b.lastDraw = now
	}
}

// Finish draws the final state and ends the line. Safe to call twice.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return
	}
	b.draw()
	fmt.Fprintln(b.out)
	b.done = true
}

func (b *Bar) draw() {
	filled, percent := 0, 100.0
	if b.total > 0 {
		filled = width * min(b.current, b.total) / b.total
		percent = float64(b.current) / float64(b.total) * 100
	}

	fmt.Fprintf(b.out, "\r%s [%s%s] %d/%d (%.0f%%) %s   ",
		b.label,
		strings.Repeat("#", filled),
		strings.Repeat("-", width-filled),
		b.current,
		b.total,
		percent,
		formatDuration(time.Since(b.startTime)),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// Package observ holds the small timing helper behind the --timings flag.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration of one pipeline step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
}

// Timer tracks the execution time of the run pipeline phases.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
}

// Summary returns a human-readable report of all tracked phases.
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&sb, "  %-12s %7.2f ms\n", p.Name, toMillis(p.Dur))
	}
	fmt.Fprintf(&sb, "  %-12s %7.2f ms\n", "total", toMillis(total))
	return sb.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

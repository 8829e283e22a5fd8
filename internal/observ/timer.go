// Package observ records phase durations for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	// Lines is the number of source lines the phase worked through; it
	// feeds the per-line figure.
	Lines int
}

// Timer collects phases. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase at idx.
func (t *Timer) End(idx int, note string) {
	t.EndLines(idx, note, 0)
}

// EndLines closes the phase at idx and records how many lines it covered.
func (t *Timer) EndLines(idx int, note string, lines int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.Lines = lines
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %10d µs", p.Name, p.Micros)
		if p.Lines > 0 {
			fmt.Fprintf(&sb, "  %8.3f µs/line", p.MicrosPerLine)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %10d µs\n", "total", report.TotalMicros)
	return sb.String()
}

// PhaseReport is the serialisable view of a Phase.
type PhaseReport struct {
	Name          string  `json:"name"`
	Micros        int64   `json:"micros"`
	Lines         int     `json:"lines,omitempty"`
	MicrosPerLine float64 `json:"micros_per_line,omitempty"`
	Note          string  `json:"note,omitempty"`
}

type Report struct {
	TotalMicros int64         `json:"total_micros"`
	Phases      []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		pr := PhaseReport{
			Name:   p.Name,
			Micros: p.Dur.Microseconds(),
			Lines:  p.Lines,
			Note:   p.Note,
		}
		if p.Lines > 0 {
			pr.MicrosPerLine = float64(p.Dur) / float64(time.Microsecond) / float64(p.Lines)
		}
		report.Phases[i] = pr
	}
	report.TotalMicros = total.Microseconds()
	return report
}

// Record appends an already measured phase, for work timed elsewhere such
// as a file processed on a worker goroutine.
func (t *Timer) Record(name string, dur time.Duration, lines int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now().Add(-dur), Dur: dur, Lines: lines, Note: note})
}

package sced

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Profiler keeps the latest duration of named scopes and a few counters
// for the frame being drawn.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	frames     int
	lastReport time.Time
	now        func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		now:        time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = p.now().Sub(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

func (p *Profiler) Reset() {
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	sb.WriteString("timings:\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		fmt.Fprintf(&sb, "  %-12s %.2f ms\n", name, ms)
	}

	sb.WriteString("counts:\n")
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-12s %d\n", k, p.Counts[k])
	}
	return sb.String()
}

// Tick counts a frame and reports whether interval has passed since the
// last report, resetting the window when it has. The returned rate is
// in frames per second.
func (p *Profiler) Tick(interval time.Duration) (fps float64, due bool) {
	now := p.now()
	p.frames++
	if p.lastReport.IsZero() {
		p.lastReport = now
		return 0, false
	}
	elapsed := now.Sub(p.lastReport)
	if elapsed < interval {
		return 0, false
	}
	fps = float64(p.frames) / elapsed.Seconds()
	p.frames = 0
	p.lastReport = now
	return fps, true
}

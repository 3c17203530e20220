package debug

import (
	"sync"
	"time"
)

// Profiler records how long named sections take. The plugin uses it to
// track the host's save routine, which blocks the host while it runs.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	now          func() time.Time
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Average returns the mean time per run.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{
		measurements: make(map[string]*Measurement),
		now:          time.Now,
	}
}

// Start begins timing name; call the returned func when the section ends.
func (p *Profiler) Start(name string) func() {
	if p == nil {
		return func() {}
	}
	start := p.now()
	return func() {
		p.Record(name, p.now().Sub(start))
	}
}

// Record adds one run of name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// Get returns a copy of the measurement for name.
func (p *Profiler) Get(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	return *m, true
}

// LogArgs renders the measurement for name as key/value pairs.
func (p *Profiler) LogArgs(name string) []interface{} {
	m, _ := p.Get(name)
	return []interface{}{
		"section", name,
		"count", m.Count,
		"avg", m.Average(),
		"min", m.Min,
		"max", m.Max,
		"last", m.Last,
	}
}

package metrics

import "github.com/san-kum/limbshift/internal/engine"

type FinalProgress struct {
	name    string
	extract func(engine.Frame) float64
	last    float64
}

func NewFinalProgress(name string, extract func(engine.Frame) float64) *FinalProgress {
	return &FinalProgress{name: name, extract: extract}
}

func (p *FinalProgress) Name() string {
	return p.name
}

func (p *FinalProgress) Observe(f engine.Frame) {
	p.last = p.extract(f)
}

func (p *FinalProgress) Value() float64 {
	return p.last
}

func (p *FinalProgress) Reset() {
	p.last = 0
}

// Monotonic is the fraction of frames whose hand progress did not fall below
// the previous frame's. An outward reach scores 1.
type Monotonic struct {
	name       string
	prev       float64
	violations int
	samples    int
}

func NewMonotonic() *Monotonic {
	return &Monotonic{name: "progress_monotonic"}
}

func (m *Monotonic) Name() string {
	return m.name
}

func (m *Monotonic) Observe(f engine.Frame) {
	if m.samples > 0 && f.HandProgress < m.prev {
		m.violations++
	}
	m.prev = f.HandProgress
	m.samples++
}

func (m *Monotonic) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *Monotonic) Reset() {
	m.prev = 0
	m.violations = 0
	m.samples = 0
}

package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/mathlens/internal/typeset"
)

// Metrics tracks rendering activity across the life of the tool.
type Metrics struct {
	documents      atomic.Uint64
	documentNs     atomic.Int64
	formulas       atomic.Uint64
	renderFailures atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordDocument records one document render pass.
func (m *Metrics) RecordDocument(duration time.Duration) {
	m.documents.Add(1)
	m.documentNs.Add(duration.Nanoseconds())
}

// RecordFormula records one formula handed to the typesetter.
func (m *Metrics) RecordFormula(failed bool) {
	m.formulas.Add(1)
	if failed {
		m.renderFailures.Add(1)
	}
}

// Snapshot is a point-in-time view of the metrics.
type Snapshot struct {
	Documents       uint64
	AvgDocumentTime time.Duration
	Formulas        uint64
	RenderFailures  uint64
	Uptime          time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() Snapshot {
	docs := m.documents.Load()
	var avg time.Duration
	if docs > 0 {
		avg = time.Duration(m.documentNs.Load() / int64(docs))
	}
	return Snapshot{
		Documents:       docs,
		AvgDocumentTime: avg,
		Formulas:        m.formulas.Load(),
		RenderFailures:  m.renderFailures.Load(),
		Uptime:          time.Since(m.startTime),
	}
}

// meteredEngine wraps a typeset engine, counting formulas and failures.
type meteredEngine struct {
	inner   typeset.Engine
	metrics *Metrics
}

func (e *meteredEngine) Render(formula string, display bool) (string, error) {
	markup, err := e.inner.Render(formula, display)
	e.metrics.RecordFormula(err != nil)
	return markup, err
}

func (e *meteredEngine) Flush() error {
	return e.inner.Flush()
}

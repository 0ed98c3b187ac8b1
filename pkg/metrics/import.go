package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records CSV import batch outcomes.
type ImportMetrics struct {
	batches *prometheus.CounterVec
	rows    *prometheus.CounterVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_batches_total",
		Help: "CSV import batches by collection and outcome.",
	}, []string{"collection", "outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "CSV import rows by collection and disposition.",
	}, []string{"collection", "disposition"})
	reg.MustRegister(batches, rows)
	return &ImportMetrics{
		batches: batches,
		rows:    rows,
	}
}

// IncBatch counts a committed or failed batch for the collection.
func (m *ImportMetrics) IncBatch(collection, outcome string) {
	if m == nil || m.batches == nil {
		return
	}
	m.batches.WithLabelValues(normalizeLabel(collection), normalizeLabel(outcome)).Inc()
}

// AddRows counts imported or skipped rows for the collection.
func (m *ImportMetrics) AddRows(collection, disposition string, n int) {
	if m == nil || m.rows == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(collection), normalizeLabel(disposition)).Add(float64(n))
}

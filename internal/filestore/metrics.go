package filestore

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts file placement outcomes. A nil *Metrics records nothing.
type Metrics struct {
	saved    prometheus.Counter
	removed  prometheus.Counter
	failures *prometheus.CounterVec
}

// NewMetrics creates and registers the file store counters.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		saved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filestore_files_saved_total",
			Help: "Total number of document files written to storage.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filestore_files_removed_total",
			Help: "Total number of document files removed from storage.",
		}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filestore_write_failures_total",
				Help: "Total number of failed storage writes by operation.",
			},
			[]string{"op"},
		),
	}

	for _, c := range []prometheus.Collector{m.saved, m.removed, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) incSaved() {
	if m != nil {
		m.saved.Inc()
	}
}

func (m *Metrics) incRemoved() {
	if m != nil {
		m.removed.Inc()
	}
}

func (m *Metrics) incFailure(op string) {
	if m != nil {
		m.failures.WithLabelValues(op).Inc()
	}
}

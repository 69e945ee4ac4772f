package esfaker

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "esfaker_"

// Metrics counts documents and bulk requests sent by a Seeder.
type Metrics struct {
	documents *prometheus.CounterVec
	batches   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricsPrefix + "documents_attempted_total",
				Help: "Number of documents submitted in bulk requests",
			},
			[]string{"collection"},
		),
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricsPrefix + "batches_total",
				Help: "Number of bulk requests by result",
			},
			[]string{"collection", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.documents, m.batches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordBatch(collection string, size int, ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.documents.WithLabelValues(collection).Add(float64(size))
	m.batches.WithLabelValues(collection, result).Inc()
}

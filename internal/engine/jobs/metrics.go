package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type kind string

const (
	kindMap  kind = "map"
	kindMesh kind = "mesh"
)

// Metrics holds dispatcher collectors. A nil *Metrics records nothing.
type Metrics struct {
	submittedTotal *prometheus.CounterVec
	completedTotal *prometheus.CounterVec
	drainedTotal   *prometheus.CounterVec
	inflight       *prometheus.GaugeVec
	build          *prometheus.HistogramVec
}

// NewMetrics creates dispatcher collectors under namespace and registers
// them with reg. A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "submitted_total",
			Help:      "Generation requests submitted, by kind.",
		}, []string{"kind"}),
		completedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "completed_total",
			Help:      "Generation requests whose result was queued, by kind.",
		}, []string{"kind"}),
		drainedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "drained_total",
			Help:      "Results delivered to the consumer, by kind.",
		}, []string{"kind"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "inflight",
			Help:      "Generation requests not yet finished, by kind.",
		}, []string{"kind"}),
		build: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "build_seconds",
			Help:      "Time spent building map data or meshes, by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.submittedTotal, m.completedTotal, m.drainedTotal, m.inflight, m.build)
	}
	return m
}

func (m *Metrics) submitted(k kind) {
	if m == nil {
		return
	}
	m.submittedTotal.WithLabelValues(string(k)).Inc()
	m.inflight.WithLabelValues(string(k)).Inc()
}

func (m *Metrics) completed(k kind) {
	if m == nil {
		return
	}
	m.completedTotal.WithLabelValues(string(k)).Inc()
	m.inflight.WithLabelValues(string(k)).Dec()
}

func (m *Metrics) drained(maps, meshes int) {
	if m == nil {
		return
	}
	m.drainedTotal.WithLabelValues(string(kindMap)).Add(float64(maps))
	m.drainedTotal.WithLabelValues(string(kindMesh)).Add(float64(meshes))
}

func (m *Metrics) observeBuild(k kind, d time.Duration) {
	if m == nil {
		return
	}
	m.build.WithLabelValues(string(k)).Observe(d.Seconds())
}

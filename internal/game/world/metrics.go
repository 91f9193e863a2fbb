package world

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds tile manager collectors. A nil *Metrics records nothing.
type Metrics struct {
	loaded       prometheus.Gauge
	visible      prometheus.Gauge
	created      prometheus.Counter
	evicted      prometheus.Counter
	stale        prometheus.Counter
	meshRequests *prometheus.CounterVec
}

// NewMetrics creates tile manager collectors under namespace and registers
// them with reg. A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "loaded",
			Help:      "Tiles currently held by the manager.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "visible",
			Help:      "Tiles currently within view distance.",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "created_total",
			Help:      "Tiles created.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "evicted_total",
			Help:      "Tiles evicted for being far from the viewer.",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "stale_results_total",
			Help:      "Results dropped because their tile was evicted.",
		}),
		meshRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tiles",
			Name:      "mesh_requests_total",
			Help:      "Mesh requests issued, by LOD level.",
		}, []string{"level"}),
	}
	if reg != nil {
		reg.MustRegister(m.loaded, m.visible, m.created, m.evicted, m.stale, m.meshRequests)
	}
	return m
}

func (m *Metrics) setCounts(loaded, visible int) {
	if m == nil {
		return
	}
	m.loaded.Set(float64(loaded))
	m.visible.Set(float64(visible))
}

func (m *Metrics) tileCreated() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) tileEvicted() {
	if m != nil {
		m.evicted.Inc()
	}
}

func (m *Metrics) staleResult() {
	if m != nil {
		m.stale.Inc()
	}
}

func (m *Metrics) meshRequested(level int) {
	if m != nil {
		m.meshRequests.WithLabelValues(strconv.Itoa(level)).Inc()
	}
}

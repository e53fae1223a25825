package execution

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics receives node lifecycle events.
type Metrics interface {
	NodeStarted(node string)
	NodeExited(node string, reason ExitReason)
	NodeFailed(node, kind string)
}

// NewMetrics returns prometheus backed metrics registered on reg, or a no-op
// implementation if reg is nil. Collectors already registered on reg by
// another App are reused.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	if reg == nil {
		return nopMetrics{}, nil
	}

	m := &promMetrics{
		running: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kflow",
			Subsystem: "node",
			Name:      "running",
			Help:      "Whether the node's goroutine is running.",
		}, []string{"node"}),
		exits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kflow",
			Subsystem: "node",
			Name:      "exits_total",
			Help:      "Node terminations by reason.",
		}, []string{"node", "reason"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kflow",
			Subsystem: "node",
			Name:      "failures_total",
			Help:      "Processing failures by kind.",
		}, []string{"node", "kind"}),
	}

	var err error
	if m.running, err = register(reg, m.running); err != nil {
		return nil, err
	}
	if m.exits, err = register(reg, m.exits); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

type promMetrics struct {
	running  *prometheus.GaugeVec
	exits    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func (m *promMetrics) NodeStarted(node string) {
	m.running.WithLabelValues(node).Set(1)
}

func (m *promMetrics) NodeExited(node string, reason ExitReason) {
	m.running.WithLabelValues(node).Set(0)
	m.exits.WithLabelValues(node, string(reason)).Inc()
}

func (m *promMetrics) NodeFailed(node, kind string) {
	m.failures.WithLabelValues(node, kind).Inc()
}

type nopMetrics struct{}

func (nopMetrics) NodeStarted(string) {}

func (nopMetrics) NodeExited(string, ExitReason) {}

func (nopMetrics) NodeFailed(string, string) {}

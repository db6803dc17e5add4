package session

import (
	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/prometheus/client_golang/prometheus"
)

const namespaceCDAP = "cdap"

// metrics holds a Manager's collectors. A nil *metrics records nothing.
type metrics struct {
	pdus     *prometheus.CounterVec
	errors   *prometheus.CounterVec
	sessions prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		pdus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceCDAP,
			Name:      "pdus_total",
			Help:      "CDAP messages sent and received, by opcode.",
		},
			[]string{"direction", "opcode"},
		),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceCDAP,
			Name:      "errors_total",
			Help:      "CDAP messages rejected by the session layer, by error kind.",
		},
			[]string{"kind"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceCDAP,
			Name:      "sessions",
			Help:      "Active CDAP sessions.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.pdus, m.errors, m.sessions)
	}
	return m
}

func direction(sent bool) string {
	if sent {
		return "tx"
	}
	return "rx"
}

func (m *metrics) pdu(op message.Opcode, sent bool) {
	if m != nil {
		m.pdus.WithLabelValues(direction(sent), op.String()).Inc()
	}
}

func (m *metrics) failed(err error) {
	if m == nil {
		return
	}
	kind := "other"
	if k, ok := cdaperr.KindOf(err); ok {
		kind = k.String()
	}
	m.errors.WithLabelValues(kind).Inc()
}

func (m *metrics) sessionAdded() {
	if m != nil {
		m.sessions.Inc()
	}
}

func (m *metrics) sessionRemoved() {
	if m != nil {
		m.sessions.Dec()
	}
}

package metrics

import (
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "brocord"

// Metrics counts gateway traffic. It satisfies gateway.Observer.
type Metrics struct {
	frames     *prometheus.CounterVec
	dispatches *prometheus.CounterVec
	heartbeats prometheus.Counter
	identifies prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		frames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "frames_received_total",
			Help:      "Inbound gateway frames by opcode",
		}, []string{"op"}),
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "dispatches_total",
			Help:      "Dispatch events by name",
		}, []string{"event"}),
		heartbeats: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "heartbeats_sent_total",
			Help:      "Heartbeats written to the gateway",
		}),
		identifies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "identifies_sent_total",
			Help:      "Identify frames written to the gateway",
		}),
	}
}

func (m *Metrics) FrameReceived(op gateway.Opcode) {
	m.frames.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) Dispatched(event string) {
	m.dispatches.WithLabelValues(event).Inc()
}

func (m *Metrics) HeartbeatSent() {
	m.heartbeats.Inc()
}

func (m *Metrics) IdentifySent() {
	m.identifies.Inc()
}

var _ gateway.Observer = (*Metrics)(nil)

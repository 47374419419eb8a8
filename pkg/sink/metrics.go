package sink

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
)

// Metrics counts everything passing through it before forwarding to next.
type Metrics struct {
	next     ports.Sink
	records  *prometheus.CounterVec
	actions  prometheus.Counter
	states   prometheus.Counter
	messages *prometheus.CounterVec
}

// NewMetrics registers the sonda counters on reg and wraps next.
// A nil next only counts.
func NewMetrics(reg prometheus.Registerer, next ports.Sink) (*Metrics, error) {
	if next == nil {
		next = Nop{}
	}
	m := &Metrics{
		next: next,
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonda_records_total",
				Help: "Stream lifecycle records emitted, by kind and severity",
			},
			[]string{"kind", "severity"},
		),
		actions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonda_actions_total",
			Help: "Dispatched actions observed",
		}),
		states: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sonda_state_changes_total",
			Help: "State snapshots observed",
		}),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sonda_messages_total",
				Help: "Plain leveled messages written, by level",
			},
			[]string{"level"},
		),
	}

	for _, c := range []prometheus.Collector{m.records, m.actions, m.states, m.messages} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register sonda metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Record(rec domain.LogRecord) {
	m.records.WithLabelValues(string(rec.Kind), rec.Severity.String()).Inc()
	Write(m.next, rec)
}

func (m *Metrics) Action(rec domain.ActionRecord) {
	m.actions.Inc()
	WriteAction(m.next, rec)
}

func (m *Metrics) StateChange(rec domain.StateRecord) {
	m.states.Inc()
	WriteState(m.next, rec)
}

func (m *Metrics) Info(msg string, args ...any) {
	m.messages.WithLabelValues(LevelInfo.String()).Inc()
	guard(func() { m.next.Info(msg, args...) })
}

func (m *Metrics) Warn(msg string, args ...any) {
	m.messages.WithLabelValues(LevelWarn.String()).Inc()
	guard(func() { m.next.Warn(msg, args...) })
}

func (m *Metrics) Error(msg string, args ...any) {
	m.messages.WithLabelValues(LevelError.String()).Inc()
	guard(func() { m.next.Error(msg, args...) })
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AttemptsTotal           *prometheus.CounterVec
	LockoutsTotal           prometheus.Counter
	LockoutSecondsRemaining prometheus.Gauge
	ConsecutiveFailures     prometheus.Gauge
	KeepAwakeSignalsTotal   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		AttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keygate_attempts_total",
			Help: "Gesture unlock attempts by result",
		}, []string{"result"}),
		LockoutsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keygate_lockouts_total",
			Help: "Total number of lockouts triggered by repeated failures",
		}),
		LockoutSecondsRemaining: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "keygate_lockout_seconds_remaining",
			Help: "Seconds remaining in the active lockout, 0 when unlocked",
		}),
		ConsecutiveFailures: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "keygate_consecutive_failures",
			Help: "Consecutive failed attempts since the last success or lockout clear",
		}),
		KeepAwakeSignalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keygate_keep_awake_signals_total",
			Help: "Throttled keep-awake signals forwarded to the power manager",
		}),
	}
}

func (m *Metrics) RecordAttempt(result string) {
	m.AttemptsTotal.WithLabelValues(result).Inc()
}

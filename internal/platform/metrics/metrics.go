package metrics

import (
	"fxpulse/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess       = "success"
	OutcomeSnapshotError = "snapshot_error"
	OutcomeFetchFailed   = "fetch_failed"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	runs          *prometheus.CounterVec
	notifications *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	lastSuccessTS prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxpulse",
			Name:      "runs_total",
			Help:      "Update runs by outcome",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fxpulse",
			Name:      "notifications_total",
			Help:      "Telegram deliveries by destination and result",
		}, []string{"destination", "result"}),
		lastPrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fxpulse",
			Name:      "last_price",
			Help:      "Last successfully fetched price",
		}, []string{"symbol"}),
		lastSuccessTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fxpulse",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}
	reg.MustRegister(m.runs, m.notifications, m.lastPrice, m.lastSuccessTS)
	return m
}

func (m *Metrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveQuotes(q domain.Quotes) {
	if m == nil {
		return
	}
	m.lastPrice.WithLabelValues(domain.PrimaryKey).Set(q.Primary)
	m.lastPrice.WithLabelValues(domain.SecondaryKey).Set(q.Secondary)
	if !q.FetchedAt.IsZero() {
		m.lastSuccessTS.Set(float64(q.FetchedAt.Unix()))
	}
}

func (m *Metrics) ObserveDelivery(report domain.DeliveryReport) {
	if m == nil {
		return
	}
	for _, res := range report.Results {
		result := "sent"
		if res.Err != nil {
			result = "failed"
		}
		m.notifications.WithLabelValues(res.Destination, result).Inc()
	}
}

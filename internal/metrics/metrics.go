package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Settlement Metrics
var (
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
		[]string{LabelGame, LabelResult},
	)

	CreditsWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCreditsWagered,
			Help: HelpTextCreditsWagered,
		},
		[]string{LabelGame},
	)

	CreditsPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCreditsPaidOut,
			Help: HelpTextCreditsPaidOut,
		},
		[]string{LabelGame},
	)

	SettlementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlementFailures,
			Help: HelpTextSettlementFailures,
		},
		[]string{LabelKind},
	)

	SettlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementDuration,
			Help:    HelpTextSettlementDuration,
			Buckets: SettlementLatencyBuckets,
		},
		[]string{LabelGame},
	)

	IdempotentReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIdempotentReplays,
			Help: HelpTextIdempotentReplays,
		},
	)
)

// Reporting Metrics
var (
	ObservedRTP = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameObservedRTP,
			Help: HelpTextObservedRTP,
		},
		[]string{LabelGame},
	)

	RTPReportsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRTPReportsCompleted,
			Help: HelpTextRTPReportsCompleted,
		},
		[]string{LabelResult},
	)
)

// SettlementRecorder publishes settlement outcomes to the package collectors
type SettlementRecorder struct{}

// NewSettlementRecorder creates a recorder backed by the default registry
func NewSettlementRecorder() *SettlementRecorder {
	return &SettlementRecorder{}
}

// ObserveSettlement records one committed settlement
func (SettlementRecorder) ObserveSettlement(game string, bet, win int64, elapsed time.Duration) {
	result := ResultLoss
	if win > 0 {
		result = ResultWin
	}
	SpinsTotal.WithLabelValues(game, result).Inc()
	CreditsWagered.WithLabelValues(game).Add(float64(bet))
	if win > 0 {
		CreditsPaidOut.WithLabelValues(game).Add(float64(win))
	}
	SettlementDuration.WithLabelValues(game).Observe(elapsed.Seconds())
}

// ObserveFailure records a settlement that returned an error
func (SettlementRecorder) ObserveFailure(kind string) {
	SettlementFailures.WithLabelValues(kind).Inc()
}

// ObserveReplay records a wager answered from the idempotency cache
func (SettlementRecorder) ObserveReplay() {
	IdempotentReplays.Inc()
}

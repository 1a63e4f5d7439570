package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Settlement metric names
const (
	MetricNameSpinsTotal          = "slots_spins_total"
	MetricNameCreditsWagered      = "slots_credits_wagered_total"
	MetricNameCreditsPaidOut      = "slots_credits_paid_out_total"
	MetricNameSettlementFailures  = "slots_settlement_failures_total"
	MetricNameSettlementDuration  = "slots_settlement_duration_seconds"
	MetricNameIdempotentReplays   = "slots_idempotent_replays_total"
	MetricNameObservedRTP         = "slots_observed_rtp_ratio"
	MetricNameRTPReportsCompleted = "slots_rtp_reports_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Settlement metric help text
const (
	HelpTextSpinsTotal          = "Total number of settled spins"
	HelpTextCreditsWagered      = "Total credits debited as bets"
	HelpTextCreditsPaidOut      = "Total credits credited as winnings"
	HelpTextSettlementFailures  = "Total number of settlements that did not complete"
	HelpTextSettlementDuration  = "Settlement latency in seconds"
	HelpTextIdempotentReplays   = "Total number of wagers answered from the idempotency cache"
	HelpTextObservedRTP         = "Paid out divided by wagered over all recorded plays"
	HelpTextRTPReportsCompleted = "Total number of RTP report runs by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelGame   = "game"
	LabelResult = "result"
	LabelKind   = "kind"
)

// Label values
const (
	ResultWin     = "win"
	ResultLoss    = "loss"
	ResultSuccess = "success"
	ResultError   = "error"

	// UnmatchedRoute labels requests that did not resolve to a chi route
	UnmatchedRoute = "unmatched"
)

// Buckets
var (
	HTTPLatencyBuckets       = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	SettlementLatencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1}
)

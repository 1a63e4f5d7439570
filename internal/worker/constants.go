package worker

import "time"

// ============================================================================
// RTP Reporter
// ============================================================================

const (
	// DefaultRTPReportSchedule runs the report every five minutes
	DefaultRTPReportSchedule = "@every 5m"

	// RTPReportTimeout bounds one aggregation query
	RTPReportTimeout = 30 * time.Second

	// MinSpinsForDriftCheck is the sample size below which observed RTP is too noisy to compare
	MinSpinsForDriftCheck = 1000

	// RTPDriftTolerance is the absolute gap between observed and target RTP that triggers a warning
	RTPDriftTolerance = "0.05"
)

// Log messages for the RTP reporter
const (
	LogMsgRTPReporterStarted  = "RTP reporter started"
	LogMsgRTPReporterStopped  = "RTP reporter stopped"
	LogMsgRTPReportCompleted  = "RTP report completed"
	LogMsgRTPReportFailed     = "RTP report failed"
	LogMsgRTPObserved         = "Observed RTP"
	LogMsgRTPDrift            = "Observed RTP drifts from target"
	LogMsgRTPReporterShutdown = "RTP reporter shutdown timeout"
)

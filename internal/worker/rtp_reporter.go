package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/osse101/SlotHouse_Go/internal/domain"
	"github.com/osse101/SlotHouse_Go/internal/logger"
	"github.com/osse101/SlotHouse_Go/internal/metrics"
)

// TotalsSource aggregates recorded plays per game
type TotalsSource interface {
	GameTotals(ctx context.Context) ([]domain.GameTotal, error)
}

// RTPReporter periodically publishes observed return-to-player per game
// and warns when a well-sampled game drifts away from its configured target.
type RTPReporter struct {
	totals    TotalsSource
	targets   map[domain.GameID]decimal.Decimal
	tolerance decimal.Decimal
	cron      *cron.Cron

	mu   sync.Mutex
	last []domain.GameTotal
}

// NewRTPReporter schedules a report using standard cron syntax or descriptors like "@every 5m".
// An empty schedule uses DefaultRTPReportSchedule.
// configs provide the target RTP per game.
func NewRTPReporter(totals TotalsSource, schedule string, configs []domain.GameConfig) (*RTPReporter, error) {
	if schedule == "" {
		schedule = DefaultRTPReportSchedule
	}

	targets := make(map[domain.GameID]decimal.Decimal, len(configs))
	for _, c := range configs {
		targets[c.ID] = c.RTP
	}

	r := &RTPReporter{
		totals:    totals,
		targets:   targets,
		tolerance: decimal.RequireFromString(RTPDriftTolerance),
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid RTP report schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins the schedule in the background
func (r *RTPReporter) Start() {
	r.cron.Start()
	logger.Info(LogMsgRTPReporterStarted)
}

func (r *RTPReporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), RTPReportTimeout)
	defer cancel()

	if _, err := r.Report(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgRTPReportFailed, "error", err)
	}
}

// Report aggregates totals once, updates the observed-RTP gauge and returns the totals
func (r *RTPReporter) Report(ctx context.Context) ([]domain.GameTotal, error) {
	log := logger.FromContext(ctx)

	totals, err := r.totals.GameTotals(ctx)
	if err != nil {
		metrics.RTPReportsCompleted.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to aggregate game totals: %w", err)
	}

	for _, t := range totals {
		observed := t.ObservedRTP()
		metrics.ObservedRTP.WithLabelValues(string(t.Game)).Set(observed.InexactFloat64())
		log.Debug(LogMsgRTPObserved, "game", t.Game, "spins", t.Spins, "rtp", observed.StringFixed(4))

		if r.Drifting(t) {
			log.Warn(LogMsgRTPDrift,
				"game", t.Game,
				"spins", t.Spins,
				"observed", observed.StringFixed(4),
				"target", r.targets[t.Game].String())
		}
	}

	r.mu.Lock()
	r.last = totals
	r.mu.Unlock()

	metrics.RTPReportsCompleted.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgRTPReportCompleted, "games", len(totals))
	return totals, nil
}

// Drifting reports whether t has enough spins and its observed RTP is outside tolerance of the target
func (r *RTPReporter) Drifting(t domain.GameTotal) bool {
	target, ok := r.targets[t.Game]
	if !ok || t.Spins < MinSpinsForDriftCheck {
		return false
	}
	return t.ObservedRTP().Sub(target).Abs().GreaterThan(r.tolerance)
}

// Last returns the totals of the most recent successful report
func (r *RTPReporter) Last() []domain.GameTotal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GameTotal(nil), r.last...)
}

// Shutdown stops scheduling and waits for a running report
func (r *RTPReporter) Shutdown(ctx context.Context) error {
	stopped := r.cron.Stop()

	select {
	case <-stopped.Done():
		logger.Info(LogMsgRTPReporterStopped)
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgRTPReporterShutdown)
		return ctx.Err()
	}
}

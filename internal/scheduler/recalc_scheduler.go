package scheduler

import (
	"context"
	"time"

	"log/slog"

	"github.com/verilink/verilink/internal/config"
	"github.com/verilink/verilink/internal/metrics"
	"github.com/verilink/verilink/internal/models"
)

// StaleScoreClaimer picks profiles whose trust score has gone stale and marks
// them claimed so concurrent schedulers skip them.
type StaleScoreClaimer interface {
	ClaimStale(ctx context.Context, staleAfter time.Duration, limit int) ([]string, error)
}

// ScoreCalculator recomputes a profile's trust score.
type ScoreCalculator interface {
	Calculate(ctx context.Context, profileID string) (*models.TrustScore, error)
}

// RecalcScheduler periodically recomputes trust scores that have gone stale
type RecalcScheduler struct {
	claimer    StaleScoreClaimer
	calculator ScoreCalculator
	collector  *metrics.Collector
	logger     *slog.Logger
	stopChan   chan struct{}

	checkInterval time.Duration
	staleAfter    time.Duration
	batchSize     int
}

// NewRecalcScheduler creates a new recalculation scheduler
func NewRecalcScheduler(claimer StaleScoreClaimer, calculator ScoreCalculator, collector *metrics.Collector, cfg config.SchedulerConfig, logger *slog.Logger) *RecalcScheduler {
	return &RecalcScheduler{
		claimer:       claimer,
		calculator:    calculator,
		collector:     collector,
		logger:        logger,
		stopChan:      make(chan struct{}),
		checkInterval: cfg.CheckInterval,
		staleAfter:    cfg.StaleAfter,
		batchSize:     cfg.BatchSize,
	}
}

// Start begins the scheduler loop
func (s *RecalcScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting trust score recalculation scheduler",
		"check_interval", s.checkInterval,
		"stale_after", s.staleAfter,
		"batch_size", s.batchSize,
	)
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Run once immediately on start
	s.recalculateStale(ctx)

	for {
		select {
		case <-ticker.C:
			s.recalculateStale(ctx)
		case <-s.stopChan:
			s.logger.Info("Recalculation scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Recalculation scheduler stopping due to context cancellation")
			return
		}
	}
}

// Stop stops the scheduler
func (s *RecalcScheduler) Stop() {
	close(s.stopChan)
}

// recalculateStale claims a batch of stale scores and recomputes them
func (s *RecalcScheduler) recalculateStale(ctx context.Context) {
	profileIDs, err := s.claimer.ClaimStale(ctx, s.staleAfter, s.batchSize)
	if err != nil {
		s.logger.Error("Failed to claim stale trust scores", "error", err)
		return
	}

	if len(profileIDs) == 0 {
		s.logger.Debug("No stale trust scores found")
		return
	}

	s.logger.Info("Recalculating stale trust scores", "count", len(profileIDs))

	for _, profileID := range profileIDs {
		start := time.Now()
		score, err := s.calculator.Calculate(ctx, profileID)

		if s.collector != nil {
			outcome := metrics.OutcomeSuccess
			if err != nil {
				outcome = metrics.OutcomeError
			}
			s.collector.ObserveComputation(outcome, time.Since(start))
		}

		if err != nil {
			s.logger.Error("Failed to recalculate trust score",
				"profile_id", profileID,
				"error", err,
			)
			continue
		}

		s.logger.Info("Trust score recalculated",
			"profile_id", profileID,
			"score", score.OverallScore,
		)
	}
}

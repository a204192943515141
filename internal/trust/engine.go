package trust

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/verilink/verilink/internal/models"
)

// ProfileReader supplies the profile record under scoring.
type ProfileReader interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// VerificationReader supplies a profile's verification records, oldest first.
type VerificationReader interface {
	ListByProfile(ctx context.Context, profileID string) ([]models.Verification, error)
}

// EndorsementReader supplies the endorsements a profile has received.
type EndorsementReader interface {
	ListByEndorsed(ctx context.Context, endorsedID string) ([]models.Endorsement, error)
}

// TrustScoreWriter persists a computed score. Write failures are best-effort:
// the engine logs them and still returns the computed score.
type TrustScoreWriter interface {
	Upsert(ctx context.Context, score *models.TrustScore) error
}

// ConnectionScorer derives the social_connections sub-metric (0-100).
// The platform has no connections graph yet, so the default returns 0.
type ConnectionScorer interface {
	Score(ctx context.Context, profileID string) (int, error)
}

type nullConnectionScorer struct{}

func (nullConnectionScorer) Score(context.Context, string) (int, error) {
	return 0, nil
}

// Engine computes trust scores. The computation is a pure function of the
// fetched records and the engine's clock; only the final upsert has effects.
type Engine struct {
	profiles      ProfileReader
	verifications VerificationReader
	endorsements  EndorsementReader
	writer        TrustScoreWriter
	connections   ConnectionScorer
	criteria      CriteriaEvaluator
	weights       FactorWeights
	logger        *slog.Logger
	now           func() time.Time
}

// NewEngine creates a trust score engine with default weights, the
// score-threshold badge evaluator and the null connection scorer.
func NewEngine(profiles ProfileReader, verifications VerificationReader, endorsements EndorsementReader, writer TrustScoreWriter, logger *slog.Logger) *Engine {
	return &Engine{
		profiles:      profiles,
		verifications: verifications,
		endorsements:  endorsements,
		writer:        writer,
		connections:   nullConnectionScorer{},
		criteria:      scoreThresholdEvaluator{},
		weights:       DefaultFactorWeights(),
		logger:        logger,
		now:           time.Now,
	}
}

// SetConnectionScorer replaces the social connections strategy.
func (e *Engine) SetConnectionScorer(scorer ConnectionScorer) {
	e.connections = scorer
}

// SetCriteriaEvaluator replaces the badge criteria strategy.
func (e *Engine) SetCriteriaEvaluator(eval CriteriaEvaluator) {
	e.criteria = eval
}

// Calculate computes and persists the trust score for a profile. The
// persistence write is fire-and-forget: a failed upsert is logged and the
// computed score is returned regardless. A missing profile is an error.
func (e *Engine) Calculate(ctx context.Context, profileID string) (*models.TrustScore, error) {
	profile, err := e.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileID)
	}

	verifications, err := e.verifications.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get verifications: %w", err)
	}

	endorsements, err := e.endorsements.ListByEndorsed(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get endorsements: %w", err)
	}

	socialScore, err := e.connections.Score(ctx, profileID)
	if err != nil {
		e.logger.Warn("connection scoring failed, defaulting to 0",
			"profile_id", profileID,
			"error", err)
		socialScore = 0
	}

	now := e.now()
	factors := computeFactors(*profile, verifications, endorsements, socialScore, now)
	overall := overallScore(factors, e.weights)

	score := &models.TrustScore{
		ID:           uuid.New().String(),
		ProfileID:    profileID,
		OverallScore: overall,
		Factors:      factors,
		Badges:       evaluateBadges(Catalog(), overall, factors, now, e.criteria),
		Suggestions:  generateSuggestions(factors),
		History: []models.HistoryEntry{{
			Timestamp: now,
			Score:     overall,
			Factors:   factors,
			Reason:    "Score calculated",
		}},
		UpdatedAt: now,
	}

	if err := e.writer.Upsert(ctx, score); err != nil {
		e.logger.Error("failed to persist trust score",
			"profile_id", profileID,
			"score", overall,
			"error", err)
	}

	return score, nil
}

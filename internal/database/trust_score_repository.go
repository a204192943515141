package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verilink/verilink/internal/models"
)

// TrustScoreRepository handles trust score database operations
type TrustScoreRepository struct {
	db *sql.DB
}

// NewTrustScoreRepository creates a new trust score repository
func NewTrustScoreRepository(db *sql.DB) *TrustScoreRepository {
	return &TrustScoreRepository{db: db}
}

// Upsert stores a computed trust score. There is one row per profile; the
// factors, badges and suggestions columns are replaced while the history
// entries are appended to the existing jsonb array in the same statement, so
// concurrent computations cannot drop each other's history.
func (r *TrustScoreRepository) Upsert(ctx context.Context, score *models.TrustScore) error {
	factors, err := json.Marshal(score.Factors)
	if err != nil {
		return fmt.Errorf("failed to marshal factors: %w", err)
	}
	badges, err := marshalList(score.Badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}
	suggestions, err := marshalList(score.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	history, err := marshalList(score.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := `
		INSERT INTO trust_scores (id, profile_id, overall_score, factors, badges, suggestions, history, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (profile_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			factors = EXCLUDED.factors,
			badges = EXCLUDED.badges,
			suggestions = EXCLUDED.suggestions,
			history = trust_scores.history || EXCLUDED.history,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		score.ID, score.ProfileID, score.OverallScore,
		factors, badges, suggestions, history, score.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert trust score: %w", err)
	}

	return nil
}

// Get retrieves the trust score for a profile. Returns nil, nil when the
// profile has no stored score yet.
func (r *TrustScoreRepository) Get(ctx context.Context, profileID string) (*models.TrustScore, error) {
	query := `
		SELECT id, profile_id, overall_score, factors, badges, suggestions, history, updated_at
		FROM trust_scores
		WHERE profile_id = $1
	`

	var (
		score       models.TrustScore
		factors     []byte
		badges      []byte
		suggestions []byte
		history     []byte
	)
	err := r.db.QueryRowContext(ctx, query, profileID).Scan(
		&score.ID, &score.ProfileID, &score.OverallScore,
		&factors, &badges, &suggestions, &history, &score.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trust score: %w", err)
	}

	if err := json.Unmarshal(factors, &score.Factors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal factors: %w", err)
	}
	if err := json.Unmarshal(badges, &score.Badges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
	}
	if err := json.Unmarshal(suggestions, &score.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}
	if err := json.Unmarshal(history, &score.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return &score, nil
}

// GetHistory retrieves just the history entries for a profile, oldest first.
// Returns nil when the profile has no stored score.
func (r *TrustScoreRepository) GetHistory(ctx context.Context, profileID string) ([]models.HistoryEntry, error) {
	query := `SELECT history FROM trust_scores WHERE profile_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, profileID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trust score history: %w", err)
	}

	var history []models.HistoryEntry
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return history, nil
}

// ClaimStale picks up to limit profiles whose stored score is older than
// staleAfter and bumps their updated_at so concurrent schedulers do not pick
// the same rows. Rows locked by another transaction are skipped.
func (r *TrustScoreRepository) ClaimStale(ctx context.Context, staleAfter time.Duration, limit int) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE trust_scores
		SET updated_at = NOW()
		WHERE profile_id IN (
			SELECT profile_id FROM trust_scores
			WHERE updated_at < $1
			ORDER BY updated_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING profile_id
	`

	cutoff := time.Now().Add(-staleAfter)
	rows, err := tx.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim stale trust scores: %w", err)
	}
	defer rows.Close()

	var profileIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan profile id: %w", err)
		}
		profileIDs = append(profileIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claimed profiles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}

	return profileIDs, nil
}

// marshalList marshals a slice to jsonb, mapping nil to an empty array so
// jsonb concatenation never sees NULL.
func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(list)
}

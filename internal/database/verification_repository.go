package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verilink/verilink/internal/models"
)

// VerificationRepository handles verification database operations
type VerificationRepository struct {
	db *sql.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *sql.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// ListByProfile returns all verifications for a profile, oldest first.
func (r *VerificationRepository) ListByProfile(ctx context.Context, profileID string) ([]models.Verification, error) {
	query := `
		SELECT id, profile_id, status, quality_score, evidence_quality, method_quality, confidence_level, completeness, created_at
		FROM verifications
		WHERE profile_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	defer rows.Close()

	var verifications []models.Verification
	for rows.Next() {
		var v models.Verification
		err := rows.Scan(
			&v.ID, &v.ProfileID, &v.Status, &v.QualityScore, &v.EvidenceQuality,
			&v.MethodQuality, &v.ConfidenceLevel, &v.Completeness, &v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verification: %w", err)
		}
		verifications = append(verifications, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verifications: %w", err)
	}

	return verifications, nil
}

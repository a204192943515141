package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verilink/verilink/internal/models"
)

// EndorsementRepository handles endorsement database operations
type EndorsementRepository struct {
	db *sql.DB
}

// NewEndorsementRepository creates a new endorsement repository
func NewEndorsementRepository(db *sql.DB) *EndorsementRepository {
	return &EndorsementRepository{db: db}
}

// ListByEndorsed returns all endorsements received by a profile.
func (r *EndorsementRepository) ListByEndorsed(ctx context.Context, endorsedID string) ([]models.Endorsement, error) {
	query := `
		SELECT id, endorsed_id, endorser_id, quality_score, created_at
		FROM endorsements
		WHERE endorsed_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, endorsedID)
	if err != nil {
		return nil, fmt.Errorf("failed to list endorsements: %w", err)
	}
	defer rows.Close()

	var endorsements []models.Endorsement
	for rows.Next() {
		var e models.Endorsement
		if err := rows.Scan(&e.ID, &e.EndorsedID, &e.EndorserID, &e.QualityScore, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan endorsement: %w", err)
		}
		endorsements = append(endorsements, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate endorsements: %w", err)
	}

	return endorsements, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verilink/verilink/internal/models"
)

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves a profile by ID. Returns nil, nil when not found.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, name, email, bio, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Bio, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

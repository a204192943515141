package models

import (
	"time"
)

// Profile represents a platform member whose work history is being verified.
// Optional text fields are empty strings when the member has not filled them in.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Verification represents one verification request raised against a profile's
// timeline entry. The quality sub-scores are on a 0-100 scale; a sub-score the
// verifier never filled in is stored as 0 and treated as 0 everywhere.
type Verification struct {
	ID              string             `json:"id"`
	ProfileID       string             `json:"profile_id"`
	Status          VerificationStatus `json:"status"`
	QualityScore    float64            `json:"quality_score"`
	EvidenceQuality float64            `json:"evidence_quality"`
	MethodQuality   float64            `json:"method_quality"`
	ConfidenceLevel float64            `json:"confidence_level"`
	Completeness    float64            `json:"completeness"`
	CreatedAt       time.Time          `json:"created_at"`
}

// VerificationStatus represents the lifecycle state of a verification request.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Endorsement represents a peer vouching for a profile. QualityScore is 0-100
// and defaults to 0 when the endorser gave no rating.
type Endorsement struct {
	ID           string    `json:"id"`
	EndorsedID   string    `json:"endorsed_id"`
	EndorserID   string    `json:"endorser_id"`
	QualityScore float64   `json:"quality_score"`
	CreatedAt    time.Time `json:"created_at"`
}

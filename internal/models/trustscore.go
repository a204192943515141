package models

import (
	"time"
)

// TrustScore is the computed trust artifact for a profile. There is one live
// instance per profile; every computation overwrites the factors, badges and
// suggestions and appends exactly one history entry.
type TrustScore struct {
	ID           string            `json:"id"`
	ProfileID    string            `json:"profile_id"`
	OverallScore int               `json:"overall_score"`
	Factors      TrustScoreFactors `json:"factors"`
	Badges       []Badge           `json:"badges"`
	History      []HistoryEntry    `json:"history"`
	Suggestions  []Suggestion      `json:"suggestions"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TrustScoreFactors groups the sixteen sub-metrics into four categories.
// Every sub-metric is an integer in [0, 100].
type TrustScoreFactors struct {
	VerificationQuality VerificationQualityFactors `json:"verification_quality"`
	ProfileCredibility  ProfileCredibilityFactors  `json:"profile_credibility"`
	PeerEndorsements    PeerEndorsementFactors     `json:"peer_endorsements"`
	VerificationHistory VerificationHistoryFactors `json:"verification_history"`
}

// VerificationQualityFactors score the most recent verifications.
type VerificationQualityFactors struct {
	EvidenceQuality    int `json:"evidence_quality"`
	VerificationMethod int `json:"verification_method"`
	ConfidenceLevel    int `json:"confidence_level"`
	Completeness       int `json:"completeness"`
}

// ProfileCredibilityFactors score the profile itself.
type ProfileCredibilityFactors struct {
	ProfileCompleteness int `json:"profile_completeness"`
	AccountAge          int `json:"account_age"`
	VerificationHistory int `json:"verification_history"`
	SocialConnections   int `json:"social_connections"`
}

// PeerEndorsementFactors score endorsements received from other members.
type PeerEndorsementFactors struct {
	EndorsementCount     int `json:"endorsement_count"`
	EndorsementQuality   int `json:"endorsement_quality"`
	EndorsementDiversity int `json:"endorsement_diversity"`
	EndorsementRecency   int `json:"endorsement_recency"`
}

// VerificationHistoryFactors score the full verification record set.
type VerificationHistoryFactors struct {
	TotalVerifications int `json:"total_verifications"`
	SuccessRate        int `json:"success_rate"`
	AverageQuality     int `json:"average_quality"`
	ConsistencyScore   int `json:"consistency_score"`
}

// Badge is an awarded badge instance. AwardedAt reflects the latest
// qualifying computation, not the first time the badge was earned.
type Badge struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Level     int           `json:"level"`
	Criteria  BadgeCriteria `json:"criteria"`
	AwardedAt time.Time     `json:"awarded_at"`
}

// BadgeDefinition is a static catalog entry describing a badge and its levels.
type BadgeDefinition struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Levels      []BadgeLevel `json:"levels"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
}

// BadgeLevel is one tier of a badge. MinScore gates the award; the remaining
// criteria document the tier and are only enforced by a CriteriaEvaluator
// configured to check them.
type BadgeLevel struct {
	Level    int           `json:"level"`
	MinScore int           `json:"min_score"`
	Criteria BadgeCriteria `json:"criteria"`
	Benefits []string      `json:"benefits"`
}

// BadgeCriteria captures the non-score requirements attached to a badge level.
// Zero values mean the requirement is absent.
type BadgeCriteria struct {
	VerificationCount int `json:"verification_count,omitempty"`
	EndorsementCount  int `json:"endorsement_count,omitempty"`
	SuccessRate       int `json:"success_rate,omitempty"`
}

// HistoryEntry is one append-only record of a trust score computation.
type HistoryEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Score     int               `json:"score"`
	Factors   TrustScoreFactors `json:"factors"`
	Reason    string            `json:"reason"`
}

// Suggestion is a single improvement item generated for a sub-metric below
// target. Factor is a dotted "category.subfactor" path.
type Suggestion struct {
	Factor       string             `json:"factor"`
	CurrentValue int                `json:"current_value"`
	TargetValue  int                `json:"target_value"`
	Improvement  string             `json:"improvement"`
	Priority     SuggestionPriority `json:"priority"`
}

// SuggestionPriority ranks how urgently a suggestion should be acted on.
type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "low"
	PriorityMedium SuggestionPriority = "medium"
	PriorityHigh   SuggestionPriority = "high"
)

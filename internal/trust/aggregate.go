package trust

import (
	"github.com/verilink/verilink/internal/models"
)

// FactorWeights holds the per-category weights applied to the category means.
// The four weights must sum to 1.
type FactorWeights struct {
	VerificationQuality float64
	ProfileCredibility  float64
	PeerEndorsements    float64
	VerificationHistory float64
}

// DefaultFactorWeights returns the production weighting: verification quality
// dominates, profile credibility second, endorsements and history equal.
func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		VerificationQuality: 0.35,
		ProfileCredibility:  0.25,
		PeerEndorsements:    0.20,
		VerificationHistory: 0.20,
	}
}

// subFactorWeights documents the intended relative importance of each
// sub-metric within its category. The aggregation below deliberately uses
// unweighted category means; this table is the reference point if graded
// per-sub-metric weighting is ever turned on. Do not apply it in overallScore
// without removing the plain means first.
var subFactorWeights = map[string]map[string]float64{
	categoryVerificationQuality: {
		"evidence_quality":    0.30,
		"verification_method": 0.25,
		"confidence_level":    0.25,
		"completeness":        0.20,
	},
	categoryProfileCredibility: {
		"profile_completeness": 0.30,
		"account_age":          0.20,
		"verification_history": 0.35,
		"social_connections":   0.15,
	},
	categoryPeerEndorsements: {
		"endorsement_count":     0.25,
		"endorsement_quality":   0.35,
		"endorsement_diversity": 0.20,
		"endorsement_recency":   0.20,
	},
	categoryVerificationHistory: {
		"total_verifications": 0.20,
		"success_rate":        0.35,
		"average_quality":     0.30,
		"consistency_score":   0.15,
	},
}

// overallScore combines the four category means into one 0-100 integer using
// the category weights. Each category mean is already in [0, 100], so the
// weighted sum needs no extra clamping.
func overallScore(f models.TrustScoreFactors, w FactorWeights) int {
	vq := f.VerificationQuality
	pc := f.ProfileCredibility
	pe := f.PeerEndorsements
	vh := f.VerificationHistory

	weighted := w.VerificationQuality*mean4(vq.EvidenceQuality, vq.VerificationMethod, vq.ConfidenceLevel, vq.Completeness) +
		w.ProfileCredibility*mean4(pc.ProfileCompleteness, pc.AccountAge, pc.VerificationHistory, pc.SocialConnections) +
		w.PeerEndorsements*mean4(pe.EndorsementCount, pe.EndorsementQuality, pe.EndorsementDiversity, pe.EndorsementRecency) +
		w.VerificationHistory*mean4(vh.TotalVerifications, vh.SuccessRate, vh.AverageQuality, vh.ConsistencyScore)

	return roundScore(weighted)
}

func mean4(a, b, c, d int) float64 {
	return float64(a+b+c+d) / 4
}

// Category names as they appear in dotted factor paths and JSON.
const (
	categoryVerificationQuality = "verification_quality"
	categoryProfileCredibility  = "profile_credibility"
	categoryPeerEndorsements    = "peer_endorsements"
	categoryVerificationHistory = "verification_history"
)

// subMetricValue is one (category, subfactor, value) triple. subMetricValues
// returns them in a fixed order so suggestion output is stable across runs.
type subMetricValue struct {
	category string
	name     string
	value    int
}

func subMetricValues(f models.TrustScoreFactors) []subMetricValue {
	vq := f.VerificationQuality
	pc := f.ProfileCredibility
	pe := f.PeerEndorsements
	vh := f.VerificationHistory

	return []subMetricValue{
		{categoryVerificationQuality, "evidence_quality", vq.EvidenceQuality},
		{categoryVerificationQuality, "verification_method", vq.VerificationMethod},
		{categoryVerificationQuality, "confidence_level", vq.ConfidenceLevel},
		{categoryVerificationQuality, "completeness", vq.Completeness},
		{categoryProfileCredibility, "profile_completeness", pc.ProfileCompleteness},
		{categoryProfileCredibility, "account_age", pc.AccountAge},
		{categoryProfileCredibility, "verification_history", pc.VerificationHistory},
		{categoryProfileCredibility, "social_connections", pc.SocialConnections},
		{categoryPeerEndorsements, "endorsement_count", pe.EndorsementCount},
		{categoryPeerEndorsements, "endorsement_quality", pe.EndorsementQuality},
		{categoryPeerEndorsements, "endorsement_diversity", pe.EndorsementDiversity},
		{categoryPeerEndorsements, "endorsement_recency", pe.EndorsementRecency},
		{categoryVerificationHistory, "total_verifications", vh.TotalVerifications},
		{categoryVerificationHistory, "success_rate", vh.SuccessRate},
		{categoryVerificationHistory, "average_quality", vh.AverageQuality},
		{categoryVerificationHistory, "consistency_score", vh.ConsistencyScore},
	}
}

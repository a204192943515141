package trust

import (
	"math"
	"time"

	"github.com/verilink/verilink/internal/models"
)

const (
	// Only the most recent verifications count towards verification quality.
	// Callers supply records oldest-first, so the window is the tail slice.
	recentVerificationWindow = 5

	// Endorsements older than this no longer count as recent.
	endorsementRecencyWindow = 30 * 24 * time.Hour

	// Count sub-metrics are scaled linearly so that ten endorsements or
	// twenty verifications saturate the sub-metric at 100. This keeps every
	// sub-metric on the same 0-100 scale as the percentage metrics.
	endorsementCountTarget  = 10
	verificationCountTarget = 20
)

// computeFactors reduces the raw records for one profile into the four factor
// categories. socialScore comes from the pluggable ConnectionScorer.
func computeFactors(profile models.Profile, verifications []models.Verification, endorsements []models.Endorsement, socialScore int, now time.Time) models.TrustScoreFactors {
	return models.TrustScoreFactors{
		VerificationQuality: verificationQuality(verifications),
		ProfileCredibility:  profileCredibility(profile, verifications, socialScore, now),
		PeerEndorsements:    peerEndorsements(endorsements, now),
		VerificationHistory: verificationHistory(verifications),
	}
}

// verificationQuality averages the quality sub-scores over the most recent
// verifications. Missing sub-scores are zero, so a sparse record drags the
// average down rather than being skipped.
func verificationQuality(records []models.Verification) models.VerificationQualityFactors {
	if len(records) == 0 {
		return models.VerificationQualityFactors{}
	}

	recent := records
	if len(recent) > recentVerificationWindow {
		recent = recent[len(recent)-recentVerificationWindow:]
	}

	var evidence, method, confidence, completeness float64
	for _, v := range recent {
		evidence += v.EvidenceQuality
		method += v.MethodQuality
		confidence += v.ConfidenceLevel
		completeness += v.Completeness
	}

	n := float64(len(recent))
	return models.VerificationQualityFactors{
		EvidenceQuality:    roundScore(evidence / n),
		VerificationMethod: roundScore(method / n),
		ConfidenceLevel:    roundScore(confidence / n),
		Completeness:       roundScore(completeness / n),
	}
}

// profileCredibility scores the profile record itself plus its verified ratio.
func profileCredibility(profile models.Profile, verifications []models.Verification, socialScore int, now time.Time) models.ProfileCredibilityFactors {
	required := []string{profile.Name, profile.Email, profile.Bio, profile.AvatarURL}
	filled := 0
	for _, field := range required {
		if field != "" {
			filled++
		}
	}

	ageDays := int(now.Sub(profile.CreatedAt).Hours() / 24)
	if ageDays < 0 {
		ageDays = 0
	}
	if ageDays > 100 {
		ageDays = 100 // Saturates; long-lived accounts all max out.
	}

	verified := 0
	for _, v := range verifications {
		if v.Status == models.VerificationStatusVerified {
			verified++
		}
	}
	history := 0
	if len(verifications) > 0 {
		history = roundScore(float64(verified) / float64(len(verifications)) * 100)
	}

	return models.ProfileCredibilityFactors{
		ProfileCompleteness: roundScore(float64(filled) / float64(len(required)) * 100),
		AccountAge:          ageDays,
		VerificationHistory: history,
		SocialConnections:   clampScore(socialScore),
	}
}

// peerEndorsements scores the endorsements a profile has received.
func peerEndorsements(endorsements []models.Endorsement, now time.Time) models.PeerEndorsementFactors {
	if len(endorsements) == 0 {
		return models.PeerEndorsementFactors{}
	}

	total := float64(len(endorsements))
	endorsers := make(map[string]struct{}, len(endorsements))

	var quality float64
	recent := 0
	for _, e := range endorsements {
		quality += e.QualityScore
		endorsers[e.EndorserID] = struct{}{}
		if now.Sub(e.CreatedAt) <= endorsementRecencyWindow {
			recent++
		}
	}

	return models.PeerEndorsementFactors{
		EndorsementCount:     normalizeCount(len(endorsements), endorsementCountTarget),
		EndorsementQuality:   roundScore(quality / total),
		EndorsementDiversity: roundScore(float64(len(endorsers)) / total * 100),
		EndorsementRecency:   roundScore(float64(recent) / total * 100),
	}
}

// verificationHistory scores the full verification record set. The
// consistency score penalizes verifiers whose quality swings: population
// variance of quality_score, scaled by 10 and subtracted from 100.
func verificationHistory(records []models.Verification) models.VerificationHistoryFactors {
	if len(records) == 0 {
		return models.VerificationHistoryFactors{}
	}

	total := float64(len(records))
	verified := 0
	var qualitySum float64
	for _, v := range records {
		if v.Status == models.VerificationStatusVerified {
			verified++
		}
		qualitySum += v.QualityScore
	}

	mean := qualitySum / total
	var variance float64
	for _, v := range records {
		d := v.QualityScore - mean
		variance += d * d
	}
	variance /= total

	penalty := math.Min(variance*10, 100)

	return models.VerificationHistoryFactors{
		TotalVerifications: normalizeCount(len(records), verificationCountTarget),
		SuccessRate:        roundScore(float64(verified) / total * 100),
		AverageQuality:     roundScore(mean),
		ConsistencyScore:   roundScore(100 - penalty),
	}
}

func normalizeCount(count, target int) int {
	if count >= target {
		return 100
	}
	return roundScore(float64(count) / float64(target) * 100)
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

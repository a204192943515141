package trust

import (
	"math"
	"testing"

	"github.com/verilink/verilink/internal/models"
)

// factorsFromValues builds a TrustScoreFactors from sixteen values in the
// same order subMetricValues reports them.
func factorsFromValues(v [16]int) models.TrustScoreFactors {
	return models.TrustScoreFactors{
		VerificationQuality: models.VerificationQualityFactors{
			EvidenceQuality: v[0], VerificationMethod: v[1], ConfidenceLevel: v[2], Completeness: v[3],
		},
		ProfileCredibility: models.ProfileCredibilityFactors{
			ProfileCompleteness: v[4], AccountAge: v[5], VerificationHistory: v[6], SocialConnections: v[7],
		},
		PeerEndorsements: models.PeerEndorsementFactors{
			EndorsementCount: v[8], EndorsementQuality: v[9], EndorsementDiversity: v[10], EndorsementRecency: v[11],
		},
		VerificationHistory: models.VerificationHistoryFactors{
			TotalVerifications: v[12], SuccessRate: v[13], AverageQuality: v[14], ConsistencyScore: v[15],
		},
	}
}

func uniformFactors(value int) models.TrustScoreFactors {
	var v [16]int
	for i := range v {
		v[i] = value
	}
	return factorsFromValues(v)
}

func TestDefaultFactorWeightsSumToOne(t *testing.T) {
	w := DefaultFactorWeights()
	sum := w.VerificationQuality + w.ProfileCredibility + w.PeerEndorsements + w.VerificationHistory

	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected weights to sum to 1.0, got %v", sum)
	}
}

func TestOverallScoreBounds(t *testing.T) {
	w := DefaultFactorWeights()

	if got := overallScore(uniformFactors(0), w); got != 0 {
		t.Errorf("expected all-zero factors to score 0, got %d", got)
	}
	if got := overallScore(uniformFactors(100), w); got != 100 {
		t.Errorf("expected all-100 factors to score 100, got %d", got)
	}
}

func TestOverallScoreWeighting(t *testing.T) {
	tests := []struct {
		name     string
		factors  models.TrustScoreFactors
		expected int
	}{
		{
			name: "graded categories",
			// 0.35*80 + 0.25*60 + 0.20*40 + 0.20*20 = 55
			factors: models.TrustScoreFactors{
				VerificationQuality: models.VerificationQualityFactors{EvidenceQuality: 80, VerificationMethod: 80, ConfidenceLevel: 80, Completeness: 80},
				ProfileCredibility:  models.ProfileCredibilityFactors{ProfileCompleteness: 60, AccountAge: 60, VerificationHistory: 60, SocialConnections: 60},
				PeerEndorsements:    models.PeerEndorsementFactors{EndorsementCount: 40, EndorsementQuality: 40, EndorsementDiversity: 40, EndorsementRecency: 40},
				VerificationHistory: models.VerificationHistoryFactors{TotalVerifications: 20, SuccessRate: 20, AverageQuality: 20, ConsistencyScore: 20},
			},
			expected: 55,
		},
		{
			name: "only verification quality",
			// 0.35 * 100 = 35
			factors: models.TrustScoreFactors{
				VerificationQuality: models.VerificationQualityFactors{EvidenceQuality: 100, VerificationMethod: 100, ConfidenceLevel: 100, Completeness: 100},
			},
			expected: 35,
		},
		{
			name: "category mean not sub-metric weighted",
			// (90+70+50+30)/4 = 60 per category regardless of which
			// sub-metric holds which value.
			factors: models.TrustScoreFactors{
				VerificationQuality: models.VerificationQualityFactors{EvidenceQuality: 90, VerificationMethod: 70, ConfidenceLevel: 50, Completeness: 30},
				ProfileCredibility:  models.ProfileCredibilityFactors{ProfileCompleteness: 30, AccountAge: 50, VerificationHistory: 70, SocialConnections: 90},
				PeerEndorsements:    models.PeerEndorsementFactors{EndorsementCount: 60, EndorsementQuality: 60, EndorsementDiversity: 60, EndorsementRecency: 60},
				VerificationHistory: models.VerificationHistoryFactors{TotalVerifications: 90, SuccessRate: 30, AverageQuality: 70, ConsistencyScore: 50},
			},
			expected: 60,
		},
	}

	w := DefaultFactorWeights()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallScore(tt.factors, w); got != tt.expected {
				t.Errorf("expected overall %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestOverallScoreMonotonic(t *testing.T) {
	w := DefaultFactorWeights()

	base := [16]int{40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40}
	baseScore := overallScore(factorsFromValues(base), w)

	for i := 0; i < 16; i++ {
		bumped := base
		bumped[i] += 10

		if got := overallScore(factorsFromValues(bumped), w); got < baseScore {
			t.Errorf("raising sub-metric %d decreased overall score: %d -> %d", i, baseScore, got)
		}
	}
}

func TestSubMetricValuesCoversAllSixteen(t *testing.T) {
	values := subMetricValues(uniformFactors(7))

	if len(values) != 16 {
		t.Fatalf("expected 16 sub-metrics, got %d", len(values))
	}

	seen := make(map[string]bool)
	for _, sm := range values {
		key := sm.category + "." + sm.name
		if seen[key] {
			t.Errorf("duplicate sub-metric %s", key)
		}
		seen[key] = true

		if sm.value != 7 {
			t.Errorf("sub-metric %s carried %d, want 7", key, sm.value)
		}
	}
}

func TestSubFactorWeightsSumToOnePerCategory(t *testing.T) {
	for category, weights := range subFactorWeights {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("sub-factor weights for %s sum to %v, want 1.0", category, sum)
		}
	}
}

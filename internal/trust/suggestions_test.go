package trust

import (
	"strings"
	"testing"

	"github.com/verilink/verilink/internal/models"
)

func TestGenerateSuggestionsFloor(t *testing.T) {
	suggestions := generateSuggestions(models.TrustScoreFactors{})

	if len(suggestions) != 16 {
		t.Fatalf("expected a suggestion for every sub-metric, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.CurrentValue != 0 {
			t.Errorf("%s: expected current value 0, got %d", s.Factor, s.CurrentValue)
		}
		if s.TargetValue != suggestionTarget {
			t.Errorf("%s: expected target %d, got %d", s.Factor, suggestionTarget, s.TargetValue)
		}
		if s.Priority != models.PriorityHigh {
			t.Errorf("%s: expected high priority at value 0, got %s", s.Factor, s.Priority)
		}
	}
}

func TestGenerateSuggestionsOmitsHealthyMetrics(t *testing.T) {
	factors := uniformFactors(suggestionTarget)

	if suggestions := generateSuggestions(factors); len(suggestions) != 0 {
		t.Errorf("expected no suggestions at target, got %d", len(suggestions))
	}
}

func TestGenerateSuggestionsSingleWeakMetric(t *testing.T) {
	factors := uniformFactors(90)
	factors.PeerEndorsements.EndorsementRecency = 40

	suggestions := generateSuggestions(factors)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	if s.Factor != "peer_endorsements.endorsement_recency" {
		t.Errorf("expected dotted factor path, got %q", s.Factor)
	}
	if s.CurrentValue != 40 {
		t.Errorf("expected current value 40, got %d", s.CurrentValue)
	}
	if s.Priority != models.PriorityHigh {
		t.Errorf("expected high priority, got %s", s.Priority)
	}
	if !strings.Contains(s.Improvement, "endorsement") {
		t.Errorf("expected endorsement-specific improvement text, got %q", s.Improvement)
	}
}

func TestGenerateSuggestionsFallbackText(t *testing.T) {
	factors := uniformFactors(90)
	factors.ProfileCredibility.SocialConnections = 10

	suggestions := generateSuggestions(factors)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Improvement != genericImprovement {
		t.Errorf("expected generic text for uncataloged sub-metric, got %q", suggestions[0].Improvement)
	}
}

func TestSuggestionPriorityBoundaries(t *testing.T) {
	tests := []struct {
		value    int
		expected models.SuggestionPriority
	}{
		{0, models.PriorityHigh},
		{49, models.PriorityHigh},
		{50, models.PriorityMedium},
		{59, models.PriorityMedium},
		{60, models.PriorityLow},
		{69, models.PriorityLow},
	}

	for _, tt := range tests {
		if got := suggestionPriority(tt.value); got != tt.expected {
			t.Errorf("suggestionPriority(%d): expected %s, got %s", tt.value, tt.expected, got)
		}
	}
}

func TestGenerateSuggestionsStableOrder(t *testing.T) {
	first := generateSuggestions(models.TrustScoreFactors{})
	second := generateSuggestions(models.TrustScoreFactors{})

	if len(first) != len(second) {
		t.Fatalf("suggestion count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Factor != second[i].Factor {
			t.Errorf("index %d: order changed, %q vs %q", i, first[i].Factor, second[i].Factor)
		}
	}
}

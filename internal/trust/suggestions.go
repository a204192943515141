package trust

import (
	"fmt"

	"github.com/verilink/verilink/internal/models"
)

const (
	// Sub-metrics below this value generate an improvement suggestion.
	suggestionTarget = 70

	// Priority cutoffs on the current value.
	highPriorityBelow   = 50
	mediumPriorityBelow = 60
)

// improvementCatalog maps category/subfactor to a member-facing improvement
// message. Combinations without an entry fall back to a generic message.
var improvementCatalog = map[string]map[string]string{
	categoryVerificationQuality: {
		"evidence_quality":    "Attach stronger supporting documents to your verification requests",
		"verification_method": "Use higher-assurance verification methods such as direct employer confirmation",
		"confidence_level":    "Provide additional context so verifiers can respond with higher confidence",
		"completeness":        "Fill in every field of your verification requests before submitting",
	},
	categoryProfileCredibility: {
		"profile_completeness": "Complete your profile: name, email, bio and avatar",
		"account_age":          "Account standing grows automatically as your profile ages",
		"verification_history": "Resolve pending verifications to build a verified track record",
	},
	categoryPeerEndorsements: {
		"endorsement_count":     "Ask colleagues you have worked with to endorse you",
		"endorsement_quality":   "Request detailed endorsements from peers who know your work well",
		"endorsement_diversity": "Collect endorsements from a wider circle of colleagues",
		"endorsement_recency":   "Refresh your endorsements; recent ones carry more weight",
	},
	categoryVerificationHistory: {
		"total_verifications": "Submit more timeline entries for verification",
		"success_rate":        "Follow up on rejected verifications and correct the underlying entries",
		"average_quality":     "Improve the evidence you provide so verifications score higher",
		"consistency_score":   "Keep verification quality steady across submissions",
	},
}

const genericImprovement = "Improve this area to increase your trust score"

// generateSuggestions emits one suggestion per sub-metric below target, in the
// fixed sub-metric order. Consumers sort by priority if they want a ranking.
func generateSuggestions(f models.TrustScoreFactors) []models.Suggestion {
	var suggestions []models.Suggestion

	for _, sm := range subMetricValues(f) {
		if sm.value >= suggestionTarget {
			continue
		}

		improvement := genericImprovement
		if texts, ok := improvementCatalog[sm.category]; ok {
			if text, ok := texts[sm.name]; ok {
				improvement = text
			}
		}

		suggestions = append(suggestions, models.Suggestion{
			Factor:       fmt.Sprintf("%s.%s", sm.category, sm.name),
			CurrentValue: sm.value,
			TargetValue:  suggestionTarget,
			Improvement:  improvement,
			Priority:     suggestionPriority(sm.value),
		})
	}

	return suggestions
}

func suggestionPriority(value int) models.SuggestionPriority {
	switch {
	case value < highPriorityBelow:
		return models.PriorityHigh
	case value < mediumPriorityBelow:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

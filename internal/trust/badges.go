package trust

import (
	"time"

	"github.com/verilink/verilink/internal/models"
)

// Catalog returns the static badge catalog. It is code-defined and read-only;
// callers must not mutate the returned definitions.
func Catalog() []models.BadgeDefinition {
	return badgeCatalog
}

var badgeCatalog = []models.BadgeDefinition{
	{
		ID:          "verified_identity",
		Name:        "Verified Identity",
		Description: "The member's identity and timeline entries have been independently verified.",
		Icon:        "shield-check",
		Color:       "#2563eb",
		Levels: []models.BadgeLevel{
			{
				Level:    1,
				MinScore: 50,
				Criteria: models.BadgeCriteria{VerificationCount: 1},
				Benefits: []string{"Verified checkmark on profile"},
			},
			{
				Level:    2,
				MinScore: 70,
				Criteria: models.BadgeCriteria{VerificationCount: 3},
				Benefits: []string{"Verified checkmark on profile", "Priority in employer search"},
			},
			{
				Level:    3,
				MinScore: 85,
				Criteria: models.BadgeCriteria{VerificationCount: 5, SuccessRate: 90},
				Benefits: []string{"Verified checkmark on profile", "Priority in employer search", "Featured profile placement"},
			},
		},
	},
	{
		ID:          "trusted_verifier",
		Name:        "Trusted Verifier",
		Description: "The member has a consistent record of high-quality verifications.",
		Icon:        "badge-check",
		Color:       "#16a34a",
		Levels: []models.BadgeLevel{
			{
				Level:    1,
				MinScore: 60,
				Criteria: models.BadgeCriteria{VerificationCount: 5},
				Benefits: []string{"Trusted verifier label"},
			},
			{
				Level:    2,
				MinScore: 75,
				Criteria: models.BadgeCriteria{VerificationCount: 15, SuccessRate: 85},
				Benefits: []string{"Trusted verifier label", "Verification requests fast-tracked"},
			},
			{
				Level:    3,
				MinScore: 90,
				Criteria: models.BadgeCriteria{VerificationCount: 30, SuccessRate: 95},
				Benefits: []string{"Trusted verifier label", "Verification requests fast-tracked", "Invited to verifier council"},
			},
		},
	},
	{
		ID:          "community_leader",
		Name:        "Community Leader",
		Description: "The member is broadly endorsed by peers across the community.",
		Icon:        "users",
		Color:       "#9333ea",
		Levels: []models.BadgeLevel{
			{
				Level:    1,
				MinScore: 65,
				Criteria: models.BadgeCriteria{EndorsementCount: 5},
				Benefits: []string{"Community leader flair"},
			},
			{
				Level:    2,
				MinScore: 80,
				Criteria: models.BadgeCriteria{EndorsementCount: 15},
				Benefits: []string{"Community leader flair", "Can pin endorsements"},
			},
			{
				Level:    3,
				MinScore: 92,
				Criteria: models.BadgeCriteria{EndorsementCount: 30},
				Benefits: []string{"Community leader flair", "Can pin endorsements", "Community spotlight eligibility"},
			},
		},
	},
}

// CriteriaEvaluator decides whether a badge level is satisfied. The default
// implementation only checks the score threshold; the per-level criteria
// fields are documentation until an evaluator that enforces them is plugged in.
type CriteriaEvaluator interface {
	Satisfied(level models.BadgeLevel, overall int, factors models.TrustScoreFactors) bool
}

type scoreThresholdEvaluator struct{}

func (scoreThresholdEvaluator) Satisfied(level models.BadgeLevel, overall int, _ models.TrustScoreFactors) bool {
	return overall >= level.MinScore
}

// evaluateBadges awards, for each catalog badge, the highest level the
// evaluator accepts. Badges with no satisfied level are omitted entirely.
// AwardedAt is re-stamped on every computation.
func evaluateBadges(catalog []models.BadgeDefinition, overall int, factors models.TrustScoreFactors, now time.Time, eval CriteriaEvaluator) []models.Badge {
	var awarded []models.Badge

	for _, def := range catalog {
		best := -1
		for i, level := range def.Levels {
			if eval.Satisfied(level, overall, factors) {
				best = i
			}
		}
		if best < 0 {
			continue
		}

		level := def.Levels[best]
		awarded = append(awarded, models.Badge{
			ID:        def.ID,
			Name:      def.Name,
			Level:     level.Level,
			Criteria:  level.Criteria,
			AwardedAt: now,
		})
	}

	return awarded
}

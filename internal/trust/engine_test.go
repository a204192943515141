package trust

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/verilink/verilink/internal/models"
)

type fakeProfileReader struct {
	profiles map[string]*models.Profile
	err      error
}

func (f *fakeProfileReader) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[id], nil
}

type fakeVerificationReader struct {
	records []models.Verification
	err     error
}

func (f *fakeVerificationReader) ListByProfile(context.Context, string) ([]models.Verification, error) {
	return f.records, f.err
}

type fakeEndorsementReader struct {
	records []models.Endorsement
	err     error
}

func (f *fakeEndorsementReader) ListByEndorsed(context.Context, string) ([]models.Endorsement, error) {
	return f.records, f.err
}

type fakeScoreWriter struct {
	saved *models.TrustScore
	err   error
}

func (f *fakeScoreWriter) Upsert(_ context.Context, score *models.TrustScore) error {
	if f.err != nil {
		return f.err
	}
	f.saved = score
	return nil
}

type fixedConnectionScorer struct {
	score int
	err   error
}

func (f fixedConnectionScorer) Score(context.Context, string) (int, error) {
	return f.score, f.err
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func establishedProfile() *models.Profile {
	return &models.Profile{
		ID:        "profile-1",
		Name:      "Ada Example",
		Email:     "ada@example.com",
		Bio:       "Senior engineer",
		AvatarURL: "https://cdn.example.com/ada.png",
		CreatedAt: testNow.AddDate(0, 0, -200),
	}
}

// establishedRecords returns ten uniformly verified records and ten distinct
// endorsements, half of them recent. With the default weights this data
// scores 82 overall.
func establishedRecords() ([]models.Verification, []models.Endorsement) {
	verifications := make([]models.Verification, 10)
	for i := range verifications {
		verifications[i] = models.Verification{
			ID:              fmt.Sprintf("v-%d", i),
			ProfileID:       "profile-1",
			Status:          models.VerificationStatusVerified,
			QualityScore:    80,
			EvidenceQuality: 90,
			MethodQuality:   80,
			ConfidenceLevel: 85,
			Completeness:    85,
			CreatedAt:       testNow.AddDate(0, 0, -100+i),
		}
	}

	endorsements := make([]models.Endorsement, 10)
	for i := range endorsements {
		age := -60
		if i < 5 {
			age = -10
		}
		endorsements[i] = models.Endorsement{
			ID:           fmt.Sprintf("e-%d", i),
			EndorsedID:   "profile-1",
			EndorserID:   fmt.Sprintf("peer-%d", i),
			QualityScore: 90,
			CreatedAt:    testNow.AddDate(0, 0, age),
		}
	}

	return verifications, endorsements
}

func newTestEngine(profiles *fakeProfileReader, verifications *fakeVerificationReader, endorsements *fakeEndorsementReader, writer *fakeScoreWriter) *Engine {
	eng := NewEngine(profiles, verifications, endorsements, writer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	eng.now = func() time.Time { return testNow }
	return eng
}

func TestCalculateEstablishedProfile(t *testing.T) {
	verifications, endorsements := establishedRecords()
	writer := &fakeScoreWriter{}
	eng := newTestEngine(
		&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}},
		&fakeVerificationReader{records: verifications},
		&fakeEndorsementReader{records: endorsements},
		writer,
	)

	score, err := eng.Calculate(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.OverallScore != 82 {
		t.Errorf("expected overall score 82, got %d", score.OverallScore)
	}
	if score.ProfileID != "profile-1" {
		t.Errorf("expected profile id profile-1, got %s", score.ProfileID)
	}
	if score.ID == "" {
		t.Error("expected a generated score id")
	}
	if !score.UpdatedAt.Equal(testNow) {
		t.Errorf("expected UpdatedAt %v, got %v", testNow, score.UpdatedAt)
	}

	expected := models.TrustScoreFactors{
		VerificationQuality: models.VerificationQualityFactors{EvidenceQuality: 90, VerificationMethod: 80, ConfidenceLevel: 85, Completeness: 85},
		ProfileCredibility:  models.ProfileCredibilityFactors{ProfileCompleteness: 100, AccountAge: 100, VerificationHistory: 100, SocialConnections: 0},
		PeerEndorsements:    models.PeerEndorsementFactors{EndorsementCount: 100, EndorsementQuality: 90, EndorsementDiversity: 100, EndorsementRecency: 50},
		VerificationHistory: models.VerificationHistoryFactors{TotalVerifications: 50, SuccessRate: 100, AverageQuality: 80, ConsistencyScore: 100},
	}
	if score.Factors != expected {
		t.Errorf("factors mismatch:\n  expected %+v\n  got      %+v", expected, score.Factors)
	}

	levels := badgeLevels(score.Badges)
	if levels["verified_identity"] != 2 || levels["trusted_verifier"] != 2 || levels["community_leader"] != 2 {
		t.Errorf("expected level 2 across all badges, got %v", levels)
	}

	// Below-target sub-metrics: social connections, endorsement recency and
	// total verification count.
	if len(score.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(score.Suggestions))
	}

	if len(score.History) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(score.History))
	}
	entry := score.History[0]
	if entry.Reason != "Score calculated" {
		t.Errorf("expected history reason %q, got %q", "Score calculated", entry.Reason)
	}
	if entry.Score != score.OverallScore || !entry.Timestamp.Equal(testNow) {
		t.Errorf("history entry does not match computed score: %+v", entry)
	}

	if writer.saved != score {
		t.Error("expected the computed score to be persisted")
	}
}

func TestCalculateDeterministic(t *testing.T) {
	verifications, endorsements := establishedRecords()
	eng := newTestEngine(
		&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}},
		&fakeVerificationReader{records: verifications},
		&fakeEndorsementReader{records: endorsements},
		&fakeScoreWriter{},
	)

	first, err := eng.Calculate(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eng.Calculate(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.OverallScore != second.OverallScore {
		t.Errorf("overall score changed between runs: %d vs %d", first.OverallScore, second.OverallScore)
	}
	if first.Factors != second.Factors {
		t.Error("factors changed between runs with identical inputs")
	}
	if len(first.Suggestions) != len(second.Suggestions) {
		t.Error("suggestion count changed between runs with identical inputs")
	}
}

func TestCalculateEmptyInputs(t *testing.T) {
	profile := establishedProfile()
	profile.Name = ""
	profile.Email = ""
	profile.Bio = ""
	profile.AvatarURL = ""
	profile.CreatedAt = testNow

	eng := newTestEngine(
		&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": profile}},
		&fakeVerificationReader{},
		&fakeEndorsementReader{},
		&fakeScoreWriter{},
	)

	score, err := eng.Calculate(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.OverallScore != 0 {
		t.Errorf("expected floor score 0, got %d", score.OverallScore)
	}
	if len(score.Badges) != 0 {
		t.Errorf("expected no badges at floor score, got %d", len(score.Badges))
	}
	if len(score.Suggestions) != 16 {
		t.Errorf("expected a suggestion per sub-metric, got %d", len(score.Suggestions))
	}
}

func TestCalculateMissingProfile(t *testing.T) {
	eng := newTestEngine(
		&fakeProfileReader{profiles: map[string]*models.Profile{}},
		&fakeVerificationReader{},
		&fakeEndorsementReader{},
		&fakeScoreWriter{},
	)

	if _, err := eng.Calculate(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestCalculateReaderErrors(t *testing.T) {
	profiles := &fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}}

	tests := []struct {
		name          string
		verifications *fakeVerificationReader
		endorsements  *fakeEndorsementReader
	}{
		{
			name:          "verification reader failure",
			verifications: &fakeVerificationReader{err: errors.New("db down")},
			endorsements:  &fakeEndorsementReader{},
		},
		{
			name:          "endorsement reader failure",
			verifications: &fakeVerificationReader{},
			endorsements:  &fakeEndorsementReader{err: errors.New("db down")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(profiles, tt.verifications, tt.endorsements, &fakeScoreWriter{})
			if _, err := eng.Calculate(context.Background(), "profile-1"); err == nil {
				t.Fatal("expected error from failing reader")
			}
		})
	}
}

func TestCalculateWriteFailureStillReturnsScore(t *testing.T) {
	verifications, endorsements := establishedRecords()
	eng := newTestEngine(
		&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}},
		&fakeVerificationReader{records: verifications},
		&fakeEndorsementReader{records: endorsements},
		&fakeScoreWriter{err: errors.New("write refused")},
	)

	score, err := eng.Calculate(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("expected write failure to be swallowed, got %v", err)
	}
	if score == nil || score.OverallScore != 82 {
		t.Errorf("expected the computed score despite write failure, got %+v", score)
	}
}

func TestCalculateConnectionScorer(t *testing.T) {
	verifications, endorsements := establishedRecords()

	t.Run("custom scorer feeds social connections", func(t *testing.T) {
		eng := newTestEngine(
			&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}},
			&fakeVerificationReader{records: verifications},
			&fakeEndorsementReader{records: endorsements},
			&fakeScoreWriter{},
		)
		eng.SetConnectionScorer(fixedConnectionScorer{score: 80})

		score, err := eng.Calculate(context.Background(), "profile-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if score.Factors.ProfileCredibility.SocialConnections != 80 {
			t.Errorf("expected social connections 80, got %d", score.Factors.ProfileCredibility.SocialConnections)
		}
	})

	t.Run("scorer failure defaults to zero", func(t *testing.T) {
		eng := newTestEngine(
			&fakeProfileReader{profiles: map[string]*models.Profile{"profile-1": establishedProfile()}},
			&fakeVerificationReader{records: verifications},
			&fakeEndorsementReader{records: endorsements},
			&fakeScoreWriter{},
		)
		eng.SetConnectionScorer(fixedConnectionScorer{err: errors.New("graph unavailable")})

		score, err := eng.Calculate(context.Background(), "profile-1")
		if err != nil {
			t.Fatalf("expected scorer failure to be non-fatal, got %v", err)
		}
		if score.Factors.ProfileCredibility.SocialConnections != 0 {
			t.Errorf("expected social connections 0 on scorer failure, got %d", score.Factors.ProfileCredibility.SocialConnections)
		}
	})
}

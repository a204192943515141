package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/verilink/verilink/internal/metrics"
	"github.com/verilink/verilink/internal/models"
	"github.com/verilink/verilink/internal/trust"
)

// ScoreCalculator computes a fresh trust score for a profile.
type ScoreCalculator interface {
	Calculate(ctx context.Context, profileID string) (*models.TrustScore, error)
}

// ScoreStore reads stored trust scores.
type ScoreStore interface {
	Get(ctx context.Context, profileID string) (*models.TrustScore, error)
	GetHistory(ctx context.Context, profileID string) ([]models.HistoryEntry, error)
}

// TrustScoreHandler handles trust score API requests
type TrustScoreHandler struct {
	calculator ScoreCalculator
	store      ScoreStore
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewTrustScoreHandler creates a new trust score handler
func NewTrustScoreHandler(calculator ScoreCalculator, store ScoreStore, collector *metrics.Collector, logger *slog.Logger) *TrustScoreHandler {
	return &TrustScoreHandler{
		calculator: calculator,
		store:      store,
		collector:  collector,
		logger:     logger,
	}
}

// GetTrustScore handles GET /api/profiles/:id/trust-score. A profile without
// a stored score gets one computed on demand.
func (h *TrustScoreHandler) GetTrustScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profileID, ok := profileIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Profile ID required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	score, err := h.store.Get(ctx, profileID)
	if err != nil {
		h.logger.Error("failed to load trust score", "profile_id", profileID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if score == nil {
		score, err = h.calculate(ctx, profileID)
		if err != nil {
			h.logger.Error("failed to compute trust score", "profile_id", profileID, "error", err)
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, score)
}

// GetTrustScoreHistory handles GET /api/profiles/:id/trust-score/history
func (h *TrustScoreHandler) GetTrustScoreHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profileID, ok := profileIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Profile ID required", http.StatusBadRequest)
		return
	}

	history, err := h.store.GetHistory(r.Context(), profileID)
	if err != nil {
		h.logger.Error("failed to load trust score history", "profile_id", profileID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if history == nil {
		history = []models.HistoryEntry{}
	}

	writeJSON(w, h.logger, http.StatusOK, HistoryResponse{
		ProfileID: profileID,
		History:   history,
		Count:     len(history),
	})
}

// RecalculateTrustScore handles POST /api/profiles/:id/trust-score/recalculate
func (h *TrustScoreHandler) RecalculateTrustScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profileID, ok := profileIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Profile ID required", http.StatusBadRequest)
		return
	}

	score, err := h.calculate(r.Context(), profileID)
	if err != nil {
		h.logger.Error("failed to recalculate trust score", "profile_id", profileID, "error", err)
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	h.logger.Info("trust score recalculated", "profile_id", profileID, "score", score.OverallScore)
	writeJSON(w, h.logger, http.StatusOK, score)
}

// GetBadgeCatalog handles GET /api/badges
func (h *TrustScoreHandler) GetBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, BadgeCatalogResponse{Badges: trust.Catalog()})
}

func (h *TrustScoreHandler) calculate(ctx context.Context, profileID string) (*models.TrustScore, error) {
	start := time.Now()
	score, err := h.calculator.Calculate(ctx, profileID)

	if h.collector != nil {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		h.collector.ObserveComputation(outcome, time.Since(start))
	}

	return score, err
}

// HistoryResponse is the payload for the history endpoint.
type HistoryResponse struct {
	ProfileID string                `json:"profile_id"`
	History   []models.HistoryEntry `json:"history"`
	Count     int                   `json:"count"`
}

// BadgeCatalogResponse is the payload for the badge catalog endpoint.
type BadgeCatalogResponse struct {
	Badges []models.BadgeDefinition `json:"badges"`
}

// profileIDFromPath extracts the profile ID from /api/profiles/:id/... paths.
func profileIDFromPath(path string) (string, bool) {
	parts := strings.Split(path, "/")
	// ["", "api", "profiles", ":id", ...]
	if len(parts) < 4 || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

package api

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/verilink/verilink/internal/auth"
	"github.com/verilink/verilink/internal/metrics"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, calculator ScoreCalculator, store ScoreStore, collector *metrics.Collector, authConfig auth.Config, logger *slog.Logger) {
	trustScoreHandler := NewTrustScoreHandler(calculator, store, collector, logger)
	authHandler := NewAuthHandler(authConfig, logger)

	authMiddleware := auth.AuthMiddleware(authConfig)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		authMiddleware(http.HandlerFunc(authHandler.ValidateToken)).ServeHTTP(w, r)
	})

	// Badge catalog (public)
	mux.HandleFunc("/api/badges", trustScoreHandler.GetBadgeCatalog)

	// Trust score routes. Reads are public; recalculation requires auth.
	mux.HandleFunc("/api/profiles/", func(w http.ResponseWriter, r *http.Request) {
		// Handle CORS preflight
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusOK)
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/trust-score/recalculate"):
			authMiddleware(http.HandlerFunc(trustScoreHandler.RecalculateTrustScore)).ServeHTTP(w, r)
		case strings.HasSuffix(r.URL.Path, "/trust-score/history"):
			trustScoreHandler.GetTrustScoreHistory(w, r)
		case strings.HasSuffix(r.URL.Path, "/trust-score"):
			trustScoreHandler.GetTrustScore(w, r)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
}

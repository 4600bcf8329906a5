// Package server exposes the portfolio optimizer over HTTP with
// Prometheus instrumentation.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"portfolio-optimizer/internal/analysis"
	apperrors "portfolio-optimizer/internal/errors"
	"portfolio-optimizer/internal/returns"
	"portfolio-optimizer/pkg/data"
)

// Server handles optimization requests. The provider is optional; without
// one, only inline return matrices can be optimized.
type Server struct {
	provider data.Provider
}

// NewServer creates a new server backed by the given price provider.
func NewServer(provider data.Provider) *Server {
	return &Server{provider: provider}
}

// OptimizeRequest is the body of POST /api/optimize. Either Returns
// (a periods-by-assets matrix) or Symbols with a date range must be set.
type OptimizeRequest struct {
	Assets  []string    `json:"assets,omitempty"`
	Returns [][]float64 `json:"returns,omitempty"`

	Symbols []string `json:"symbols,omitempty"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`

	RiskFreeRate float64 `json:"riskFreeRate"`
	Seed         int64   `json:"seed,omitempty"`
	Trials       int     `json:"trials,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPMux builds the HTTP routes.
func (s *Server) NewHTTPMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/api/optimize", s.handleOptimize)
	return mux
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	started := time.Now()

	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		recordAnalysis("error", 0, time.Since(started))
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}

	series, err := s.buildSeries(&req)
	if err != nil {
		s.writeAnalysisError(w, err, started)
		return
	}

	analyzer := analysis.New(analysis.Config{
		RiskFreeRate: req.RiskFreeRate,
		Seed:         req.Seed,
		Trials:       req.Trials,
	})
	result, err := analyzer.Run(series)
	if err != nil {
		s.writeAnalysisError(w, err, started)
		return
	}

	recordAnalysis("ok", result.Trials, time.Since(started))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("⚠️ Failed to encode response: %v", err)
	}
}

// buildSeries resolves the request into a returns series, either from the
// inline matrix or by loading prices for the requested symbols.
func (s *Server) buildSeries(req *OptimizeRequest) (*returns.Series, error) {
	switch {
	case len(req.Returns) > 0:
		if len(req.Assets) == 0 {
			return nil, apperrors.NewInvalidInputError("server", "optimize",
				"assets are required with an inline returns matrix")
		}
		dates := make([]time.Time, len(req.Returns))
		base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range dates {
			dates[i] = base.AddDate(0, 0, i)
		}
		return returns.NewSeries(dates, req.Assets, req.Returns)

	case len(req.Symbols) > 0:
		if s.provider == nil {
			return nil, apperrors.NewConfigurationError("server", "optimize",
				"no price provider configured")
		}
		start, end, err := parseWindow(req.Start, req.End)
		if err != nil {
			return nil, err
		}
		return data.LoadReturnsSeries(s.provider, req.Symbols, start, end)

	default:
		return nil, apperrors.NewInvalidInputError("server", "optimize",
			"either returns or symbols must be provided")
	}
}

func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError(
				"server", "optimize", fmt.Sprintf("invalid end date %q", endStr))
		}
		end = parsed
	}
	start := end.AddDate(-1, 0, 0)
	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError(
				"server", "optimize", fmt.Sprintf("invalid start date %q", startStr))
		}
		start = parsed
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError(
			"server", "optimize", "start date must precede end date")
	}
	return start, end, nil
}

func (s *Server) writeAnalysisError(w http.ResponseWriter, err error, started time.Time) {
	kind := apperrors.KindOf(err)
	recordAnalysis("error", 0, time.Since(started))
	recordErrorKind(string(kind))

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindInvalidInput, apperrors.KindInsufficientData:
		status = http.StatusBadRequest
	case apperrors.KindNegativeVariance, apperrors.KindDivisionByZero:
		status = http.StatusUnprocessableEntity
	case apperrors.KindData:
		status = http.StatusBadGateway
	case apperrors.KindConfiguration:
		status = http.StatusServiceUnavailable
	}

	var appErr *apperrors.AnalysisError
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Underlying != nil {
			msg = fmt.Sprintf("%s: %v", appErr.Message, appErr.Underlying)
		}
	}
	writeError(w, status, msg, string(kind))
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Kind: kind})
}

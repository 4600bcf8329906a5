// Package analysis orchestrates one mean-variance analysis run: it reduces
// a returns series to its sample statistics and hands them to the Monte
// Carlo simulation engine. The package performs no I/O and never logs -
// failures surface as structured errors to the immediate caller.
package analysis

import (
	"time"

	apperrors "portfolio-optimizer/internal/errors"
	"portfolio-optimizer/internal/returns"
	"portfolio-optimizer/internal/simulation"
)

const component = "analysis"

// Config is the configuration surface of the core. Assets and the date
// range select the input series at the data layer; the remaining fields
// parameterize the simulation. A zero Seed selects simulation.DefaultSeed
// (an explicit zero seed is not selectable) and a zero Trials selects the
// per-asset default.
type Config struct {
	Assets       []string  `json:"assets"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	RiskFreeRate float64   `json:"risk_free_rate"`
	Seed         int64     `json:"seed"`
	Trials       int       `json:"trials"`
	Workers      int       `json:"-"`
}

// Result is the in-memory bundle one analysis invocation produces. Nothing
// in it outlives the call that produced it; external collaborators (console
// tables, workbook, chart rendering) consume it read-only.
type Result struct {
	Assets       []string               `json:"assets"`
	Means        []float64              `json:"means"`
	Covariance   [][]float64            `json:"covariance"`
	RiskFreeRate float64                `json:"risk_free_rate"`
	Seed         int64                  `json:"seed"`
	Trials       int                    `json:"trials"`
	Optimal      simulation.Candidate   `json:"optimal"`
	Candidates   []simulation.Candidate `json:"candidates"`
}

// Analyzer runs the estimate-then-simulate pipeline with a fixed Config.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer. A zero RiskFreeRate and Seed fall back to the
// documented defaults (0 and simulation.DefaultSeed respectively).
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Run estimates statistics from the series and simulates random portfolios
// against them.
func (a *Analyzer) Run(series *returns.Series) (*Result, error) {
	if series == nil {
		return nil, apperrors.NewInvalidInputError(component, "Run", "nil series")
	}

	stats, err := returns.Estimate(series)
	if err != nil {
		return nil, err
	}
	return a.RunWithStats(stats)
}

// RunWithStats simulates directly against precomputed statistics. Used by
// the HTTP surface, where callers may supply their own mean vector and
// covariance matrix instead of a raw series.
func (a *Analyzer) RunWithStats(stats *returns.Stats) (*Result, error) {
	if stats == nil {
		return nil, apperrors.NewInvalidInputError(component, "RunWithStats", "nil statistics")
	}

	seed := a.cfg.Seed
	if seed == 0 {
		seed = simulation.DefaultSeed
	}
	trials := a.cfg.Trials
	if trials <= 0 {
		trials = simulation.DefaultTrialsPerAsset * stats.NumAssets()
	}

	sim, err := simulation.Run(stats.Means, stats.Cov, simulation.Config{
		RiskFreeRate: a.cfg.RiskFreeRate,
		Trials:       trials,
		Seed:         seed,
		Workers:      a.cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Assets:       stats.Assets,
		Means:        stats.Means,
		Covariance:   stats.Cov,
		RiskFreeRate: a.cfg.RiskFreeRate,
		Seed:         seed,
		Trials:       trials,
		Optimal:      sim.Optimal,
		Candidates:   sim.Candidates,
	}, nil
}

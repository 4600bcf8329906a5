package simulation

import (
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	apperrors "portfolio-optimizer/internal/errors"
)

const component = "simulation"

const (
	// DefaultTrialsPerAsset scales simulation density with portfolio
	// dimensionality: the weight simplex of dimension K-1 is sampled with
	// comparable density regardless of K.
	DefaultTrialsPerAsset = 100

	// DefaultSeed keeps unconfigured runs reproducible.
	DefaultSeed int64 = 42

	// weightLow/weightHigh bound the raw uniform draws. Drawing from [1,10)
	// instead of [0,1) keeps every raw draw strictly positive, so row
	// normalization is always well defined and no single asset's allocation
	// collapses to ~0 disproportionately often.
	weightLow  = 1.0
	weightHigh = 10.0

	// varianceEpsilon absorbs tiny negative quadratic forms caused by the
	// covariance matrix's reporting precision. Anything more negative is a
	// genuinely non-PSD matrix and is surfaced, not clamped.
	varianceEpsilon = 1e-12
)

// Config parameterizes one simulation run.
type Config struct {
	// RiskFreeRate enters the Sharpe numerator. Default 0.
	RiskFreeRate float64

	// Trials is the number of random portfolios to draw; <=0 selects the
	// default of DefaultTrialsPerAsset x K.
	Trials int

	// Seed fixes the random draws; 0 means "use DefaultSeed", so a literal
	// zero seed is not selectable. The engine never touches process-wide
	// RNG state; each run builds its own generator from this seed.
	Seed int64

	// Workers bounds parallel trial evaluation; <=0 selects NumCPU.
	Workers int
}

// Run simulates random fully-invested long-only portfolios against the
// estimated statistics and selects the Sharpe-maximizing candidate.
//
// All T x K raw uniforms are drawn up front in trial-major order, so the
// weight vector belonging to each trial index is fixed before any parallel
// evaluation starts: identical inputs and seed produce an identical result
// regardless of worker count.
func Run(means []float64, cov [][]float64, cfg Config) (*Result, error) {
	k := len(means)
	if k < 1 {
		return nil, apperrors.NewInsufficientDataError(component, "Run", "empty mean vector")
	}
	if err := validateInputs(means, cov); err != nil {
		return nil, err
	}

	trials := cfg.Trials
	if trials <= 0 {
		trials = DefaultTrialsPerAsset * k
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	weights := drawWeights(trials, k, rand.New(rand.NewSource(seed)))

	// One multiplication gives every trial's W*Sigma row; the per-trial
	// variance is then a single dot product against the trial's weights.
	sigma := mat.NewDense(k, k, flatten(cov))
	ws := mat.NewDense(trials, k, nil)
	ws.Mul(weights, sigma)

	muVec := mat.NewVecDense(k, means)
	portMeans := mat.NewVecDense(trials, nil)
	portMeans.MulVec(weights, muVec)

	candidates := make([]Candidate, trials)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}

	var g errgroup.Group
	chunk := (trials + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > trials {
			hi = trials
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			return evaluateRange(candidates, weights, ws, portMeans, cfg.RiskFreeRate, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < trials; i++ {
		if candidates[i].Sharpe > candidates[best].Sharpe {
			best = i
		}
	}

	return &Result{Optimal: candidates[best], Candidates: candidates}, nil
}

// drawWeights bulk-draws trials x k uniforms over [weightLow, weightHigh)
// and normalizes each row to sum to 1.
func drawWeights(trials, k int, rng *rand.Rand) *mat.Dense {
	raw := make([]float64, trials*k)
	for i := range raw {
		raw[i] = weightLow + (weightHigh-weightLow)*rng.Float64()
	}
	w := mat.NewDense(trials, k, raw)
	for t := 0; t < trials; t++ {
		row := w.RawRowView(t)
		sum := floats.Sum(row)
		// Divide rather than scale by the reciprocal so a single-asset
		// portfolio normalizes to exactly 1.0.
		for i := range row {
			row[i] /= sum
		}
	}
	return w
}

// evaluateRange computes candidates for trial indexes [lo, hi). Each trial
// writes only its own slot, so ranges share nothing but read-only inputs.
func evaluateRange(out []Candidate, weights, ws *mat.Dense, portMeans *mat.VecDense, riskFree float64, lo, hi int) error {
	for t := lo; t < hi; t++ {
		row := weights.RawRowView(t)

		variance := floats.Dot(row, ws.RawRowView(t))
		if variance < 0 {
			if variance < -varianceEpsilon {
				return apperrors.NewNegativeVarianceError(component, "evaluateRange", variance)
			}
			variance = 0
		}
		sigma := math.Sqrt(variance)

		mean := portMeans.AtVec(t)
		excess := mean - riskFree
		var sharpe float64
		switch {
		case sigma > 0:
			sharpe = excess / sigma
		case excess > 0:
			sharpe = math.Inf(1)
		case excess < 0:
			sharpe = math.Inf(-1)
		default:
			// 0/0: a zero-volatility portfolio with zero excess return has
			// no defensible ranking value.
			return apperrors.NewDivisionByZeroError(component, "evaluateRange",
				"zero-volatility portfolio with zero excess return")
		}

		w := make([]float64, len(row))
		copy(w, row)
		out[t] = Candidate{Trial: t, Weights: w, Mean: mean, Sigma: sigma, Sharpe: sharpe}
	}
	return nil
}

// validateInputs rejects dimension mismatches and non-numeric statistics
// before any trial is drawn.
func validateInputs(means []float64, cov [][]float64) error {
	k := len(means)
	for _, m := range means {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return apperrors.NewInvalidInputError(component, "Run", "non-numeric mean")
		}
	}
	if len(cov) != k {
		return apperrors.Newf(apperrors.KindInvalidInput, component, "Run",
			"covariance matrix has %d rows for %d assets", len(cov), k)
	}
	for i, row := range cov {
		if len(row) != k {
			return apperrors.Newf(apperrors.KindInvalidInput, component, "Run",
				"covariance row %d has %d columns, expected %d", i, len(row), k)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return apperrors.NewInvalidInputError(component, "Run", "non-numeric covariance")
			}
		}
	}
	return nil
}

func flatten(m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, 0, len(m)*len(m[0]))
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

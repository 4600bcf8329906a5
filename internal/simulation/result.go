package simulation

// Candidate records one simulation trial: the weight vector drawn for the
// trial and the portfolio statistics it evaluates to. Immutable after
// creation.
type Candidate struct {
	Trial   int       `json:"trial"`
	Weights []float64 `json:"weights"`
	Mean    float64   `json:"mean"`
	Sigma   float64   `json:"sigma"`
	Sharpe  float64   `json:"sharpe"`
}

// Result is the outcome of one simulation run: every candidate in
// generation order plus the Sharpe-maximizing one. On exact Sharpe ties the
// first-occurring candidate wins, so a run is fully determined by its
// inputs and seed.
type Result struct {
	Optimal    Candidate   `json:"optimal"`
	Candidates []Candidate `json:"candidates"`
}

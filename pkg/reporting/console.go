package reporting

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"portfolio-optimizer/internal/analysis"
)

// ConsoleReporter renders an analysis result as tables on stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a new console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// OutputResult prints the run configuration, the statistics, the top
// candidates and the optimal allocation.
func (r *ConsoleReporter) OutputResult(res *analysis.Result, topN int) {
	r.printConfiguration(res)
	r.printStatistics(res)
	r.printTopCandidates(res, topN)
	r.printOptimal(res)
}

// printConfiguration prints the parameters the run was executed with.
func (r *ConsoleReporter) printConfiguration(res *analysis.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("⚙️ RUN CONFIGURATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Assets", strings.Join(res.Assets, ", ")},
		{"Trials", res.Trials},
		{"Seed", res.Seed},
		{"Risk-Free Rate", fmt.Sprintf("%.4f", res.RiskFreeRate)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Println()
}

// printStatistics prints the estimated per-asset mean and volatility.
func (r *ConsoleReporter) printStatistics(res *analysis.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("📊 ESTIMATED STATISTICS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Asset", "Mean Return", "Volatility"})
	for i, asset := range res.Assets {
		t.AppendRow(table.Row{
			asset,
			fmt.Sprintf("%.5f", res.Means[i]),
			fmt.Sprintf("%.5f", math.Sqrt(res.Covariance[i][i])),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
	fmt.Println()
}

// printTopCandidates prints the n best simulated portfolios ranked by
// Sharpe ratio. Trial indexes identify rows in the full simulation table.
func (r *ConsoleReporter) printTopCandidates(res *analysis.Result, n int) {
	ranked := make([]int, len(res.Candidates))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return res.Candidates[ranked[a]].Sharpe > res.Candidates[ranked[b]].Sharpe
	})
	if n > len(ranked) {
		n = len(ranked)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("🏆 TOP %d OF %d SIMULATED PORTFOLIOS", n, len(res.Candidates)))
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Trial", "Mean", "Sigma", "Sharpe"})
	for _, idx := range ranked[:n] {
		c := res.Candidates[idx]
		t.AppendRow(table.Row{c.Trial, fmt.Sprintf("%.5f", c.Mean),
			fmt.Sprintf("%.5f", c.Sigma), fmt.Sprintf("%.4f", c.Sharpe)})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	fmt.Println()
}

// printOptimal prints the selected portfolio and its weights.
func (r *ConsoleReporter) printOptimal(res *analysis.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("🎯 OPTIMAL PORTFOLIO")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Trial", res.Optimal.Trial},
		{"Expected Return", fmt.Sprintf("%.5f", res.Optimal.Mean)},
		{"Volatility", fmt.Sprintf("%.5f", res.Optimal.Sigma)},
		{"Sharpe Ratio", fmt.Sprintf("%.4f", res.Optimal.Sharpe)},
		{"Risk-Free Rate", fmt.Sprintf("%.4f", res.RiskFreeRate)},
		{"Seed", res.Seed},
	})
	t.AppendSeparator()
	for i, asset := range res.Assets {
		t.AppendRow(table.Row{asset, fmt.Sprintf("%.2f%%", res.Optimal.Weights[i]*100)})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, Align: text.AlignRight},
	})
	t.Render()
	fmt.Println()
}

// OutputConsole is the package-level convenience entry point.
func OutputConsole(res *analysis.Result, topN int) {
	NewConsoleReporter().OutputResult(res, topN)
}

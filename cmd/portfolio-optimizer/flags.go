package main

import (
	"flag"
	"fmt"
	"strings"

	"portfolio-optimizer/pkg/config"
)

// OptimizerFlags holds all command line flags for the optimizer command
type OptimizerFlags struct {
	// Configuration
	ConfigFile *string
	Assets     *string
	StartDate  *string
	EndDate    *string
	Period     *string

	// Simulation parameters
	RiskFreeRate *float64
	Seed         *int64
	Trials       *int
	Workers      *int

	// Data source
	Provider *string
	DataRoot *string

	// Output options
	OutputDir   *string
	TopN        *int
	ConsoleOnly *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewOptimizerFlags creates and registers all command line flags
func NewOptimizerFlags() *OptimizerFlags {
	flags := &OptimizerFlags{
		// Configuration
		ConfigFile: flag.String("config", "", "Path to JSON configuration file"),
		Assets:     flag.String("assets", "", "Comma-separated asset symbols (e.g., AAPL,MSFT,GOOG)"),
		StartDate:  flag.String("start", "", "Start date (YYYY-MM-DD)"),
		EndDate:    flag.String("end", "", "End date (YYYY-MM-DD)"),
		Period:     flag.String("period", "", "Limit data to trailing period (30d, 26w, 2y)"),

		// Simulation parameters
		RiskFreeRate: flag.Float64("rf", config.DefaultRiskFreeRate, "Risk-free rate per period"),
		Seed:         flag.Int64("seed", config.DefaultSeed, "Random seed for reproducible runs"),
		Trials:       flag.Int("trials", 0, "Number of simulation trials (0 = 100 per asset)"),
		Workers:      flag.Int("workers", 0, "Worker goroutines for evaluation (0 = NumCPU)"),

		// Data source
		Provider: flag.String("provider", config.DefaultProvider, "Price provider (csv, yahoo)"),
		DataRoot: flag.String("data-root", config.DefaultDataRoot, "Directory with <SYMBOL>.csv price files"),

		// Output options
		OutputDir:   flag.String("output", config.DefaultOutputDir, "Output directory for result files"),
		TopN:        flag.Int("top", config.DefaultTopN, "Number of top portfolios to display"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}

	return flags
}

// ApplyFlagOverrides applies set flags on top of the loaded configuration.
func ApplyFlagOverrides(cfg *config.Config, flags *OptimizerFlags) {
	if *flags.Assets != "" {
		cfg.Assets = nil
		for _, sym := range strings.Split(*flags.Assets, ",") {
			sym = strings.TrimSpace(sym)
			if sym != "" {
				cfg.Assets = append(cfg.Assets, sym)
			}
		}
	}
	if *flags.StartDate != "" {
		cfg.StartDate = *flags.StartDate
	}
	if *flags.EndDate != "" {
		cfg.EndDate = *flags.EndDate
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rf":
			cfg.RiskFreeRate = *flags.RiskFreeRate
		case "seed":
			cfg.Seed = *flags.Seed
		case "trials":
			cfg.Trials = *flags.Trials
		case "provider":
			cfg.Provider = *flags.Provider
		case "data-root":
			cfg.DataRoot = *flags.DataRoot
		case "output":
			cfg.OutputDir = *flags.OutputDir
		case "top":
			cfg.TopN = *flags.TopN
		}
	})
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"portfolio-optimizer -assets AAPL,MSFT,GOOG",
			"Optimize a three-asset portfolio from local CSV data",
		},
		{
			"portfolio-optimizer -config configs/tech.json",
			"Load assets and parameters from a configuration file",
		},
		{
			"portfolio-optimizer -assets AAPL,MSFT -provider yahoo -period 26w",
			"Fetch 26 weeks of Yahoo Finance data and optimize",
		},
		{
			"portfolio-optimizer -assets AAPL,MSFT -trials 5000 -seed 7",
			"Custom trial count with a fixed seed",
		},
		{
			"portfolio-optimizer -assets AAPL,MSFT -console-only",
			"Skip CSV, XLSX and chart output",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}

// PrintFlagGroups prints flags organized by category
func PrintFlagGroups() {
	fmt.Printf(`
📊 CONFIGURATION FLAGS:
  -config FILE          Load configuration from JSON file
  -assets SYMBOLS       Comma-separated asset symbols
  -start DATE           Start date YYYY-MM-DD (default: one year before end)
  -end DATE             End date YYYY-MM-DD (default: today)
  -period PERIOD        Trailing period filter (30d, 26w, 2y)

🎲 SIMULATION FLAGS:
  -rf RATE              Risk-free rate per period (default: 0)
  -seed SEED            Random seed (default: 42)
  -trials N             Simulation trials (default: 100 per asset)
  -workers N            Worker goroutines (default: NumCPU)

💾 DATA FLAGS:
  -provider NAME        Price provider: csv, yahoo (default: csv)
  -data-root DIR        Directory with <SYMBOL>.csv files (default: data)

📁 OUTPUT FLAGS:
  -output DIR           Output directory (default: results)
  -top N                Top portfolios to display (default: 10)
  -console-only         Console output only, no file output
  -env FILE             Environment file path (default: .env)

❓ HELP FLAGS:
  -version              Show version information
  -help                 Show this help message
`)
}

package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"portfolio-optimizer/internal/analysis"
	"portfolio-optimizer/pkg/config"
	"portfolio-optimizer/pkg/data"
	"portfolio-optimizer/pkg/reporting"
)

const (
	AppName    = "Portfolio Optimizer"
	AppVersion = "1.0.0"
)

func main() {
	// Create and parse command line flags
	flags := NewOptimizerFlags()
	flag.Parse()

	// Version and help
	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	// Header
	printHeader()

	// Load environment
	loadEnvironment(*flags.EnvFile)

	// Load configuration and apply flag overrides
	cfg, err := config.LoadConfig(*flags.ConfigFile)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	ApplyFlagOverrides(cfg, flags)
	cfg.NormalizeAssets()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	start, end, err := cfg.Window()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	// Resolve the price provider
	provider, err := resolveProvider(cfg)
	if err != nil {
		log.Fatalf("❌ Provider error: %v", err)
	}
	fmt.Printf("💾 Loading %d assets via %s provider (%s to %s)\n\n",
		len(cfg.Assets), provider.GetName(),
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	// Load prices and build the aligned return series
	histories := make([]*data.PriceHistory, 0, len(cfg.Assets))
	for _, symbol := range cfg.Assets {
		history, err := provider.LoadPrices(symbol, start, end)
		if err != nil {
			log.Fatalf("❌ Failed to load %s: %v", symbol, err)
		}
		if *flags.Period != "" {
			period, ok := data.ParseTrailingPeriod(strings.TrimSpace(*flags.Period))
			if !ok {
				log.Fatalf("❌ Invalid period format: %s (use 30d, 26w, 2y)", *flags.Period)
			}
			history = data.FilterTrailing(history, period)
		}
		histories = append(histories, history)
	}

	series, err := data.BuildReturnsSeries(histories)
	if err != nil {
		log.Fatalf("❌ Failed to build return series: %v", err)
	}
	fmt.Printf("📈 Aligned %d return periods across %d assets\n\n",
		series.Periods(), series.NumAssets())

	// Run the analysis
	analyzer := analysis.New(analysis.Config{
		Assets:       cfg.Assets,
		StartDate:    start,
		EndDate:      end,
		RiskFreeRate: cfg.RiskFreeRate,
		Seed:         cfg.Seed,
		Trials:       cfg.Trials,
		Workers:      *flags.Workers,
	})
	result, err := analyzer.Run(series)
	if err != nil {
		log.Fatalf("❌ Analysis error: %v", err)
	}

	// Report
	reporting.OutputConsole(result, cfg.TopN)

	if !*flags.ConsoleOnly {
		writeFileOutputs(result, cfg.OutputDir)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Monte Carlo Mean-Variance Portfolio Optimization\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))

	PrintUsageExamples()
	PrintFlagGroups()

	fmt.Printf("\nFor more information, see the README or documentation.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func resolveProvider(cfg *config.Config) (data.Provider, error) {
	switch cfg.Provider {
	case "csv":
		return data.NewCSVProvider(cfg.DataRoot), nil
	case "yahoo":
		return data.NewCachedProvider(data.NewYahooProvider()), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func writeFileOutputs(result *analysis.Result, outputDir string) {
	csvPath := filepath.Join(outputDir, "simulations.csv")
	if err := reporting.WriteSimulationsCSV(result, csvPath); err != nil {
		log.Printf("⚠️  Failed to write CSV: %v", err)
	} else {
		fmt.Printf("💾 Simulations written to %s\n", csvPath)
	}

	xlsxPath := filepath.Join(outputDir, "portfolio.xlsx")
	if err := reporting.WriteResultXLSX(result, xlsxPath); err != nil {
		log.Printf("⚠️  Failed to write Excel report: %v", err)
	} else {
		fmt.Printf("💾 Excel report written to %s\n", xlsxPath)
	}

	chartPath := filepath.Join(outputDir, "risk_return.png")
	if err := reporting.WriteRiskReturnChart(result, chartPath); err != nil {
		log.Printf("⚠️  Failed to write chart: %v", err)
	} else {
		fmt.Printf("💾 Risk/return chart written to %s\n", chartPath)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"portfolio-optimizer/internal/server"
	"portfolio-optimizer/pkg/data"
)

const (
	AppName    = "Portfolio Server"
	AppVersion = "1.0.0"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	providerName := flag.String("provider", "yahoo", "Price provider (csv, yahoo)")
	dataRoot := flag.String("data-root", "data", "Directory with <SYMBOL>.csv price files")
	envFile := flag.String("env", ".env", "Environment file path")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *envFile, err)
	}

	if env := os.Getenv("PORTFOLIO_SERVER_ADDR"); env != "" {
		*addr = env
	}

	var provider data.Provider
	switch *providerName {
	case "csv":
		provider = data.NewCSVProvider(*dataRoot)
	case "yahoo":
		provider = data.NewCachedProvider(data.NewYahooProvider())
	default:
		log.Fatalf("❌ Unknown provider: %s", *providerName)
	}

	srv := server.NewServer(provider)
	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.NewHTTPMux(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	fmt.Printf("🚀 Listening on %s (provider: %s)\n", *addr, provider.GetName())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gmaps-scraper/config"
	"gmaps-scraper/scraper/maps"
	"gmaps-scraper/services"
	"gmaps-scraper/storage"
	"gmaps-scraper/utils"
)

// newSession opens the browser; tests replace it.
var newSession = maps.NewSession

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit status so deferred cleanup always happens.
func run(args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("gmaps-scraper", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var search string
	fs.StringVar(&search, "s", "", "single search term (overrides the input file)")
	fs.StringVar(&search, "search", "", "single search term (overrides the input file)")
	fs.IntVar(&cfg.MaxListings, "t", cfg.MaxListings, "maximum listings per search term")
	fs.IntVar(&cfg.MaxListings, "total", cfg.MaxListings, "maximum listings per search term")
	fs.StringVar(&cfg.InputFile, "i", cfg.InputFile, "fallback file with one search term per line")
	fs.StringVar(&cfg.InputFile, "input", cfg.InputFile, "fallback file with one search term per line")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "directory for .xlsx and .csv output")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory for .xlsx and .csv output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	terms, err := services.ResolveTerms(search, cfg.InputFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return 1
	}

	logger := utils.NewLogger()
	logger.SetLevel(cfg.LogLevel)

	logger.Info("=== Google Maps Scraper starting ===")
	logger.Info("Config — terms: %d | max listings/term: %d | output: %s | headless: %v",
		len(terms), cfg.MaxListings, cfg.OutputDir, cfg.Headless)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := newSession(rootCtx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open Google Maps: %v", err)
		logger.Error("Make sure Chrome/Chromium is installed or set CHROME_BIN")
		return 1
	}
	defer session.Close()

	sinks := storage.Open(cfg, logger)
	defer storage.CloseAll(sinks, logger)

	collector := maps.NewCollector(session, maps.CollectorOptions{
		Converge: maps.ConvergeOptions{
			StallThreshold: cfg.StallThreshold,
			Settle:         cfg.ScrollSettle,
			Poll:           cfg.PollInterval,
		},
		ScrollStep:   cfg.ScrollStep,
		SearchSettle: cfg.SearchSettle,
		DetailSettle: cfg.DetailSettle,
	}, utils.NewThrottle(cfg.RateLimitMs), logger)

	driver := services.NewDriver(collector, sinks, services.NewReportService(logger), logger)
	results := driver.Run(session.Context(), terms, cfg.MaxListings)

	extracted, failed := 0, 0
	for _, r := range results {
		extracted += len(r.Records())
		failed += len(r.Failures())
	}

	fmt.Printf("  Done. %d term(s) | %d record(s) | %d skipped entr(ies) | output → %s\n\n",
		len(results), extracted, failed, cfg.OutputDir)
	return 0
}

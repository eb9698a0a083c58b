package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hz-bin/AirTicket/internal/infrastructure/browser"
	"github.com/hz-bin/AirTicket/internal/infrastructure/config"
	excelRepo "github.com/hz-bin/AirTicket/internal/interface/repository"
	"github.com/hz-bin/AirTicket/internal/usecase"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/metrics"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

func main() {
	log := logger.NewLogger()
	log.Info("Starting AirTicket scheduler")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	once := flag.Bool("once", false, "run all configured queries immediately and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("airticket")

	fetcher := browser.NewRodFetcher(browser.Options{
		Headless:        true,
		DebugFile:       cfg.DebugFile,
		PageLoadTimeout: cfg.PageLoadTimeout,
		SettleWait:      cfg.SettleWait,
		PrimaryWait:     cfg.PrimaryWait,
		FallbackWait:    cfg.FallbackWait,
	}, log)
	parser := utils.NewListingParser(log)
	scraper := usecase.NewFlightScraper(fetcher, parser, cfg.ListingSelectors, log)
	historyRepo := excelRepo.NewExcelHistoryRepository(cfg.HistoryFile, log)
	runner := usecase.NewQueryRunner(scraper, historyRepo, m, cfg.OutputDir, log)

	scheduler := usecase.NewScheduler(runner, baseDir(), log)

	if *once {
		log.Info("Running in once mode")
		scheduler.RunAll(ctx)
		log.Info("Once mode completed")
		return
	}

	go scheduler.Start(ctx)

	// Metrics and health endpoints
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()
	log.Info("AirTicket scheduler stopped")
}

// baseDir is where config.json lives: next to the binary, with the working
// directory as fallback.
func baseDir() string {
	exe, err := os.Executable()
	if err != nil {
		cwd, _ := os.Getwd()
		return cwd
	}
	return filepath.Dir(exe)
}

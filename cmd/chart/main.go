package main

import (
	"context"
	"path/filepath"

	"github.com/pkg/browser"

	"github.com/hz-bin/AirTicket/internal/infrastructure/config"
	excelRepo "github.com/hz-bin/AirTicket/internal/interface/repository"
	"github.com/hz-bin/AirTicket/internal/usecase"
	"github.com/hz-bin/AirTicket/pkg/logger"
)

func main() {
	log := logger.NewConsoleLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	historyRepo := excelRepo.NewExcelHistoryRepository(cfg.HistoryFile, log)
	builder := usecase.NewChartBuilder(historyRepo, cfg.DefaultFlightDate, log)

	series, err := builder.Build(context.Background())
	if err != nil {
		log.Fatal("Failed to read flight history", "file", cfg.HistoryFile, "error", err)
	}
	if len(series) == 0 {
		log.Warn("No usable price history found, nothing to chart")
		return
	}

	if err := builder.Render(series, cfg.ChartFile); err != nil {
		log.Fatal("Failed to render chart page", "error", err)
	}
	log.Info("Chart page generated", "file", cfg.ChartFile, "series", len(series))

	path, err := filepath.Abs(cfg.ChartFile)
	if err != nil {
		path = cfg.ChartFile
	}
	if err := browser.OpenFile(path); err != nil {
		log.Warn("Failed to open chart page in browser", "error", err)
	}
}
